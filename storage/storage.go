package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo 备份对象信息
type ObjectInfo struct {
	Key          string     `json:"key"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// UploadOptions 上传目标
type UploadOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service 备份文件的远端对象存储
type Service interface {
	Upload(ctx context.Context, body io.Reader, opts UploadOptions) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}
