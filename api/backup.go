package api

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"time"

	"caisse/config"
	"caisse/models"
	"caisse/service"
	"caisse/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BackupHandler 将 Excel 导出上传到对象存储
type BackupHandler struct {
	exporter *service.Exporter
	store    storage.Service
	cfg      config.StorageConfig
	log      logrus.FieldLogger
	now      func() time.Time
}

// BackupResponse 备份结果
type BackupResponse struct {
	Key      string `json:"key"`
	Location string `json:"location"`
}

// NewBackupHandler store 为 nil 时所有备份接口返回 503
func NewBackupHandler(exporter *service.Exporter, store storage.Service, cfg config.StorageConfig, log logrus.FieldLogger) *BackupHandler {
	return &BackupHandler{exporter: exporter, store: store, cfg: cfg, log: log, now: time.Now}
}

// Backup 生成全量 Excel 并上传
// @Summary 备份到对象存储
// @Tags 备份
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=BackupResponse} "备份成功"
// @Failure 401 {object} Response "未登录"
// @Failure 403 {object} Response "非管理员"
// @Failure 503 {object} Response "未配置存储"
// @Router /api/backup [post]
func (h *BackupHandler) Backup(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	data, err := h.exporter.Workbook(c.Request.Context(), models.Date{}, models.Date{})
	if err != nil {
		Fail(c, h.log, err)
		return
	}

	key := path.Join(h.cfg.KeyPrefix, fmt.Sprintf("caisse-%s-%s.xlsx", h.now().UTC().Format("20060102T150405Z"), uuid.NewString()))
	location, err := h.store.Upload(c.Request.Context(), bytes.NewReader(data), storage.UploadOptions{
		Bucket:      h.cfg.Bucket,
		Key:         key,
		ContentType: xlsxContentType,
	})
	if err != nil {
		h.log.WithError(err).WithField("key", key).Error("上传备份失败")
		InternalError(c, serverErrorMessage)
		return
	}

	h.log.WithField("location", location).Info("备份已上传")
	SuccessWithMessage(c, "Sauvegarde effectuée.", BackupResponse{Key: key, Location: location})
}

// List 已有备份
// @Summary 备份列表
// @Tags 备份
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]storage.ObjectInfo} "获取成功"
// @Failure 503 {object} Response "未配置存储"
// @Router /api/backup [get]
func (h *BackupHandler) List(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	objects, err := h.store.ListObjects(c.Request.Context(), h.cfg.Bucket, h.cfg.KeyPrefix)
	if err != nil {
		h.log.WithError(err).Error("列出备份失败")
		InternalError(c, serverErrorMessage)
		return
	}
	Success(c, objects)
}

func (h *BackupHandler) configured(c *gin.Context) bool {
	if h.store == nil || h.cfg.Bucket == "" {
		Error(c, http.StatusServiceUnavailable, "Sauvegarde non configurée.")
		return false
	}
	return true
}
