package service

import "strings"

// Identity 请求方身份，UserID 与 Username 均可能缺失
type Identity struct {
	UserID    uint
	HasUserID bool
	Username  string
}

// Authorizer 管理员判定策略
type Authorizer interface {
	IsAdmin(id Identity) bool
}

// ReservedAdminPolicy 保留 id 或保留用户名（不区分大小写）即为管理员
type ReservedAdminPolicy struct {
	AdminID       uint
	AdminUsername string
}

// NewReservedAdminPolicy 空值使用默认的 1 / "admin"
func NewReservedAdminPolicy(adminID uint, adminUsername string) ReservedAdminPolicy {
	if adminID == 0 {
		adminID = 1
	}
	if adminUsername == "" {
		adminUsername = "admin"
	}
	return ReservedAdminPolicy{AdminID: adminID, AdminUsername: adminUsername}
}

func (p ReservedAdminPolicy) IsAdmin(id Identity) bool {
	if id.HasUserID && id.UserID == p.AdminID {
		return true
	}
	return id.Username != "" && strings.EqualFold(id.Username, p.AdminUsername)
}
