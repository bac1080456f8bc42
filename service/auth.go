package service

import (
	"context"
	"errors"
	"strings"

	"caisse/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "Nom d'utilisateur ou mot de passe incorrect."

// ResetNotifier 密码重置后的通知渠道
type ResetNotifier interface {
	Enabled() bool
	SendPasswordResetNotice(username string) error
}

// AuthService 登录与密码重置
type AuthService struct {
	db       *gorm.DB
	creds    *Credentials
	notifier ResetNotifier
	log      logrus.FieldLogger

	// 用户不存在时也做一次比较，缩小响应时间差异
	dummyDigest string
}

// NewAuthService 创建认证服务，notifier 可为 nil
func NewAuthService(db *gorm.DB, creds *Credentials, notifier ResetNotifier, log logrus.FieldLogger) *AuthService {
	s := &AuthService{db: db, creds: creds, notifier: notifier, log: log}
	if digest, err := creds.Hash("caisse-dummy-password"); err == nil {
		s.dummyDigest = digest
	}
	return s
}

// Login 校验用户名密码，用户不存在与密码错误返回相同错误
// 用户名按原样精确匹配，不做裁剪
func (s *AuthService) Login(ctx context.Context, username, password string) (models.UserView, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return models.UserView{}, validation("Nom d'utilisateur et mot de passe requis.")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.creds.Verify(password, s.dummyDigest)
		return models.UserView{}, &Failure{Kind: ErrInvalidCredentials, Message: invalidCredentialsMessage}
	}
	if err != nil {
		return models.UserView{}, storeFailure("find user", err)
	}

	if !s.creds.Verify(password, user.Password) {
		return models.UserView{}, &Failure{Kind: ErrInvalidCredentials, Message: invalidCredentialsMessage}
	}
	return user.View(), nil
}

// ResetPassword 按用户名覆盖密码
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" || newPassword == "" {
		return validation("Nom d'utilisateur et nouveau mot de passe requis.")
	}
	if err := s.creds.ValidateNewPassword(newPassword); err != nil {
		return err
	}

	digest, err := s.creds.Hash(newPassword)
	if err != nil {
		return storeFailure("hash password", err)
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Update("password", digest)
	if res.Error != nil {
		return storeFailure("reset password", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("Nom d'utilisateur non trouvé.")
	}

	s.log.WithField("username", username).Info("密码已重置")
	if s.notifier != nil && s.notifier.Enabled() {
		if err := s.notifier.SendPasswordResetNotice(username); err != nil {
			s.log.WithError(err).Warn("密码重置通知发送失败")
		}
	}
	return nil
}
