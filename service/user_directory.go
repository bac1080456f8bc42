package service

import (
	"context"
	"errors"
	"strings"

	"caisse/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const duplicateUsernameMessage = "Ce nom d'utilisateur existe déjà."

// UserDirectory 用户管理，不提供删除
type UserDirectory struct {
	db    *gorm.DB
	creds *Credentials
	log   logrus.FieldLogger
}

// NewUserDirectory 创建用户管理服务
func NewUserDirectory(db *gorm.DB, creds *Credentials, log logrus.FieldLogger) *UserDirectory {
	return &UserDirectory{db: db, creds: creds, log: log}
}

// List 按 id 升序，不含密码摘要
func (d *UserDirectory) List(ctx context.Context) ([]models.UserView, error) {
	var users []models.User
	if err := d.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, storeFailure("list users", err)
	}
	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	return views, nil
}

// Create 新建用户
func (d *UserDirectory) Create(ctx context.Context, username, password string) (models.UserView, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.UserView{}, validation("Nom d'utilisateur et mot de passe requis.")
	}
	if err := d.creds.ValidatePassword(password); err != nil {
		return models.UserView{}, err
	}

	digest, err := d.creds.Hash(password)
	if err != nil {
		return models.UserView{}, storeFailure("hash password", err)
	}
	user := models.User{Username: username, Password: digest}
	if err := d.db.WithContext(ctx).Create(&user).Error; err != nil {
		if IsDuplicateKey(err) {
			return models.UserView{}, conflict(duplicateUsernameMessage, err)
		}
		return models.UserView{}, storeFailure("create user", err)
	}
	d.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("用户已创建")
	return user.View(), nil
}

// Update 修改用户名，password 为 nil 或空串时保留原密码
func (d *UserDirectory) Update(ctx context.Context, id uint, username string, password *string) (models.UserView, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.UserView{}, validation("Nom d'utilisateur requis.")
	}

	updates := map[string]interface{}{"username": username}
	if password != nil && *password != "" {
		if err := d.creds.ValidatePassword(*password); err != nil {
			return models.UserView{}, err
		}
		digest, err := d.creds.Hash(*password)
		if err != nil {
			return models.UserView{}, storeFailure("hash password", err)
		}
		updates["password"] = digest
	}

	var user models.User
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Utilisateur non trouvé.")
			}
			return storeFailure("get user", err)
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			if IsDuplicateKey(err) {
				return conflict(duplicateUsernameMessage, err)
			}
			return storeFailure("update user", err)
		}
		user.Username = username
		return nil
	})
	if err != nil {
		return models.UserView{}, err
	}
	return user.View(), nil
}
