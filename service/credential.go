package service

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength 密码最少字符数
const MinPasswordLength = 6

// maxPasswordBytes bcrypt 只处理前 72 字节
const maxPasswordBytes = 72

// Credentials 凭证管理：密码摘要生成与校验
type Credentials struct {
	cost int
}

// NewCredentials cost 非法时回退到 bcrypt.DefaultCost
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

// ValidatePassword 校验密码策略
func (c *Credentials) ValidatePassword(plaintext string) error {
	return validatePassword(plaintext, "Le mot de passe")
}

// ValidateNewPassword 同 ValidatePassword，提示语针对重置场景
func (c *Credentials) ValidateNewPassword(plaintext string) error {
	return validatePassword(plaintext, "Le nouveau mot de passe")
}

func validatePassword(plaintext, subject string) error {
	if utf8.RuneCountInString(plaintext) < MinPasswordLength {
		return validation(fmt.Sprintf("%s doit comporter au moins %d caractères.", subject, MinPasswordLength))
	}
	if len(plaintext) > maxPasswordBytes {
		return validation(subject + " est trop long.")
	}
	return nil
}

// Hash 生成带随机盐的摘要，每次结果不同
func (c *Credentials) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("密码加密失败: %w", err)
	}
	return string(b), nil
}

// Verify 密码不匹配或摘要格式错误都只返回 false
func (c *Credentials) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
