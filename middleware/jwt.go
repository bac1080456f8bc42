package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// 上下文键
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextIdentity = "identity"
)

// Claims JWT 载荷
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWT 签发与校验 HS256 token
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT 创建 JWT 工具
func NewJWT(secret string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken 生成 token，返回过期时间
func (j *JWT) GenerateToken(userID uint, username string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("签发 token 失败: %w", err)
	}
	return token, expiresAt, nil
}

// ParseToken 解析并校验 token
func (j *JWT) ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token 为空")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token 无效")
	}
	return claims, nil
}

// Identify 解析请求身份，不强制登录
// 携带了无效 token 时直接返回 401；trustHeaders 开启时兼容旧前端的 X-User-Id / X-Username
func Identify(j *JWT, trustHeaders bool, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				abortUnauthorized(c, "Format d'authentification invalide.")
				return
			}
			claims, err := j.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				abortUnauthorized(c, "Jeton invalide ou expiré.")
				return
			}
			setIdentity(c, service.Identity{UserID: claims.UserID, HasUserID: true, Username: claims.Username})
			c.Next()
			return
		}

		if trustHeaders {
			if id, ok := identityFromHeaders(c); ok {
				log.WithFields(logrus.Fields{"user_id": id.UserID, "username": id.Username, "path": c.Request.URL.Path}).
					Warn("使用请求头中的身份（auth.trust_request_identity 已废弃）")
				setIdentity(c, id)
			}
		}
		c.Next()
	}
}

// JWTAuth 必须登录
func JWTAuth(j *JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authentification requise.")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Format d'authentification invalide.")
			return
		}
		claims, err := j.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "Jeton invalide ou expiré.")
			return
		}
		setIdentity(c, service.Identity{UserID: claims.UserID, HasUserID: true, Username: claims.Username})
		c.Next()
	}
}

// GetCurrentUserID 获取当前用户 ID，未登录返回 0
func GetCurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetIdentity 获取当前请求身份
func GetIdentity(c *gin.Context) (service.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return service.Identity{}, false
	}
	id, ok := v.(service.Identity)
	return id, ok
}

func setIdentity(c *gin.Context, id service.Identity) {
	c.Set(ContextIdentity, id)
	if id.HasUserID {
		c.Set(ContextUserID, id.UserID)
	}
	if id.Username != "" {
		c.Set(ContextUsername, id.Username)
	}
}

func identityFromHeaders(c *gin.Context) (service.Identity, bool) {
	var id service.Identity
	if raw := strings.TrimSpace(c.GetHeader("X-User-Id")); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			id.UserID = uint(n)
			id.HasUserID = true
		}
	}
	id.Username = strings.TrimSpace(c.GetHeader("X-Username"))
	return id, id.HasUserID || id.Username != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": msg,
	})
}
