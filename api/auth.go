package api

import (
	"time"

	"caisse/middleware"
	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	auth *service.AuthService
	jwt  *middleware.JWT
	log  logrus.FieldLogger
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(auth *service.AuthService, jwt *middleware.JWT, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{auth: auth, jwt: jwt, log: log}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"admin123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Username    string `json:"username" example:"tresorier"`
	NewPassword string `json:"newPassword" example:"nouveau-secret"`
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验用户名密码，返回用户信息与 JWT
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "缺少用户名或密码"
// @Failure 401 {object} Response "用户名或密码错误"
// @Failure 429 {object} Response "尝试过于频繁"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		Fail(c, h.log, err)
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		Fail(c, h.log, err)
		return
	}

	SuccessWithMessage(c, "Connexion réussie.", LoginResponse{
		ID:        user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// ResetPassword 按用户名重置密码
// @Summary 重置密码
// @Description 按用户名覆盖密码，新密码至少 6 个字符
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "重置信息"
// @Success 200 {object} Response "重置成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Username, req.NewPassword); err != nil {
		Fail(c, h.log, err)
		return
	}
	SuccessWithMessage(c, "Mot de passe réinitialisé avec succès !", nil)
}
