package api

import (
	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	users *service.UserDirectory
	log   logrus.FieldLogger
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(users *service.UserDirectory, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// CreateUserRequest 新建用户
type CreateUserRequest struct {
	Username string `json:"username" example:"tresorier"`
	Password string `json:"password" example:"secret1"`
}

// UpdateUserRequest 修改用户，password 省略或为空时保留原密码
type UpdateUserRequest struct {
	Username string  `json:"username" example:"tresorier"`
	Password *string `json:"password,omitempty"`
}

// List 用户列表
// @Summary 用户列表
// @Tags 用户
// @Produce json
// @Success 200 {object} Response{data=[]models.UserView} "获取成功"
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		Fail(c, h.log, err)
		return
	}
	Success(c, users)
}

// Create 新建用户（管理员）
// @Summary 新建用户
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "用户信息"
// @Success 201 {object} Response{data=models.UserView} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 401 {object} Response "未登录"
// @Failure 403 {object} Response "非管理员"
// @Failure 409 {object} Response "用户名已存在"
// @Router /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	user, err := h.users.Create(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		Fail(c, h.log, err)
		return
	}
	Created(c, user)
}

// Update 修改用户（管理员）
// @Summary 修改用户
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Param request body UpdateUserRequest true "用户信息"
// @Success 200 {object} Response{data=models.UserView} "修改成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 401 {object} Response "未登录"
// @Failure 403 {object} Response "非管理员"
// @Failure 404 {object} Response "用户不存在"
// @Failure 409 {object} Response "用户名已存在"
// @Router /api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, req.Username, req.Password)
	if err != nil {
		Fail(c, h.log, err)
		return
	}
	SuccessWithMessage(c, "Utilisateur mis à jour.", user)
}
