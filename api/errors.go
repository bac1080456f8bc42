package api

import (
	"errors"
	"net/http"
	"strconv"

	"caisse/config"
	"caisse/middleware"
	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const serverErrorMessage = "Erreur serveur."

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// Fail 按错误类别输出响应；存储错误只记录日志，对外返回统一提示
func Fail(c *gin.Context, log logrus.FieldLogger, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
		}).Error("请求处理失败")
		InternalError(c, serverErrorMessage)
		return
	}

	msg := service.MessageOf(err)
	if msg == "" {
		msg = http.StatusText(status)
	}
	Error(c, status, msg)
}

// invalidBody 请求体无法解析
func invalidBody(c *gin.Context, err error) {
	BadRequest(c, SafeErrorMessage(err, "Requête invalide."))
}

// parseID 解析路径中的正整数 id
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "Identifiant invalide.")
		return 0, false
	}
	return uint(id), true
}
