package middleware

import (
	"net/http"

	"caisse/service"

	"github.com/gin-gonic/gin"
)

// RequireAdmin 管理员接口校验，需在 Identify 之后使用
// 无身份返回 401，非管理员返回 403
func RequireAdmin(gate service.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			abortUnauthorized(c, "Authentification requise.")
			return
		}

		if !gate.IsAdmin(id) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "Accès réservé à l'administrateur.",
			})
			return
		}
		c.Next()
	}
}
