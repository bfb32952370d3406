package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-task-manager/internal/domain"
	resp "go-task-manager/internal/transport/http/response"
)

// RequireRole token 只带 id，角色落库查验（封禁的用户查不到，直接被拦下）
func RequireRole(users domain.UserRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(ContextUserID)
		u, err := users.FindByID(c.Request.Context(), uid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Fail(resp.MsgServerError))
			return
		}
		if u == nil || u.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Fail("forbidden"))
			return
		}
		c.Next()
	}
}
