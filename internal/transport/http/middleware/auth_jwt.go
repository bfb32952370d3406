package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-task-manager/internal/core/auth"
	resp "go-task-manager/internal/transport/http/response"
)

// ContextUserID 经 AuthJWT 校验后写入 gin context 的用户 id 键；
// 下游对归属判断完全信任这个值，token 签名是唯一的授权信任根。
const ContextUserID = "userId"

// AuthJWT 缺 token 401，token 无效/过期 403
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("No token, authorization denied"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Fail("Invalid or expired token"))
			return
		}
		c.Set(ContextUserID, claims.ID)
		c.Next()
	}
}
