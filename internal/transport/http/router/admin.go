package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/internal/core/auth"
	"go-task-manager/internal/domain"
	httpez "go-task-manager/internal/transport/http/ez"
	mdw "go-task-manager/internal/transport/http/middleware"
)

// NewAdminEngine 后台端：用户列表 + 封禁。token 只带 id，admin 角色落库查验。
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, users domain.UserRepository) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter), mdw.RequireRole(users, "admin"))
	mountAdminActions(httpez.New(admin, l), users)

	return r
}

func mountAdminActions(ez httpez.EZ, users domain.UserRepository) {
	type listQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // 按 email/name 模糊搜
		WithDeleted bool   `form:"with_deleted"` // 是否包含已封禁
	}
	type row struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}
	httpez.Register(ez, httpez.Action[listQ]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (gin.H, error) {
			us, total, err := users.List(c.Request.Context(), domain.UserListFilter{
				Offset:      in.Offset,
				Limit:       in.Limit,
				Query:       in.Q,
				WithDeleted: in.WithDeleted,
			})
			if err != nil {
				return nil, httpez.Internal(err)
			}
			items := make([]row, 0, len(us))
			for _, u := range us {
				items = append(items, row{
					ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt,
				})
			}
			return gin.H{"total": total, "items": items}, nil
		},
	})

	// 封禁 = 软删，登录与角色校验都会随之失效
	httpez.Register(ez, httpez.Action[struct{}]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			if err := users.SoftDelete(c.Request.Context(), id); err != nil {
				if err == domain.ErrUserNotFound {
					return nil, httpez.NotFound("user not found")
				}
				return nil, httpez.Internal(err)
			}
			return gin.H{"id": id}, nil
		},
	})
}
