package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-task-manager/internal/core/auth"
	"go-task-manager/internal/core/config"
	"go-task-manager/internal/core/server"
	"go-task-manager/internal/domain"
	"go-task-manager/internal/service"
	httpez "go-task-manager/internal/transport/http/ez"
	mdw "go-task-manager/internal/transport/http/middleware"
	resp "go-task-manager/internal/transport/http/response"
)

func NewAPIEngine(l *zap.Logger, cfg *config.Config, jwter *auth.JWTer, accounts *service.AccountService, tasks *service.TaskService) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		server.CORSByAllowList(cfg.CORS.AllowedOrigins),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the Task Manager App!")
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/api/auth")
	mountAccountActions(httpez.New(public, l), accounts)

	protected := r.Group("/api/auth")
	protected.Use(mdw.AuthJWT(jwter))
	mountTaskActions(httpez.New(protected, l), tasks)

	return r
}

func mountAccountActions(ez httpez.EZ, accounts *service.AccountService) {
	type signupIn struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	httpez.Register(ez, httpez.Action[signupIn]{
		Method: http.MethodPost,
		Path:   "/signup",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *signupIn) (gin.H, error) {
			u, err := accounts.Register(c.Request.Context(), in.Name, in.Email, in.Password)
			if err != nil {
				return nil, httpErr(err)
			}
			return gin.H{
				"message": resp.MsgRegistered,
				"user": gin.H{
					"id":    u.ID,
					"name":  u.Name,
					"email": u.Email,
					"role":  u.Role,
				},
			}, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	httpez.Register(ez, httpez.Action[loginIn]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (gin.H, error) {
			tok, u, err := accounts.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return nil, httpErr(err)
			}
			return gin.H{
				"message": resp.MsgLoginOK,
				"token":   tok,
				"user": gin.H{
					"id":    u.ID,
					"name":  u.Name,
					"email": u.Email,
				},
			}, nil
		},
	})
}

func mountTaskActions(ez httpez.EZ, tasks *service.TaskService) {
	type taskIn struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		Priority    string `json:"priority"`
		DueDate     string `json:"dueDate"`
	}

	httpez.Register(ez, httpez.Action[taskIn]{
		Method: http.MethodPost,
		Path:   "/task",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *taskIn) (gin.H, error) {
			due, err := parseDueDate(in.DueDate)
			if err != nil {
				return nil, err
			}
			t, err := tasks.Create(c.Request.Context(), c.GetString(mdw.ContextUserID), domain.TaskDraft{
				Title:       in.Title,
				Description: in.Description,
				Status:      in.Status,
				Priority:    in.Priority,
				DueDate:     due,
			})
			if err != nil {
				return nil, httpErr(err)
			}
			return gin.H{"task": t}, nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}]{
		Method: http.MethodGet,
		Path:   "/tasks",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			list, err := tasks.ListAll(c.Request.Context(), c.GetString(mdw.ContextUserID))
			if err != nil {
				return nil, httpErr(err)
			}
			return gin.H{"message": resp.MsgTasksFetched, "tasks": list}, nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}]{
		Method: http.MethodGet,
		Path:   "/tasksByStatus",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			status := c.Query("status")
			list, err := tasks.ListByStatus(c.Request.Context(), c.GetString(mdw.ContextUserID), status)
			if err != nil {
				return nil, httpErr(err)
			}
			return gin.H{
				"message": "All " + status + " tasks fetched successfully",
				"tasks":   list,
			}, nil
		},
	})

	httpez.Register(ez, httpez.Action[taskIn]{
		Method: http.MethodPut,
		Path:   "/task/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *taskIn) (gin.H, error) {
			due, err := parseDueDate(in.DueDate)
			if err != nil {
				return nil, err
			}
			t, err := tasks.Update(c.Request.Context(), c.GetString(mdw.ContextUserID), c.Param("id"), domain.TaskPatch{
				Title:       in.Title,
				Description: in.Description,
				Status:      in.Status,
				Priority:    in.Priority,
				DueDate:     due,
			})
			if err != nil {
				return nil, httpErr(err)
			}
			return gin.H{"message": resp.MsgTaskUpdated, "task": t}, nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}]{
		Method: http.MethodDelete,
		Path:   "/task/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := tasks.Delete(c.Request.Context(), c.GetString(mdw.ContextUserID), c.Param("id")); err != nil {
				return nil, httpErr(err)
			}
			return gin.H{"message": resp.MsgTaskDeleted}, nil
		},
	})
}
