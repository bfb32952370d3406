package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-task-manager/internal/core/auth"
	"go-task-manager/internal/core/database"
	"go-task-manager/internal/domain"
	"go-task-manager/internal/repo"
	"go-task-manager/pkg/utils"
)

func newAdminTestEngine(t *testing.T) (*gin.Engine, *repo.UserRepo, *auth.JWTer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	users := repo.NewUserRepo(db)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "task-manager", TTL: time.Hour}
	return NewAdminEngine(zap.NewNop(), jwter, users), users, jwter
}

func seedUser(t *testing.T, users *repo.UserRepo, name, email, role string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword("Str0ngPass!"),
		Role:         role,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func adminGET(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdmin_RoleGate(t *testing.T) {
	r, users, jwter := newAdminTestEngine(t)
	admin := seedUser(t, users, "Root", "root@example.com", "admin")
	plain := seedUser(t, users, "Alice", "alice@example.com", "user")

	adminTok, err := jwter.Issue(admin.ID)
	require.NoError(t, err)
	plainTok, err := jwter.Issue(plain.ID)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, adminGET(t, r, "/admin/v1/users", "").Code)
	assert.Equal(t, http.StatusForbidden, adminGET(t, r, "/admin/v1/users", plainTok).Code)
	assert.Equal(t, http.StatusOK, adminGET(t, r, "/admin/v1/users", adminTok).Code)
}

func TestAdmin_BanLocksOutUser(t *testing.T) {
	r, users, jwter := newAdminTestEngine(t)
	admin := seedUser(t, users, "Root", "root@example.com", "admin")
	victim := seedUser(t, users, "Alice", "alice@example.com", "user")

	adminTok, err := jwter.Issue(admin.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/v1/users/"+victim.ID+"/ban", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// 软删后查不到
	got, err := users.FindByID(context.Background(), victim.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 再封一次 → 404
	req = httptest.NewRequest(http.MethodPost, "/admin/v1/users/"+victim.ID+"/ban", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
