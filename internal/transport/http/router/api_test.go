package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-task-manager/internal/core/auth"
	"go-task-manager/internal/core/config"
	"go-task-manager/internal/core/database"
	"go-task-manager/internal/domain"
	"go-task-manager/internal/repo"
	"go-task-manager/internal/service"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Task{}))

	log := zap.NewNop()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "task-manager", TTL: 7 * 24 * time.Hour}
	accounts := service.NewAccountService(repo.NewUserRepo(db), jwter, log)
	tasks := service.NewTaskService(repo.NewTaskRepo(db), nil, 0, log)

	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	return NewAPIEngine(log, cfg, jwter, accounts, tasks)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func signupAndLogin(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()
	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": name, "email": email, "password": "Str0ngPass!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, out := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "Str0ngPass!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	tok, _ := out["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestHome(t *testing.T) {
	r := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to the Task Manager App!", w.Body.String())
}

func TestSignup_EnvelopeAndFailures(t *testing.T) {
	r := newTestEngine(t)

	w, out := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "Str0ngPass!",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "User registered successfully", out["message"])
	user := out["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "passwordHash")

	// 重复邮箱
	w, out = doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Bob", "email": "alice@example.com", "password": "An0therPass?",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Email already registered", out["message"])

	// 空 name / 非法邮箱 / 弱密码
	w, out = doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email": "carol@example.com", "password": "Str0ngPass!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name is required", out["message"])
	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Bob", "email": "not-an-email", "password": "Str0ngPass!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Bob", "email": "bob@example.com", "password": "weak",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOversizedBody_Returns413(t *testing.T) {
	r := newTestEngine(t)

	// 超出 1MB 上限，绑定时读到 MaxBytesError
	huge := bytes.Repeat([]byte("x"), (1<<20)+1)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(huge))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "request body too large", out["message"])
}

func TestLogin_NoCredentialLeak(t *testing.T) {
	r := newTestEngine(t)
	signupAndLogin(t, r, "Alice", "alice@example.com")

	w1, out1 := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "WrongPass1!",
	})
	w2, out2 := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "Str0ngPass!",
	})
	assert.Equal(t, http.StatusBadRequest, w1.Code)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
	assert.Equal(t, out1["message"], out2["message"])
}

func TestProtectedRoutes_AuthGate(t *testing.T) {
	r := newTestEngine(t)

	// 无 Authorization → 401，到不了业务逻辑
	w, out := doJSON(t, r, http.MethodGet, "/api/auth/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token, authorization denied", out["message"])

	// 坏 token → 403
	w, out = doJSON(t, r, http.MethodGet, "/api/auth/tasks", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid or expired token", out["message"])
}

func TestTaskFlow_RoundTrip(t *testing.T) {
	r := newTestEngine(t)
	tok := signupAndLogin(t, r, "Alice", "alice@example.com")

	// 创建：status 默认 Pending
	w, out := doJSON(t, r, http.MethodPost, "/api/auth/task", tok, gin.H{
		"title": "Buy milk", "priority": "High", "dueDate": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	task := out["task"].(map[string]any)
	assert.Equal(t, "Pending", task["status"])
	assert.Equal(t, "High", task["priority"])
	taskID := task["id"].(string)

	// 缺 title
	w, out = doJSON(t, r, http.MethodPost, "/api/auth/task", tok, gin.H{"description": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title is required", out["message"])

	// 列表
	w, out = doJSON(t, r, http.MethodGet, "/api/auth/tasks", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["tasks"], 1)

	// 非法过滤值
	w, _ = doJSON(t, r, http.MethodGet, "/api/auth/tasksByStatus?status=pending", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 只改 status，其余保持
	w, out = doJSON(t, r, http.MethodPut, "/api/auth/task/"+taskID, tok, gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)
	task = out["task"].(map[string]any)
	assert.Equal(t, "Completed", task["status"])
	assert.Equal(t, "Buy milk", task["title"])
	assert.Equal(t, "High", task["priority"])

	w, out = doJSON(t, r, http.MethodGet, "/api/auth/tasksByStatus?status=Completed", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["tasks"], 1)

	// 删除两次：第二次 404
	w, _ = doJSON(t, r, http.MethodDelete, "/api/auth/task/"+taskID, tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, out = doJSON(t, r, http.MethodDelete, "/api/auth/task/"+taskID, tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", out["message"])
}

func TestTaskFlow_CrossUserIsolation(t *testing.T) {
	r := newTestEngine(t)
	tokA := signupAndLogin(t, r, "Alice", "alice@example.com")
	tokB := signupAndLogin(t, r, "Bob", "bob@example.com")

	w, out := doJSON(t, r, http.MethodPost, "/api/auth/task", tokA, gin.H{"title": "private"})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := out["task"].(map[string]any)["id"].(string)

	// B 看不到 A 的任务
	w, out = doJSON(t, r, http.MethodGet, "/api/auth/tasks", tokB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["tasks"], 0)

	// B 改 A 的任务 → 合并的 403
	w, out = doJSON(t, r, http.MethodPut, "/api/auth/task/"+taskID, tokB, gin.H{"title": "stolen"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not authorized to update this task or it does not exist", out["message"])

	// B 删 A 的任务 → 403（delete 这边拆开，message 不同）
	w, out = doJSON(t, r, http.MethodDelete, "/api/auth/task/"+taskID, tokB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to delete this task", out["message"])

	// A 自己的没变
	w, out = doJSON(t, r, http.MethodGet, "/api/auth/tasks", tokA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := out["tasks"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, "private", tasks[0].(map[string]any)["title"])
}
