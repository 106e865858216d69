package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Note{}))

	tmp := t.TempDir()
	actionFile := filepath.Join(tmp, "actions.log")
	require.NoError(t, os.WriteFile(actionFile, []byte("{}\n"), 0644))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.File.UploadPath = tmp
	cfg.File.AllowedImageTypes = []string{"jpg", "png"}
	cfg.Log.ActionFile = actionFile

	actions := actionlog.NewWithOutput(io.Discard)
	t.Cleanup(actions.Close)

	return Setup(db, cfg, actions), db, cfg
}

type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Error   string                 `json:"error"`
	Data    map[string]interface{} `json:"data"`
	Errors  map[string]string      `json:"errors"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func registerAndLogin(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w, _ := doJSON(t, router, "POST", "/register", "", gin.H{
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doJSON(t, router, "POST", "/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuthAndNotesFlow(t *testing.T) {
	router, _, _ := newTestServer(t)

	// Register
	w, env := doJSON(t, router, "POST", "/register", "", gin.H{
		"email":            "a@b.com",
		"password":         "secret1",
		"confirm_password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Registration successful! Now log in.", env.Message)

	// Same email again
	w, env = doJSON(t, router, "POST", "/register", "", gin.H{
		"email":            "a@b.com",
		"password":         "secret1",
		"confirm_password": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email_exists", env.Error)
	assert.Equal(t, "User with this email already exists", env.Message)

	// Wrong password
	w, env = doJSON(t, router, "POST", "/login", "", gin.H{
		"email":    "a@b.com",
		"password": "wrong66",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_credentials", env.Error)
	assert.Equal(t, "Invalid email or password", env.Message)

	// Proper login
	w, env = doJSON(t, router, "POST", "/login", "", gin.H{
		"email":    "a@b.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "session=")
	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)

	// Create a note
	w, env = doJSON(t, router, "POST", "/api/notes", token, gin.H{
		"title":   "T",
		"content": "C",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "active", env.Data["status"])
	noteID := int(env.Data["id"].(float64))

	// Update only the status
	w, env = doJSON(t, router, "PUT", fmt.Sprintf("/api/notes/%d", noteID), token, gin.H{
		"status": "archived",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "archived", env.Data["status"])
	assert.Equal(t, "T", env.Data["title"])
	assert.Equal(t, "C", env.Data["content"])

	// Delete, then the note is gone
	w, _ = doJSON(t, router, "DELETE", fmt.Sprintf("/api/notes/%d", noteID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, "GET", fmt.Sprintf("/api/notes/%d", noteID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotesCacheNegotiation(t *testing.T) {
	router, _, _ := newTestServer(t)
	token := registerAndLogin(t, router, "cache@b.com", "secret1")

	w, _ := doJSON(t, router, "POST", "/api/notes", token, gin.H{
		"title":   "cached",
		"content": "body",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, router, "GET", "/api/notes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, "private, max-age=60", w.Header().Get("Cache-Control"))

	// Unchanged data with the prior fingerprint: empty 304
	req := httptest.NewRequest("GET", "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusNotModified, w2.Code)
	assert.Empty(t, w2.Body.String())

	// A mutation invalidates the fingerprint
	w, _ = doJSON(t, router, "POST", "/api/notes", token, gin.H{
		"title":   "second",
		"content": "note",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("If-None-Match", etag)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req)

	assert.Equal(t, http.StatusOK, w3.Code)
	assert.NotEqual(t, etag, w3.Header().Get("ETag"))
}

func TestOwnershipIsolationOverHTTP(t *testing.T) {
	router, _, _ := newTestServer(t)
	aliceToken := registerAndLogin(t, router, "alice@b.com", "secret1")
	bobToken := registerAndLogin(t, router, "bob@b.com", "secret1")

	w, env := doJSON(t, router, "POST", "/api/notes", aliceToken, gin.H{
		"title":   "private",
		"content": "alice only",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	noteID := int(env.Data["id"].(float64))

	w, _ = doJSON(t, router, "GET", fmt.Sprintf("/api/notes/%d", noteID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "foreign note must read as absent")

	w, _ = doJSON(t, router, "PUT", fmt.Sprintf("/api/notes/%d", noteID), bobToken, gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, router, "DELETE", fmt.Sprintf("/api/notes/%d", noteID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthGuard(t *testing.T) {
	router, _, _ := newTestServer(t)

	t.Run("API without session gets 401", func(t *testing.T) {
		w, _ := doJSON(t, router, "GET", "/api/notes", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("page without session redirects to login", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/profile", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})
}

func TestAdminLogs(t *testing.T) {
	router, db, _ := newTestServer(t)

	t.Run("non-admin is turned away", func(t *testing.T) {
		token := registerAndLogin(t, router, "user@b.com", "secret1")

		req := httptest.NewRequest("GET", "/admin/logs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("admin downloads the action log", func(t *testing.T) {
		email := "root@b.com"
		hash, err := utils.HashPassword("admin123")
		require.NoError(t, err)
		require.NoError(t, db.Create(&models.User{
			Email:        &email,
			PasswordHash: &hash,
			Role:         "admin",
		}).Error)

		w, env := doJSON(t, router, "POST", "/login", "", gin.H{
			"email":    email,
			"password": "admin123",
		})
		require.Equal(t, http.StatusOK, w.Code)
		token, _ := env.Data["token"].(string)
		require.NotEmpty(t, token)

		req := httptest.NewRequest("GET", "/admin/logs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req)

		assert.Equal(t, http.StatusOK, w2.Code)
		assert.Contains(t, w2.Header().Get("Content-Disposition"), "attachment")
	})
}

func TestLoginRateLimit(t *testing.T) {
	router, _, _ := newTestServer(t)

	// auth.login allows 5 per minute per identity; all attempts originate
	// from the same test client address.
	for i := 0; i < 5; i++ {
		w, _ := doJSON(t, router, "POST", "/login", "", gin.H{
			"email":    "nobody@b.com",
			"password": "wrong66",
		})
		require.Equal(t, http.StatusBadRequest, w.Code, "attempt %d", i+1)
	}

	req := httptest.NewRequest("POST", "/login", bytes.NewReader([]byte(`{"email":"nobody@b.com","password":"wrong66"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp models.RateLimitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp.Error)
	assert.Greater(t, resp.RetryAfter, 0)
}

func TestLocaleAndHealth(t *testing.T) {
	router, _, _ := newTestServer(t)

	t.Run("supported locale is stored in a cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/locale/en", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "locale=en")
	})

	t.Run("unknown locale is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/locale/xx", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ping", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})
}
