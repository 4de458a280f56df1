package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/task-management-api/internal/dto"
	apierrors "github.com/yukikurage/task-management-api/internal/errors"
	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/repository"
	"github.com/yukikurage/task-management-api/internal/services"
)

type authTestEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	handler *AuthHandler
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskPerformer{},
		&models.TaskComment{},
		&models.ConfirmationToken{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	jwtService := services.NewJWTService("test-secret", time.Minute)
	authService := services.NewAuthService(userRepo, tokenRepo, jwtService, &services.LogEmailSender{}, "http://localhost:8080")
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/authenticate", handler.Authenticate)
	r.GET("/api/auth/confirm", handler.Confirm)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:      db,
		router:  r,
		handler: handler,
	}
}

func (env authTestEnv) postJSON(t *testing.T, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env authTestEnv) get(t *testing.T, url string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func registerPayload(email string) map[string]string {
	return map[string]string{
		"email":            email,
		"password":         "supersecret",
		"matchingPassword": "supersecret",
		"name":             "Test User",
	}
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", registerPayload("new@example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthenticationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.JWT)
	require.NotEmpty(t, response.ConfirmationToken)
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := registerPayload("short@example.com")
	payload["password"] = "short"
	payload["matchingPassword"] = "short"

	w := env.postJSON(t, "/api/auth/register", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	apiErr := decodeAPIError(t, w)
	require.Equal(t, apierrors.ErrCodeInvalidInput, apiErr.Code)
	require.NotNil(t, apiErr.Details)
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", registerPayload("taken@example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	w = env.postJSON(t, "/api/auth/register", registerPayload("taken@example.com"))
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_ConfirmationLifecycle(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", registerPayload("lifecycle@example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthenticationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	// Authentication is refused until the address is confirmed.
	w = env.postJSON(t, "/api/auth/authenticate", map[string]string{
		"email":    "lifecycle@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, decodeAPIError(t, w).Code)

	// A wrong token value is not found.
	w = env.get(t, "/api/auth/confirm?token=wrong-token")
	require.Equal(t, http.StatusNotFound, w.Code)

	// The real token confirms exactly once.
	w = env.get(t, "/api/auth/confirm?token="+response.ConfirmationToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.get(t, "/api/auth/confirm?token="+response.ConfirmationToken)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, apierrors.ErrCodeTokenConfirmed, decodeAPIError(t, w).Code)

	// With the account enabled, authentication succeeds.
	w = env.postJSON(t, "/api/auth/authenticate", map[string]string{
		"email":    "lifecycle@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Confirm_ExpiredToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", registerPayload("expired@example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthenticationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.NoError(t, env.db.Model(&models.ConfirmationToken{}).
		Where("token = ?", response.ConfirmationToken).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	w = env.get(t, "/api/auth/confirm?token="+response.ConfirmationToken)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, apierrors.ErrCodeTokenExpired, decodeAPIError(t, w).Code)
}

func TestAuthHandler_Confirm_MissingToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.get(t, "/api/auth/confirm")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
