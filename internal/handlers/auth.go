package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-api/internal/dto"
	apierrors "github.com/yukikurage/task-management-api/internal/errors"
	"github.com/yukikurage/task-management-api/internal/services"
)

// AuthHandler coordinates registration, login and email confirmation.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new, not yet enabled user and returns the session token
// together with the raw confirmation token value.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.authService.Register(services.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		MatchingPassword: req.MatchingPassword,
		Name:             req.Name,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthenticationResponse{
		JWT:               result.JWT,
		ConfirmationToken: result.ConfirmationToken,
	})
}

// Authenticate verifies credentials and returns a session token.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req dto.AuthenticationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthenticationResponse{JWT: result.JWT})
}

// Confirm exchanges a confirmation token and enables the bound user.
func (h *AuthHandler) Confirm(c *gin.Context) {
	token, ok := c.GetQuery("token")
	if !ok || token == "" {
		apierrors.BadRequest(c, "token query parameter is required")
		return
	}

	if err := h.authService.Confirm(token); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "email confirmed",
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordsNotMatching):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDisabled),
		errors.Is(err, services.ErrAccountLocked):
		apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, services.ErrTokenNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTokenConfirmed):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeTokenConfirmed, err.Error())
	case errors.Is(err, services.ErrTokenExpired):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeTokenExpired, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
