package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-api/internal/constants"
	apierrors "github.com/yukikurage/task-management-api/internal/errors"
	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/services"
)

// RequireAuth validates the bearer session token and loads the matching user
// into the request context. An expired token is reported with its own reason
// code so clients can distinguish it from a bad credential.
func RequireAuth(jwtService *services.JWTService, userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		email, err := jwtService.ExtractEmail(tokenString)
		if err != nil {
			if errors.Is(err, services.ErrSessionTokenExpired) {
				apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeExpiredToken, err.Error())
			} else {
				apierrors.Unauthorized(c, "")
			}
			c.Abort()
			return
		}

		user, err := userService.GetUserByEmail(email)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !jwtService.IsTokenValid(tokenString, user) {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireEnabled rejects authenticated requests from accounts that have not
// confirmed their email address. Kept separate from RequireAuth so the
// confirmation endpoints stay reachable for disabled accounts.
func RequireEnabled() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.Enabled {
			apierrors.ForbiddenWithCode(c, apierrors.ErrCodeAccountNotEnabled, "account is not enabled, confirm your email first")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from the request context.
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}
