package middleware

import (
	"strings"

	"loandesk/internal/adapters/persistence/repositories"
	"loandesk/internal/config"
	"loandesk/internal/pkg/jwt"
	"loandesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by AuthMiddleware
const (
	LocalUserID = "userID"
	LocalUser   = "currentUser"
)

// AuthMiddleware creates the authentication gate. It extracts the bearer
// token, verifies it, resolves the embedded user ID to a concrete user
// record and attaches both to the request context. A token whose user no
// longer resolves is rejected, never treated as anonymous.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUser, user)

		return c.Next()
	}
}
