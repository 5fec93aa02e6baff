package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/taskscribe-dev/taskscribe/errors"
	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	"github.com/taskscribe-dev/taskscribe/internal/domain/repositories"
	"github.com/taskscribe-dev/taskscribe/pkg/jwt"
)

// userContextKey is the Echo context key for the authenticated user
const userContextKey = "auth.user"

// EchoAuth returns an Echo middleware that validates the bearer token and
// loads the authenticated user into the request context. The actor identity
// is always derived from the verified token, never from request payloads.
func EchoAuth(jwtManager *jwt.Manager, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(401, "Missing authorization token")
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(401, "Invalid or expired token")
			}

			user, err := userRepo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(401, "Invalid or expired token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRole restricts a route to the given roles. Must run after EchoAuth.
func RequireRole(roles ...entities.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := GetUser(c)
			if !ok {
				return echo.NewHTTPError(401, "User not authenticated")
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(403, apperrors.ErrForbidden("Insufficient permissions").Message)
		}
	}
}

// GetUser returns the authenticated user stored by EchoAuth
func GetUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(userContextKey).(*entities.User)
	return user, ok
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	cookie, err := c.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}

	return ""
}
