package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

// Echo context keys
const (
	PrincipalKey = "principal"
	UserIDKey    = "user_id"
)

// Authenticator verifies a bearer token
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

// EchoAuth returns an Echo middleware that validates the JWT and sets
// "user_id" (uuid.UUID) and "principal" (auth.Principal) into Echo context.
// The request context carries the principal too.
func EchoAuth(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			principal, err := authenticator.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, ucerrors.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(PrincipalKey, principal)
			c.Set(UserIDKey, principal.UserID)
			c.SetRequest(c.Request().WithContext(auth.WithPrincipal(c.Request().Context(), principal)))

			return next(c)
		}
	}
}

// RequireAdmin rejects callers without the admin role
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !principal.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// GetPrincipal retrieves the caller set by EchoAuth
func GetPrincipal(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(auth.Principal)
	return p, ok
}

// GetUserID retrieves the caller id set by EchoAuth
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok
}

// extractToken reads the Authorization header, then the access_token cookie.
// Browsers cannot set headers on websocket upgrades, those may pass ?token=.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return r.URL.Query().Get("token")
	}
	return ""
}
