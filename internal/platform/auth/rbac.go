package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireRole returns middleware that checks if the caller's token carries
// one of the specified roles. A wrong role is an authentication failure, not
// an ownership one, so it maps to 401 rather than 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleFromContext(c.Request().Context())
			for _, required := range roles {
				if role == required {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
