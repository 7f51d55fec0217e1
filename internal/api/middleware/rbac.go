package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riftbuddy/riftbuddy-api/internal/api/metrics"
	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

// RoleResolver returns the caller's current role identifier. The role is
// looked up against the user directory on every check rather than read from
// the token body, since it can change after issuance.
type RoleResolver func(ctx context.Context, userID string) (string, error)

// RBAC enforces role-based access control by priority comparison: the
// caller's current role must meet or exceed any one of the required tiers.
// With no required tiers the route is unconditionally permitted.
func RBAC(registry *domain.RoleRegistry, resolve RoleResolver, required ...domain.Tier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(required) == 0 {
				return next(c)
			}

			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			roleID, err := resolve(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Token subject no longer exists.
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
				}
				return err
			}

			if !registry.Satisfies(roleID, required...) {
				metrics.AuthzDecisionsTotal.WithLabelValues("denied").Inc()
				return domain.ErrForbidden
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}
