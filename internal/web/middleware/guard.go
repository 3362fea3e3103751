package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/authz"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

// Guard enforces the route's role allow-set. It must run after Session so
// the resolved account is in context; by then the session is settled, so the
// snapshot is always ready. No roles means any authenticated account.
func Guard(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snapshot := authz.Snapshot{Ready: true, User: CurrentUser(c)}
			decision := authz.Decide(snapshot, roles)
			switch decision.Action {
			case authz.Allow:
				return next(c)
			case authz.RedirectLogin, authz.RedirectHome:
				return c.Redirect(http.StatusFound, decision.Target)
			default:
				// Defer cannot happen with a ready snapshot.
				return echo.NewHTTPError(http.StatusInternalServerError)
			}
		}
	}
}
