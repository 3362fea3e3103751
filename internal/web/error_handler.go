package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/nav"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/middleware"
)

// errorPage is the data of the generic error screen.
type errorPage struct {
	Title   string
	Message string
	User    *domain.User
	Nav     []nav.Entry
	Active  string
	Error   string
	Success string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends unknown paths and missing records back to the dashboard.
//   - Maps domain errors to their HTTP status and a Spanish message.
//   - Logs unexpected errors internally without leaking details to the visitor.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, redirect := resolveError(err, log, c)
		if redirect != "" {
			_ = c.Redirect(http.StatusFound, redirect)
			return
		}

		page := errorPage{Title: "Error", Message: msg, Active: "/dashboard"}
		if user := middleware.CurrentUser(c); user != nil {
			page.User = user
			page.Nav = nav.Visible(user.Rol)
		}
		if renderErr := c.Render(code, "error", page); renderErr != nil {
			log.Error().Err(renderErr).Msg("error page render failed")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return 0, "", "/dashboard"
		}
		return he.Code, http.StatusText(he.Code), ""
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return 0, "", "/dashboard"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return 0, "", "/login"
	}

	var te *domain.TransportError
	if errors.As(err, &te) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("case API failure")
		return http.StatusBadGateway, "No fue posible comunicarse con el servidor. Intente de nuevo.", ""
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Ocurrió un error inesperado.", ""
}
