package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/nav"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/middleware"
)

// basePage carries what the shared layout needs: the signed-in account, its
// menu and the one-shot feedback banners. Screens embed it.
type basePage struct {
	Title   string
	User    *domain.User
	Nav     []nav.Entry
	Active  string
	Error   string
	Success string
}

// newPage builds the layout data for the current request. Anonymous requests
// get an empty menu.
func newPage(c echo.Context, title string) basePage {
	page := basePage{Title: title, Active: activeTarget(c)}
	if user := middleware.CurrentUser(c); user != nil {
		page.User = user
		page.Nav = nav.Visible(user.Rol)
	}
	return page
}

// activeTarget maps the request path to the menu entry it belongs to, so the
// sidebar highlights case detail and edit screens as part of the case list.
func activeTarget(c echo.Context) string {
	switch c.Path() {
	case "/nueva-tutela":
		return "/nueva-tutela"
	case "/usuarios", "/usuarios/:id", "/usuarios/:id/estado":
		return "/usuarios"
	default:
		return "/dashboard"
	}
}

// errorMessage turns a failure into the inline message the originating
// screen shows. Messages from the case API travel verbatim; transport
// failures get a generic Spanish line that leaks nothing.
func errorMessage(err error, fallback string) string {
	var credErr *domain.CredentialsError
	if errors.As(err, &credErr) {
		return credErr.Error()
	}
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	var transErr *domain.TransportError
	if errors.As(err, &transErr) {
		return "No fue posible comunicarse con el servidor. Intente de nuevo."
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "El registro solicitado no existe."
	}
	return fallback
}
