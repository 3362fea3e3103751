package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/metrics"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/middleware"
)

type LoginHandler struct {
	auth   ports.AuthService
	logger zerolog.Logger
}

func NewLoginHandler(auth ports.AuthService, logger zerolog.Logger) *LoginHandler {
	return &LoginHandler{auth: auth, logger: logger}
}

type loginPage struct {
	basePage
	Username string
}

// Show renders the credentials form. Visitors already signed in are sent to
// the dashboard instead.
func (h *LoginHandler) Show(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return c.Render(http.StatusOK, "login", loginPage{basePage: newPage(c, "Iniciar sesión")})
}

// Submit performs the single login attempt. Failures re-render the form
// with the inline message; the entered username survives, the password
// never does.
func (h *LoginHandler) Submit(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	page := loginPage{basePage: newPage(c, "Iniciar sesión"), Username: form.Username}
	if err := c.Validate(form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusBadRequest, "login", page)
	}

	store := middleware.Store(c)
	user, err := h.auth.Login(c.Request().Context(), store, form.Username, form.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		page.Error = errorMessage(err, "Error al iniciar sesión")
		return c.Render(http.StatusUnauthorized, "login", page)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.logger.Info().Str("username", user.Username).Str("rol", string(user.Rol)).Msg("visitor signed in")
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session and returns to the login screen. Safe to call
// while already signed out.
func (h *LoginHandler) Logout(c echo.Context) error {
	h.auth.Logout(middleware.Store(c))
	return c.Redirect(http.StatusFound, "/login")
}
