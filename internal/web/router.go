// Package web assembles the portal's HTTP surface: routes, their role
// allow-sets, the shared middleware chain and the error handler.
package web

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
	"github.com/farmacia-institucional/tutelas-portal/internal/infrastructure/session"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/handler"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/middleware"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/view"
)

// Dependencies is everything the router wires together.
type Dependencies struct {
	Auth     ports.AuthService
	Tutelas  ports.TutelaService
	Users    ports.UserService
	Probe    ports.BackendProbe
	Evidence handler.EvidenceLinker

	SessionOpts session.Options
	Logger      zerolog.Logger

	// Registry receives the request metrics. Nil falls back to the default
	// Prometheus registry; tests pass their own so routers can be rebuilt.
	Registry *prometheus.Registry
}

// NewRouter builds the Echo instance with all routes registered. Each
// route's allow-set is a literal enumeration; nothing is inferred from a
// role hierarchy.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "tutelas",
		Registerer: registerer,
	}))
	e.Use(middleware.Session(deps.SessionOpts, deps.Logger))

	// --- Handlers ---
	loginHandler := handler.NewLoginHandler(deps.Auth, deps.Logger)
	dashboardHandler := handler.NewDashboardHandler(deps.Tutelas, deps.Evidence, deps.Logger)
	tutelaHandler := handler.NewTutelaHandler(deps.Tutelas, deps.Evidence, deps.Logger)
	userHandler := handler.NewUserHandler(deps.Users, deps.Logger)
	healthHandler := handler.NewHealthHandler(deps.Probe)

	anyRole := middleware.Guard()
	editores := middleware.Guard(domain.RoleAdministrador, domain.RoleAbogada)
	admin := middleware.Guard(domain.RoleAdministrador)

	// --- Public ---
	e.GET("/login", loginHandler.Show)
	e.POST("/login", loginHandler.Submit)
	e.POST("/logout", loginHandler.Logout)

	// --- Any authenticated role ---
	e.GET("/dashboard", dashboardHandler.Show, anyRole)
	e.GET("/tutela/:id", tutelaHandler.Detail, anyRole)

	// --- administrador, abogada ---
	e.GET("/nueva-tutela", tutelaHandler.NewForm, editores)
	e.POST("/nueva-tutela", tutelaHandler.Create, editores)
	e.GET("/editar-tutela/:id", tutelaHandler.EditForm, editores)
	e.POST("/editar-tutela/:id", tutelaHandler.Update, editores)

	// --- administrador only ---
	e.POST("/tutela/:id/eliminar", dashboardHandler.Delete, admin)
	e.GET("/usuarios", userHandler.List, admin)
	e.POST("/usuarios", userHandler.Create, admin)
	e.GET("/usuarios/:id", userHandler.EditForm, admin)
	e.POST("/usuarios/:id", userHandler.Update, admin)
	e.POST("/usuarios/:id/estado", userHandler.Toggle, admin)

	// --- Health probes and metrics (no session required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	// Everything else lands on the dashboard, which the guard turns into
	// /login for anonymous visitors.
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/dashboard")
	})
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/dashboard")
	})

	return e, nil
}
