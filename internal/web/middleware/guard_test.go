package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

func TestGuard_AllowsRoleInSet(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userKey, &domain.User{ID: 1, Username: "admin", Rol: domain.RoleAdministrador})

	called := false
	mw := Guard(domain.RoleAdministrador)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestGuard_RedirectsAnonymousToLogin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Guard()
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestGuard_RedirectsWrongRoleHome(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userKey, &domain.User{ID: 2, Username: "maria", Rol: domain.RoleVisualizador})

	mw := Guard(domain.RoleAdministrador)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestGuard_EmptySetAllowsAnyAuthenticated(t *testing.T) {
	e := echo.New()
	for _, rol := range domain.Roles() {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(userKey, &domain.User{ID: 1, Username: "u", Rol: rol})

		called := false
		handler := Guard()(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("rol %s: handler error: %v", rol, err)
		}
		if !called {
			t.Fatalf("rol %s: next handler not called", rol)
		}
	}
}
