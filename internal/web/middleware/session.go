package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
	"github.com/farmacia-institucional/tutelas-portal/internal/infrastructure/session"
)

const (
	storeKey = "session_store"
	userKey  = "session_user"
	tokenKey = "session_token"
)

// Session builds a cookie-backed session store for each request and resolves
// the signed-in account once, so handlers and the guard read from context
// instead of re-parsing cookies. A malformed session is cleared by the store
// and the request continues anonymous.
func Session(opts session.Options, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := session.New(c.Response(), c.Request(), opts)
			c.Set(storeKey, store)

			sess, err := store.Load()
			if err != nil {
				if errors.Is(err, domain.ErrMalformedSession) {
					log.Debug().Str("path", c.Path()).Msg("discarded malformed session cookies")
				} else {
					log.Error().Err(err).Msg("session load failed")
				}
				return next(c)
			}
			if sess != nil && sess.Authenticated() {
				c.Set(userKey, sess.User)
				c.Set(tokenKey, sess.Token)
			}
			return next(c)
		}
	}
}

// Store returns the request's session store.
func Store(c echo.Context) ports.SessionStore {
	store, _ := c.Get(storeKey).(ports.SessionStore)
	return store
}

// CurrentUser returns the signed-in account, or nil for anonymous requests.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}

// Token returns the API credential of the signed-in account, empty for
// anonymous requests.
func Token(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}
