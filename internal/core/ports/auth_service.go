package ports

import (
	"context"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

// AuthService is the login/logout lifecycle around a visitor's session
// store. Implementations hold no per-visitor state of their own; the store
// passed to each call is the single source of truth.
type AuthService interface {
	// Login performs a single authentication attempt. On success the
	// session is saved to store and the profile is returned. There are no
	// retries; the caller decides whether to try again.
	Login(ctx context.Context, store SessionStore, username, password string) (*domain.User, error)
	// Logout clears the session. Calling it while logged out is a no-op.
	Logout(store SessionStore)
	// CurrentUser returns the stored profile, or nil when logged out or
	// when the persisted state was malformed (recovered silently).
	CurrentUser(store SessionStore) *domain.User
}
