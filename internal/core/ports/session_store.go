package ports

import "github.com/farmacia-institucional/tutelas-portal/internal/core/domain"

// SessionStore persists the visitor's token and profile across page loads.
//
// Save and Clear are the only mutators and both fields move together: no
// reader may ever observe a token without a profile or a profile without a
// token. Load reports domain.ErrMalformedSession when the persisted state
// failed the shape check; the store clears the partial state itself before
// returning, so the caller only has to treat the visitor as logged out.
type SessionStore interface {
	Load() (*domain.Session, error)
	Save(token string, user *domain.User) error
	Clear() error
}
