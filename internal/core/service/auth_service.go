package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

// AuthService implements the login/logout lifecycle against the case API.
//
// Concurrent logins for the same visitor are not coordinated: whichever
// call resolves last determines the stored session.
type AuthService struct {
	api    ports.AuthAPI
	logger zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, logger: logger}
}

// Login performs exactly one authentication attempt against the case API.
// On success the token and profile are saved to store together; on any
// failure the store is left untouched.
func (s *AuthService) Login(ctx context.Context, store ports.SessionStore, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, &domain.CredentialsError{}
	}

	res, err := s.api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Info().Str("username", username).Msg("login rejected")
		} else {
			s.logger.Error().Err(err).Str("username", username).Msg("login failed")
		}
		return nil, err
	}

	if err := store.Save(res.Token, res.User); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", res.User.Username).Str("rol", string(res.User.Rol)).Msg("login ok")
	return res.User, nil
}

// Logout clears the stored session. Idempotent: logging out while already
// logged out does nothing.
func (s *AuthService) Logout(store ports.SessionStore) {
	_ = store.Clear()
}

// CurrentUser returns the stored profile or nil. Malformed persisted state
// has already been cleared by the store; it is reported here as logged out.
func (s *AuthService) CurrentUser(store ports.SessionStore) *domain.User {
	sess, err := store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrMalformedSession) {
			s.logger.Debug().Msg("discarded malformed session")
		}
		return nil
	}
	if !sess.Authenticated() {
		return nil
	}
	return sess.User
}
