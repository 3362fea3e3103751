package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

// UserService backs the administrador-only account screen.
type UserService struct {
	api    ports.UserAPI
	logger zerolog.Logger
}

func NewUserService(api ports.UserAPI, logger zerolog.Logger) *UserService {
	return &UserService{api: api, logger: logger}
}

func (s *UserService) List(ctx context.Context, token string) ([]domain.User, error) {
	return s.api.ListUsers(ctx, token)
}

func (s *UserService) Create(ctx context.Context, token string, in ports.UserInput) (*domain.User, error) {
	u, err := s.api.CreateUser(ctx, token, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", u.Username).Str("rol", string(u.Rol)).Msg("user created")
	return u, nil
}

func (s *UserService) Update(ctx context.Context, token string, id int, in ports.UserInput) (*domain.User, error) {
	u, err := s.api.UpdateUser(ctx, token, id, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("id", id).Msg("user updated")
	return u, nil
}

// Toggle flips the activo flag of an account. The account's other fields
// are resent as-is and the password is left unchanged.
func (s *UserService) Toggle(ctx context.Context, token string, id int) (*domain.User, error) {
	users, err := s.api.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}

	var current *domain.User
	for i := range users {
		if users[i].ID == id {
			current = &users[i]
			break
		}
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	next := !current.Activo.Bool()
	u, err := s.api.UpdateUser(ctx, token, id, ports.UserInput{
		Nombre:   current.Nombre,
		Username: current.Username,
		Rol:      current.Rol,
		Activo:   &next,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("id", id).Bool("activo", next).Msg("user toggled")
	return u, nil
}
