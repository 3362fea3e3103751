package ports

import (
	"context"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

// UserService defines the account administration use-cases.
type UserService interface {
	List(ctx context.Context, token string) ([]domain.User, error)
	Create(ctx context.Context, token string, in UserInput) (*domain.User, error)
	Update(ctx context.Context, token string, id int, in UserInput) (*domain.User, error)
	// Toggle flips an account's activo flag, leaving everything else as is.
	Toggle(ctx context.Context, token string, id int) (*domain.User, error)
}
