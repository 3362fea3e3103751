package ports

import (
	"context"
	"io"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

// LoginResult is what the case API returns for accepted credentials.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthAPI is the authentication endpoint of the case API.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// TutelaInput carries the editable fields of a case.
type TutelaInput struct {
	NumeroCaso           string
	NombreAccionante     string
	Estado               domain.Estado
	ObservacionAbogada   string
	ObservacionRespuesta string
}

// EvidenceUpload is a single evidence file forwarded to the case API as the
// multipart "evidencia" part. Nil means the existing file is kept.
type EvidenceUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// TutelaAPI is the case CRUD surface of the case API. Every call carries
// the bearer token explicitly; nothing holds credentials between calls.
type TutelaAPI interface {
	ListTutelas(ctx context.Context, token string) ([]domain.Tutela, error)
	GetTutela(ctx context.Context, token string, id int) (*domain.Tutela, error)
	CreateTutela(ctx context.Context, token string, in TutelaInput, evidencia *EvidenceUpload) (*domain.Tutela, error)
	UpdateTutela(ctx context.Context, token string, id int, in TutelaInput, evidencia *EvidenceUpload) (*domain.Tutela, error)
	DeleteTutela(ctx context.Context, token string, id int) error
}

// UserInput carries the editable fields of an account. Password empty on
// update means "leave unchanged". Activo nil means "do not touch".
type UserInput struct {
	Nombre   string
	Username string
	Password string
	Rol      domain.Role
	Activo   *bool
}

// UserAPI is the account administration surface of the case API.
type UserAPI interface {
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	CreateUser(ctx context.Context, token string, in UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, token string, id int, in UserInput) (*domain.User, error)
}

// BackendProbe checks that the case API is reachable, for readiness probes.
type BackendProbe interface {
	Ping(ctx context.Context) error
}
