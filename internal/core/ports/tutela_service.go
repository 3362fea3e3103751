package ports

import (
	"context"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

// TutelaFilter narrows the dashboard list. Query matches case number or
// claimant name, case-insensitive substring. Estado empty means all states.
type TutelaFilter struct {
	Query  string
	Estado domain.Estado
}

// TutelaStats are the dashboard counters, computed over the full list
// before filtering.
type TutelaStats struct {
	Total      int
	Pendientes int
	EnTramite  int
	Tramitadas int
}

// TutelaList is the dashboard view of the case list.
type TutelaList struct {
	Items []domain.Tutela
	Stats TutelaStats
}

// TutelaService defines the case use-cases behind the screens.
type TutelaService interface {
	List(ctx context.Context, token string, f TutelaFilter) (*TutelaList, error)
	Get(ctx context.Context, token string, id int) (*domain.Tutela, error)
	Create(ctx context.Context, token string, in TutelaInput, evidencia *EvidenceUpload) (*domain.Tutela, error)
	Update(ctx context.Context, token string, id int, in TutelaInput, evidencia *EvidenceUpload) (*domain.Tutela, error)
	Delete(ctx context.Context, token string, id int) error
}
