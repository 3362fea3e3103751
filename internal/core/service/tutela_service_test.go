package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

type stubTutelaAPI struct {
	listFn   func(ctx context.Context, token string) ([]domain.Tutela, error)
	getFn    func(ctx context.Context, token string, id int) (*domain.Tutela, error)
	createFn func(ctx context.Context, token string, in ports.TutelaInput, ev *ports.EvidenceUpload) (*domain.Tutela, error)
	updateFn func(ctx context.Context, token string, id int, in ports.TutelaInput, ev *ports.EvidenceUpload) (*domain.Tutela, error)
	deleteFn func(ctx context.Context, token string, id int) error
}

func (s *stubTutelaAPI) ListTutelas(ctx context.Context, token string) ([]domain.Tutela, error) {
	return s.listFn(ctx, token)
}

func (s *stubTutelaAPI) GetTutela(ctx context.Context, token string, id int) (*domain.Tutela, error) {
	return s.getFn(ctx, token, id)
}

func (s *stubTutelaAPI) CreateTutela(ctx context.Context, token string, in ports.TutelaInput, ev *ports.EvidenceUpload) (*domain.Tutela, error) {
	return s.createFn(ctx, token, in, ev)
}

func (s *stubTutelaAPI) UpdateTutela(ctx context.Context, token string, id int, in ports.TutelaInput, ev *ports.EvidenceUpload) (*domain.Tutela, error) {
	return s.updateFn(ctx, token, id, in, ev)
}

func (s *stubTutelaAPI) DeleteTutela(ctx context.Context, token string, id int) error {
	return s.deleteFn(ctx, token, id)
}

func sampleTutelas() []domain.Tutela {
	return []domain.Tutela{
		{ID: 1, NumeroCaso: "TUT-2024-001", NombreAccionante: "Carlos Pérez", Estado: domain.EstadoPendiente},
		{ID: 2, NumeroCaso: "TUT-2024-002", NombreAccionante: "María Rodríguez", Estado: domain.EstadoEnTramite},
		{ID: 3, NumeroCaso: "TUT-2024-003", NombreAccionante: "Pedro Gómez", Estado: domain.EstadoTramitada},
		{ID: 4, NumeroCaso: "TUT-2024-004", NombreAccionante: "Carlos Martínez", Estado: domain.EstadoPendiente},
	}
}

func listService(t *testing.T) *TutelaService {
	t.Helper()
	api := &stubTutelaAPI{
		listFn: func(_ context.Context, token string) ([]domain.Tutela, error) {
			if token != "t1" {
				t.Fatalf("unexpected token: %q", token)
			}
			return sampleTutelas(), nil
		},
	}
	return NewTutelaService(api, zerolog.Nop())
}

func TestTutelaService_List_NoFilter(t *testing.T) {
	svc := listService(t)

	out, err := svc.List(context.Background(), "t1", ports.TutelaFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(out.Items))
	}
	want := ports.TutelaStats{Total: 4, Pendientes: 2, EnTramite: 1, Tramitadas: 1}
	if out.Stats != want {
		t.Fatalf("expected stats %+v, got %+v", want, out.Stats)
	}
}

func TestTutelaService_List_QueryMatchesCaseOrClaimant(t *testing.T) {
	svc := listService(t)

	// Case-insensitive match on the claimant name.
	out, err := svc.List(context.Background(), "t1", ports.TutelaFilter{Query: "carlos"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Items) != 2 || out.Items[0].ID != 1 || out.Items[1].ID != 4 {
		t.Fatalf("unexpected items: %+v", out.Items)
	}

	// Match on the case number.
	out, _ = svc.List(context.Background(), "t1", ports.TutelaFilter{Query: "2024-003"})
	if len(out.Items) != 1 || out.Items[0].ID != 3 {
		t.Fatalf("unexpected items: %+v", out.Items)
	}
}

func TestTutelaService_List_EstadoFilter(t *testing.T) {
	svc := listService(t)

	out, err := svc.List(context.Background(), "t1", ports.TutelaFilter{Estado: domain.EstadoPendiente})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 pendientes, got %d", len(out.Items))
	}
	// Counters still describe the whole list, not the filtered slice.
	if out.Stats.Total != 4 {
		t.Fatalf("stats must ignore the filter, got %+v", out.Stats)
	}
}

func TestTutelaService_List_CombinedFilter(t *testing.T) {
	svc := listService(t)

	out, err := svc.List(context.Background(), "t1", ports.TutelaFilter{Query: "carlos", Estado: domain.EstadoPendiente})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 items, got %+v", out.Items)
	}

	out, _ = svc.List(context.Background(), "t1", ports.TutelaFilter{Query: "maría", Estado: domain.EstadoPendiente})
	if len(out.Items) != 0 {
		t.Fatalf("expected no items, got %+v", out.Items)
	}
}

func TestTutelaService_List_PropagatesError(t *testing.T) {
	api := &stubTutelaAPI{
		listFn: func(context.Context, string) ([]domain.Tutela, error) {
			return nil, &domain.TransportError{Op: "list_tutelas", Status: 503}
		},
	}
	svc := NewTutelaService(api, zerolog.Nop())

	if _, err := svc.List(context.Background(), "t1", ports.TutelaFilter{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTutelaService_Create_ForwardsEvidence(t *testing.T) {
	var gotEvidence *ports.EvidenceUpload
	api := &stubTutelaAPI{
		createFn: func(_ context.Context, _ string, in ports.TutelaInput, ev *ports.EvidenceUpload) (*domain.Tutela, error) {
			gotEvidence = ev
			return &domain.Tutela{ID: 9, NumeroCaso: in.NumeroCaso, Estado: in.Estado}, nil
		},
	}
	svc := NewTutelaService(api, zerolog.Nop())

	ev := &ports.EvidenceUpload{Filename: "fallo.pdf", ContentType: "application/pdf"}
	created, err := svc.Create(context.Background(), "t1", ports.TutelaInput{NumeroCaso: "TUT-2024-009", Estado: domain.EstadoPendiente}, ev)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 9 {
		t.Fatalf("unexpected tutela: %+v", created)
	}
	if gotEvidence != ev {
		t.Fatalf("evidence not forwarded")
	}
}
