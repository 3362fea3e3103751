package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

// TutelaService backs the dashboard, detail and form screens. The case API
// owns the data; this service only fetches, filters in memory and forwards
// writes.
type TutelaService struct {
	api    ports.TutelaAPI
	logger zerolog.Logger
}

func NewTutelaService(api ports.TutelaAPI, logger zerolog.Logger) *TutelaService {
	return &TutelaService{api: api, logger: logger}
}

// List fetches every case and applies the dashboard filter. The stat
// counters always cover the unfiltered list so they do not jump around
// while the visitor types in the search box.
func (s *TutelaService) List(ctx context.Context, token string, f ports.TutelaFilter) (*ports.TutelaList, error) {
	items, err := s.api.ListTutelas(ctx, token)
	if err != nil {
		s.logger.Error().Err(err).Msg("list tutelas failed")
		return nil, err
	}

	out := &ports.TutelaList{Stats: countEstados(items)}
	out.Items = filterTutelas(items, f)
	return out, nil
}

func (s *TutelaService) Get(ctx context.Context, token string, id int) (*domain.Tutela, error) {
	return s.api.GetTutela(ctx, token, id)
}

func (s *TutelaService) Create(ctx context.Context, token string, in ports.TutelaInput, evidencia *ports.EvidenceUpload) (*domain.Tutela, error) {
	t, err := s.api.CreateTutela(ctx, token, in, evidencia)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("numero_caso", t.NumeroCaso).Int("id", t.ID).Msg("tutela created")
	return t, nil
}

func (s *TutelaService) Update(ctx context.Context, token string, id int, in ports.TutelaInput, evidencia *ports.EvidenceUpload) (*domain.Tutela, error) {
	t, err := s.api.UpdateTutela(ctx, token, id, in, evidencia)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("numero_caso", t.NumeroCaso).Int("id", id).Msg("tutela updated")
	return t, nil
}

func (s *TutelaService) Delete(ctx context.Context, token string, id int) error {
	if err := s.api.DeleteTutela(ctx, token, id); err != nil {
		return err
	}
	s.logger.Info().Int("id", id).Msg("tutela deleted")
	return nil
}

// filterTutelas keeps cases matching both the free-text query (case number
// or claimant, case-insensitive substring) and the estado filter.
func filterTutelas(items []domain.Tutela, f ports.TutelaFilter) []domain.Tutela {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]domain.Tutela, 0, len(items))
	for _, t := range items {
		if query != "" &&
			!strings.Contains(strings.ToLower(t.NumeroCaso), query) &&
			!strings.Contains(strings.ToLower(t.NombreAccionante), query) {
			continue
		}
		if f.Estado != "" && t.Estado != f.Estado {
			continue
		}
		out = append(out, t)
	}
	return out
}

func countEstados(items []domain.Tutela) ports.TutelaStats {
	stats := ports.TutelaStats{Total: len(items)}
	for _, t := range items {
		switch t.Estado {
		case domain.EstadoPendiente:
			stats.Pendientes++
		case domain.EstadoEnTramite:
			stats.EnTramite++
		case domain.EstadoTramitada:
			stats.Tramitadas++
		}
	}
	return stats
}
