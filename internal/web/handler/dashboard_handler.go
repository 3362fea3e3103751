package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/middleware"
)

// EvidenceLinker builds the browser-reachable URL of a stored evidence file.
type EvidenceLinker interface {
	EvidenceURL(path string) string
}

type DashboardHandler struct {
	tutelas  ports.TutelaService
	evidence EvidenceLinker
	logger   zerolog.Logger
}

func NewDashboardHandler(tutelas ports.TutelaService, evidence EvidenceLinker, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{tutelas: tutelas, evidence: evidence, logger: logger}
}

type tutelaRow struct {
	domain.Tutela
	EvidenceURL string
}

type dashboardPage struct {
	basePage
	Query     string
	Estado    domain.Estado
	Estados   []domain.Estado
	Stats     ports.TutelaStats
	Items     []tutelaRow
	CanEdit   bool
	CanDelete bool
}

// Show renders the case list. Filtering is linear and in memory; the stat
// cards always reflect the unfiltered list.
func (h *DashboardHandler) Show(c echo.Context) error {
	user := middleware.CurrentUser(c)
	page := dashboardPage{
		basePage:  newPage(c, "Tutelas"),
		Query:     c.QueryParam("q"),
		Estado:    domain.Estado(c.QueryParam("estado")),
		Estados:   domain.Estados(),
		CanEdit:   user.Rol != domain.RoleVisualizador,
		CanDelete: user.Rol == domain.RoleAdministrador,
	}
	if page.Estado != "" && !page.Estado.Valid() {
		page.Estado = ""
	}
	if c.QueryParam("error") == "eliminar" {
		page.Error = "No fue posible eliminar la tutela."
	}

	list, err := h.tutelas.List(c.Request().Context(), middleware.Token(c), ports.TutelaFilter{
		Query:  page.Query,
		Estado: page.Estado,
	})
	if err != nil {
		page.Error = errorMessage(err, "No fue posible cargar las tutelas.")
		return c.Render(http.StatusOK, "dashboard", page)
	}

	page.Stats = list.Stats
	page.Items = make([]tutelaRow, 0, len(list.Items))
	for _, t := range list.Items {
		page.Items = append(page.Items, tutelaRow{Tutela: t, EvidenceURL: h.evidence.EvidenceURL(t.EvidenciaPath)})
	}
	return c.Render(http.StatusOK, "dashboard", page)
}

// Delete removes a case and returns to the list. The route guard already
// limits this to administrators.
func (h *DashboardHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	if err := h.tutelas.Delete(c.Request().Context(), middleware.Token(c), id); err != nil {
		h.logger.Warn().Err(err).Int("tutela_id", id).Msg("delete failed")
		return c.Redirect(http.StatusFound, "/dashboard?error=eliminar")
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}
