package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/middleware"
)

// maxEvidenceSize is the upload limit checked before anything is forwarded
// to the case API.
const maxEvidenceSize = 10 << 20

type TutelaHandler struct {
	tutelas  ports.TutelaService
	evidence EvidenceLinker
	logger   zerolog.Logger
}

func NewTutelaHandler(tutelas ports.TutelaService, evidence EvidenceLinker, logger zerolog.Logger) *TutelaHandler {
	return &TutelaHandler{tutelas: tutelas, evidence: evidence, logger: logger}
}

type detailPage struct {
	basePage
	Tutela      domain.Tutela
	EvidenceURL string
	CanEdit     bool
}

type formPage struct {
	basePage
	Editing         bool
	Action          string
	Form            tutelaForm
	Estados         []domain.Estado
	CurrentEvidence string
	EvidenceURL     string
}

// Detail shows one case in full.
func (h *TutelaHandler) Detail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	t, err := h.tutelas.Get(c.Request().Context(), middleware.Token(c), id)
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "tutela_detail", detailPage{
		basePage:    newPage(c, "Tutela "+t.NumeroCaso),
		Tutela:      *t,
		EvidenceURL: h.evidence.EvidenceURL(t.EvidenciaPath),
		CanEdit:     user.Rol != domain.RoleVisualizador,
	})
}

// NewForm renders an empty case form.
func (h *TutelaHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "tutela_form", h.newFormPage(c))
}

// Create registers a new case. On success the form resets so the next case
// can be typed right away.
func (h *TutelaHandler) Create(c echo.Context) error {
	page := h.newFormPage(c)

	var form tutelaForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	page.Form = form

	if err := c.Validate(form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusBadRequest, "tutela_form", page)
	}

	evidencia, file, msg := h.readEvidence(c)
	if msg != "" {
		page.Error = msg
		return c.Render(http.StatusBadRequest, "tutela_form", page)
	}
	if file != nil {
		defer file.Close()
	}

	created, err := h.tutelas.Create(c.Request().Context(), middleware.Token(c), form.input(), evidencia)
	if err != nil {
		page.Error = errorMessage(err, "No fue posible registrar la tutela.")
		return c.Render(http.StatusOK, "tutela_form", page)
	}

	h.logger.Info().Int("tutela_id", created.ID).Str("numero_caso", created.NumeroCaso).Msg("tutela created")
	page.Form = tutelaForm{Estado: string(domain.EstadoPendiente)}
	page.Success = "Tutela registrada correctamente"
	return c.Render(http.StatusOK, "tutela_form", page)
}

// EditForm renders the form pre-filled from the stored case.
func (h *TutelaHandler) EditForm(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	t, err := h.tutelas.Get(c.Request().Context(), middleware.Token(c), id)
	if err != nil {
		return err
	}

	page := h.editFormPage(c, t)
	page.Form = tutelaFormFrom(t)
	return c.Render(http.StatusOK, "tutela_form", page)
}

// Update saves the edited case. The stored evidence survives unless a new
// file was attached.
func (h *TutelaHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	current, err := h.tutelas.Get(c.Request().Context(), middleware.Token(c), id)
	if err != nil {
		return err
	}
	page := h.editFormPage(c, current)

	var form tutelaForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	page.Form = form

	if err := c.Validate(form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusBadRequest, "tutela_form", page)
	}

	evidencia, file, msg := h.readEvidence(c)
	if msg != "" {
		page.Error = msg
		return c.Render(http.StatusBadRequest, "tutela_form", page)
	}
	if file != nil {
		defer file.Close()
	}

	updated, err := h.tutelas.Update(c.Request().Context(), middleware.Token(c), id, form.input(), evidencia)
	if err != nil {
		page.Error = errorMessage(err, "No fue posible actualizar la tutela.")
		return c.Render(http.StatusOK, "tutela_form", page)
	}

	h.logger.Info().Int("tutela_id", updated.ID).Msg("tutela updated")
	page.Form = tutelaFormFrom(updated)
	page.CurrentEvidence = updated.EvidenciaNombre
	page.EvidenceURL = h.evidence.EvidenceURL(updated.EvidenciaPath)
	page.Success = "Tutela actualizada correctamente"
	return c.Render(http.StatusOK, "tutela_form", page)
}

func (h *TutelaHandler) newFormPage(c echo.Context) formPage {
	return formPage{
		basePage: newPage(c, "Nueva Tutela"),
		Action:   "/nueva-tutela",
		Estados:  domain.Estados(),
		Form:     tutelaForm{Estado: string(domain.EstadoPendiente)},
	}
}

func (h *TutelaHandler) editFormPage(c echo.Context, t *domain.Tutela) formPage {
	return formPage{
		basePage:        newPage(c, "Editar Tutela"),
		Editing:         true,
		Action:          fmt.Sprintf("/editar-tutela/%d", t.ID),
		Estados:         domain.Estados(),
		CurrentEvidence: t.EvidenciaNombre,
		EvidenceURL:     h.evidence.EvidenceURL(t.EvidenciaPath),
	}
}

// readEvidence extracts the optional "evidencia" upload, enforcing the type
// and size limits locally. An empty message means the file (or its absence)
// is acceptable; the caller owns closing the returned file.
func (h *TutelaHandler) readEvidence(c echo.Context) (*ports.EvidenceUpload, multipart.File, string) {
	header, err := c.FormFile("evidencia")
	if err != nil {
		// No file attached.
		return nil, nil, ""
	}
	if header.Filename == "" || header.Size == 0 {
		// Browsers submit an empty part when no file was chosen.
		return nil, nil, ""
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".png" {
		return nil, nil, "La evidencia debe ser un archivo .pdf o .png."
	}
	if header.Size > maxEvidenceSize {
		return nil, nil, "La evidencia no puede superar los 10 MB."
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error().Err(err).Msg("evidence upload unreadable")
		return nil, nil, "No fue posible leer el archivo adjunto."
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		if ext == ".pdf" {
			contentType = "application/pdf"
		} else {
			contentType = "image/png"
		}
	}
	return &ports.EvidenceUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Content:     file,
	}, file, ""
}
