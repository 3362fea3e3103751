package web

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

func tutelaFormRequest(t *testing.T, target string, fields map[string]string, filename, fileContent string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if filename != "" {
		part, err := w.CreateFormFile("evidencia", filename)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := io.Copy(part, strings.NewReader(fileContent)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for _, ck := range signedInCookies(t, domain.RoleAbogada) {
		req.AddCookie(ck)
	}
	return req
}

func validTutelaFields() map[string]string {
	return map[string]string{
		"numero_caso":       "TUT-2024-009",
		"nombre_accionante": "Carlos Pérez",
		"estado":            "pendiente",
	}
}

func TestCrearTutela_SuccessResetsForm(t *testing.T) {
	var gotInput ports.TutelaInput
	tutelas := &stubTutelaAPI{
		createFn: func(_ context.Context, token string, in ports.TutelaInput, evidencia *ports.EvidenceUpload) (*domain.Tutela, error) {
			gotInput = in
			return &domain.Tutela{ID: 9, NumeroCaso: in.NumeroCaso, NombreAccionante: in.NombreAccionante, Estado: in.Estado}, nil
		},
	}
	e := newTestRouter(t, nil, tutelas, nil)

	rec := serve(e, tutelaFormRequest(t, "/nueva-tutela", validTutelaFields(), "", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotInput.NumeroCaso != "TUT-2024-009" {
		t.Fatalf("input not forwarded: %+v", gotInput)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Tutela registrada correctamente") {
		t.Fatalf("expected success banner")
	}
	// The form resets for the next case.
	if strings.Contains(body, "TUT-2024-009") {
		t.Fatalf("form should be empty after a successful create")
	}
}

func TestCrearTutela_RejectsWrongFileType(t *testing.T) {
	tutelas := &stubTutelaAPI{
		createFn: func(context.Context, string, ports.TutelaInput, *ports.EvidenceUpload) (*domain.Tutela, error) {
			t.Fatalf("the case API must not be called for a rejected file")
			return nil, nil
		},
	}
	e := newTestRouter(t, nil, tutelas, nil)

	rec := serve(e, tutelaFormRequest(t, "/nueva-tutela", validTutelaFields(), "script.exe", "MZ"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".pdf o .png") {
		t.Fatalf("expected the file type message")
	}
}

func TestCrearTutela_ForwardsEvidence(t *testing.T) {
	var gotEvidence *ports.EvidenceUpload
	var gotContent string
	tutelas := &stubTutelaAPI{
		createFn: func(_ context.Context, _ string, in ports.TutelaInput, evidencia *ports.EvidenceUpload) (*domain.Tutela, error) {
			gotEvidence = evidencia
			if evidencia != nil {
				raw, _ := io.ReadAll(evidencia.Content)
				gotContent = string(raw)
			}
			return &domain.Tutela{ID: 9, NumeroCaso: in.NumeroCaso, Estado: in.Estado}, nil
		},
	}
	e := newTestRouter(t, nil, tutelas, nil)

	rec := serve(e, tutelaFormRequest(t, "/nueva-tutela", validTutelaFields(), "fallo.pdf", "%PDF-1.4"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotEvidence == nil || gotEvidence.Filename != "fallo.pdf" {
		t.Fatalf("evidence not forwarded: %+v", gotEvidence)
	}
	if gotContent != "%PDF-1.4" {
		t.Fatalf("evidence content not forwarded: %q", gotContent)
	}
}

func TestCrearTutela_MissingFieldsShowValidation(t *testing.T) {
	e := newTestRouter(t, nil, nil, nil)

	fields := validTutelaFields()
	fields["numero_caso"] = ""
	rec := serve(e, tutelaFormRequest(t, "/nueva-tutela", fields, "", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "número de caso") {
		t.Fatalf("expected field message")
	}
}

func TestEditarTutela_PrefillsAndSaves(t *testing.T) {
	stored := domain.Tutela{
		ID: 3, NumeroCaso: "TUT-2024-003", NombreAccionante: "Pedro Gómez",
		Estado: domain.EstadoPendiente, EvidenciaPath: "abc.pdf", EvidenciaNombre: "fallo.pdf",
	}
	var updated *ports.TutelaInput
	tutelas := &stubTutelaAPI{
		getFn: func(context.Context, string, int) (*domain.Tutela, error) {
			out := stored
			return &out, nil
		},
		updateFn: func(_ context.Context, _ string, id int, in ports.TutelaInput, _ *ports.EvidenceUpload) (*domain.Tutela, error) {
			updated = &in
			out := stored
			out.Estado = in.Estado
			return &out, nil
		},
	}
	e := newTestRouter(t, nil, tutelas, nil)

	req := httptest.NewRequest(http.MethodGet, "/editar-tutela/3", nil)
	for _, ck := range signedInCookies(t, domain.RoleAbogada) {
		req.AddCookie(ck)
	}
	rec := serve(e, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "TUT-2024-003") || !strings.Contains(body, "fallo.pdf") {
		t.Fatalf("form should be pre-filled with the stored case")
	}

	fields := validTutelaFields()
	fields["numero_caso"] = "TUT-2024-003"
	fields["estado"] = "tramitada"
	rec = serve(e, tutelaFormRequest(t, "/editar-tutela/3", fields, "", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if updated == nil || updated.Estado != domain.EstadoTramitada {
		t.Fatalf("update not forwarded: %+v", updated)
	}
	if !strings.Contains(rec.Body.String(), "Tutela actualizada correctamente") {
		t.Fatalf("expected success banner")
	}
}
