package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

// ListTutelas fetches every case visible to the token's account.
func (c *Client) ListTutelas(ctx context.Context, token string) (items []domain.Tutela, err error) {
	defer c.observe("list_tutelas", time.Now(), &err)

	err = c.doJSON(ctx, "list_tutelas", http.MethodGet, "/api/tutelas", token, nil, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetTutela fetches one case by id.
func (c *Client) GetTutela(ctx context.Context, token string, id int) (t *domain.Tutela, err error) {
	defer c.observe("get_tutela", time.Now(), &err)

	var out domain.Tutela
	err = c.doJSON(ctx, "get_tutela", http.MethodGet, fmt.Sprintf("/api/tutelas/%d", id), token, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTutela registers a new case, forwarding the evidence file when one
// was attached.
func (c *Client) CreateTutela(ctx context.Context, token string, in ports.TutelaInput, evidencia *ports.EvidenceUpload) (t *domain.Tutela, err error) {
	defer c.observe("create_tutela", time.Now(), &err)
	return c.sendTutela(ctx, "create_tutela", http.MethodPost, "/api/tutelas", token, in, evidencia)
}

// UpdateTutela replaces the editable fields of a case. A nil evidencia
// keeps the file already stored by the API.
func (c *Client) UpdateTutela(ctx context.Context, token string, id int, in ports.TutelaInput, evidencia *ports.EvidenceUpload) (t *domain.Tutela, err error) {
	defer c.observe("update_tutela", time.Now(), &err)
	return c.sendTutela(ctx, "update_tutela", http.MethodPut, fmt.Sprintf("/api/tutelas/%d", id), token, in, evidencia)
}

// DeleteTutela removes a case.
func (c *Client) DeleteTutela(ctx context.Context, token string, id int) (err error) {
	defer c.observe("delete_tutela", time.Now(), &err)

	resp, err := c.do(ctx, "delete_tutela", http.MethodDelete, fmt.Sprintf("/api/tutelas/%d", id), token, "", nil)
	if err != nil {
		return err
	}
	return decode("delete_tutela", resp, nil)
}

func (c *Client) sendTutela(ctx context.Context, op, method, path, token string, in ports.TutelaInput, evidencia *ports.EvidenceUpload) (*domain.Tutela, error) {
	body, contentType, err := tutelaForm(in, evidencia)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.do(ctx, op, method, path, token, contentType, body)
	if err != nil {
		return nil, err
	}

	var out domain.Tutela
	if err := decode(op, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// tutelaForm encodes the case fields, and the evidence file when present,
// as the multipart body the API expects.
func tutelaForm(in ports.TutelaInput, evidencia *ports.EvidenceUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"numero_caso", in.NumeroCaso},
		{"nombre_accionante", in.NombreAccionante},
		{"estado", string(in.Estado)},
		{"observacion_abogada", in.ObservacionAbogada},
		{"observacion_respuesta", in.ObservacionRespuesta},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if evidencia != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="evidencia"; filename="%s"`, escapeQuotes(evidencia.Filename)))
		contentType := evidencia.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, evidencia.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
