// Package backend is the HTTP client for the external case-management API.
// The portal treats that API as an opaque collaborator: it owns the data,
// the validation rules and the evidence storage; this package only moves
// requests and responses across, attaching the bearer token explicitly on
// every authenticated call.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/metrics"
)

// Client talks to the case API. Safe for concurrent use.
type Client struct {
	baseURL   string
	publicURL string
	http      *http.Client
	logger    zerolog.Logger
}

// Options configures the client.
type Options struct {
	// BaseURL is where the portal reaches the case API.
	BaseURL string
	// PublicURL is the base the visitor's browser can reach for evidence
	// links. Falls back to BaseURL when empty.
	PublicURL string
	// Timeout bounds each call. Zero falls back to 10 seconds.
	Timeout time.Duration
	Logger  zerolog.Logger
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	base := strings.TrimSuffix(opts.BaseURL, "/")
	public := strings.TrimSuffix(opts.PublicURL, "/")
	if public == "" {
		public = base
	}
	return &Client{
		baseURL:   base,
		publicURL: public,
		http:      &http.Client{Timeout: opts.Timeout},
		logger:    opts.Logger,
	}
}

// EvidenceURL builds the browser-reachable URL of an evidence file stored
// under the API's uploads prefix. Empty in, empty out.
func (c *Client) EvidenceURL(path string) string {
	if path == "" {
		return ""
	}
	return c.publicURL + "/uploads/" + path
}

// Ping checks that the case API answers at all. Any HTTP response counts;
// only a transport failure makes the portal not ready.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.TransportError{Op: "ping", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do issues one request. A non-empty token is attached as a bearer
// credential; nothing is remembered between calls.
func (c *Client) do(ctx context.Context, op, method, path, token, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("operation", op).Msg("case API unreachable")
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	return resp, nil
}

// doJSON issues a request with an optional JSON payload and decodes a 2xx
// response into out. Non-2xx responses become domain errors via apiError.
func (c *Client) doJSON(ctx context.Context, op, method, path, token string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, op, method, path, token, contentType, body)
	if err != nil {
		return err
	}
	return decode(op, resp, out)
}

// decode reads the whole body once, then either unmarshals a success into
// out or turns the response into a domain error.
func decode(op string, resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(op, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("respuesta ilegible: %w", err)}
	}
	return nil
}

// apiError maps a non-2xx response to the error taxonomy. The API's
// {"error": msg} envelope is surfaced verbatim when present; anything
// without one is a transport failure.
func apiError(op string, status int, body []byte) error {
	var envelope struct {
		Error string `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		message = envelope.Error
	}

	switch {
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity) && message != "":
		return &domain.ValidationError{Message: message}
	}

	if message != "" {
		return &domain.TransportError{Op: op, Status: status, Err: errors.New(message)}
	}
	return &domain.TransportError{Op: op, Status: status, Err: errors.New(http.StatusText(status))}
}

var errIncompleteLogin = errors.New("la respuesta de autenticación no incluye token y usuario")

// jsonBody marshals a request payload. The payloads here are plain structs,
// so marshalling cannot fail.
func jsonBody(v any) io.Reader {
	raw, _ := json.Marshal(v)
	return bytes.NewReader(raw)
}

// observe records the metrics of one finished operation. Register with
// defer and time.Now() so the duration covers the whole call.
func (c *Client) observe(op string, start time.Time, err *error) {
	result := "ok"
	if *err != nil {
		result = "error"
	}
	metrics.BackendRequestsTotal.WithLabelValues(op, result).Inc()
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
