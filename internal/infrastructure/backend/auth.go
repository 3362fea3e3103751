package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login sends the credentials to POST /api/auth/login. A 401 becomes a
// CredentialsError carrying the API's message so the login screen can show
// it verbatim.
func (c *Client) Login(ctx context.Context, username, password string) (res *ports.LoginResult, err error) {
	defer c.observe("login", time.Now(), &err)

	resp, err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", "application/json",
		jsonBody(loginRequest{Username: username, Password: password}))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, &domain.TransportError{Op: "login", Status: resp.StatusCode, Err: readErr}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &envelope)
		return nil, &domain.CredentialsError{Message: envelope.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError("login", resp.StatusCode, raw)
	}

	var out loginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &domain.TransportError{Op: "login", Status: resp.StatusCode, Err: err}
	}
	if out.Token == "" || out.User == nil {
		return nil, &domain.TransportError{Op: "login", Status: resp.StatusCode, Err: errIncompleteLogin}
	}
	return &ports.LoginResult{Token: out.Token, User: out.User}, nil
}
