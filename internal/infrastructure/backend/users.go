package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

// userPayload is the JSON body of the user endpoints. Password is omitted
// when empty so an update leaves it unchanged; Activo is sent as the 0/1
// integer the API stores.
type userPayload struct {
	Nombre   string      `json:"nombre"`
	Username string      `json:"username"`
	Password string      `json:"password,omitempty"`
	Rol      domain.Role `json:"rol"`
	Activo   *int        `json:"activo,omitempty"`
}

func toUserPayload(in ports.UserInput) userPayload {
	p := userPayload{
		Nombre:   in.Nombre,
		Username: in.Username,
		Password: in.Password,
		Rol:      in.Rol,
	}
	if in.Activo != nil {
		activo := 0
		if *in.Activo {
			activo = 1
		}
		p.Activo = &activo
	}
	return p
}

// ListUsers fetches every account.
func (c *Client) ListUsers(ctx context.Context, token string) (users []domain.User, err error) {
	defer c.observe("list_users", time.Now(), &err)

	err = c.doJSON(ctx, "list_users", http.MethodGet, "/api/users", token, nil, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, token string, in ports.UserInput) (u *domain.User, err error) {
	defer c.observe("create_user", time.Now(), &err)

	var out domain.User
	err = c.doJSON(ctx, "create_user", http.MethodPost, "/api/users", token, toUserPayload(in), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser replaces an account's fields following the payload rules above.
func (c *Client) UpdateUser(ctx context.Context, token string, id int, in ports.UserInput) (u *domain.User, err error) {
	defer c.observe("update_user", time.Now(), &err)

	var out domain.User
	err = c.doJSON(ctx, "update_user", http.MethodPut, fmt.Sprintf("/api/users/%d", id), token, toUserPayload(in), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
