package domain

import (
	"bytes"
	"time"
)

// Role is one of the three access profiles of the portal. The sets of roles
// allowed on each route and menu entry are literal enumerations; there is no
// hierarchy and administrador is only granted what explicitly lists it.
type Role string

const (
	RoleAdministrador Role = "administrador"
	RoleAbogada       Role = "abogada"
	RoleVisualizador  Role = "visualizador"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrador, RoleAbogada, RoleVisualizador:
		return true
	}
	return false
}

// Roles lists every known role, in display order.
func Roles() []Role {
	return []Role{RoleAdministrador, RoleAbogada, RoleVisualizador}
}

// User is the profile the case API returns for an account.
type User struct {
	ID        int       `json:"id"`
	Nombre    string    `json:"nombre"`
	Username  string    `json:"username"`
	Rol       Role      `json:"rol"`
	Activo    Flag      `json:"activo"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Flag is a boolean that tolerates the case API's SQLite-style 0/1 integers
// on the wire. It marshals back as 1/0, which is what the API stores.
type Flag bool

func (f Flag) Bool() bool { return bool(f) }

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch {
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("1")):
		*f = true
	default:
		*f = false
	}
	return nil
}
