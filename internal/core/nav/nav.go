// Package nav declares the sidebar menu. Filtering here is presentation
// only; a hidden entry reached by typing its URL is still stopped by the
// guard middleware.
package nav

import "github.com/farmacia-institucional/tutelas-portal/internal/core/domain"

// Entry is one sidebar item with the roles allowed to see it.
type Entry struct {
	Target string
	Label  string
	Roles  []domain.Role
}

// entries is the static, ordered menu definition.
var entries = []Entry{
	{
		Target: "/dashboard",
		Label:  "Tutelas",
		Roles:  []domain.Role{domain.RoleAdministrador, domain.RoleAbogada, domain.RoleVisualizador},
	},
	{
		Target: "/nueva-tutela",
		Label:  "Nueva Tutela",
		Roles:  []domain.Role{domain.RoleAdministrador, domain.RoleAbogada},
	},
	{
		Target: "/usuarios",
		Label:  "Usuarios",
		Roles:  []domain.Role{domain.RoleAdministrador},
	},
}

// Visible returns the menu entries whose allow-set contains rol, preserving
// the declared order.
func Visible(rol domain.Role) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		for _, allowed := range e.Roles {
			if allowed == rol {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
