package nav

import (
	"testing"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

func targets(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Target)
	}
	return out
}

func TestVisible(t *testing.T) {
	tests := []struct {
		rol  domain.Role
		want []string
	}{
		{domain.RoleAdministrador, []string{"/dashboard", "/nueva-tutela", "/usuarios"}},
		{domain.RoleAbogada, []string{"/dashboard", "/nueva-tutela"}},
		{domain.RoleVisualizador, []string{"/dashboard"}},
		{domain.Role("desconocido"), nil},
	}

	for _, tc := range tests {
		got := targets(Visible(tc.rol))
		if len(got) != len(tc.want) {
			t.Fatalf("rol %s: expected %v, got %v", tc.rol, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("rol %s: expected %v, got %v", tc.rol, tc.want, got)
			}
		}
	}
}
