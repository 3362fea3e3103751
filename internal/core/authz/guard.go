// Package authz holds the single authorization contract of the portal.
// Both the route guard middleware and the menu filter consume it, so what a
// role can see and what it can reach never drift apart.
package authz

import "github.com/farmacia-institucional/tutelas-portal/internal/core/domain"

// Navigation targets used by redirect decisions.
const (
	LoginTarget = "/login"
	HomeTarget  = "/dashboard"
)

// Snapshot is the guard's read-only view of the session. Ready is false
// while the stored session has not been resolved yet; role checks are
// undefined in that window, so the guard defers instead of redirecting.
type Snapshot struct {
	Ready bool
	User  *domain.User
}

// Action is the kind of decision the guard makes for a navigation attempt.
type Action int

const (
	// Defer: session resolution pending, render a neutral waiting state.
	Defer Action = iota
	// RedirectLogin: no authenticated user.
	RedirectLogin
	// RedirectHome: authenticated but the role is not in the allow-set.
	RedirectHome
	// Allow: render the target.
	Allow
)

// Decision is the outcome of Decide. Target is set on redirects.
type Decision struct {
	Action Action
	Target string
}

// Decide is a pure function of the session snapshot and the target's
// allow-set. The check order is fixed: pending, then authentication, then
// role membership. An empty allow-set means any authenticated role.
func Decide(s Snapshot, required []domain.Role) Decision {
	if !s.Ready {
		return Decision{Action: Defer}
	}
	if s.User == nil {
		return Decision{Action: RedirectLogin, Target: LoginTarget}
	}
	if len(required) > 0 && !contains(required, s.User.Rol) {
		return Decision{Action: RedirectHome, Target: HomeTarget}
	}
	return Decision{Action: Allow}
}

func contains(roles []domain.Role, r domain.Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
