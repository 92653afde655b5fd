// Package guard decides, for a route and the current session, whether a
// screen may render or where the user must be sent instead.
//
// Evaluate is pure: it performs no I/O and mutates nothing. Callers issue the
// redirect it returns.
package guard

import "github.com/diaglab/labdesk/internal/core/domain"

// State is the resolved outcome of a guard evaluation.
type State uint8

const (
	// StatePending means the session is still rehydrating.
	StatePending State = iota
	StateUnauthenticated
	StateForbidden
	StateAuthorized
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateForbidden:
		return "forbidden"
	case StateAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating a route. A non-empty Redirect must be
// followed instead of rendering the route's screen.
type Decision struct {
	State    State
	Redirect string
}

// Render reports whether the requested screen may be rendered as is. The
// login screen renders in the unauthenticated state.
func (d Decision) Render() bool {
	return d.State != StatePending && d.Redirect == ""
}

// LandingPath returns the default screen for role. Unknown roles never reach
// this point; they are sent to login.
func LandingPath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return PathDashboard
	case domain.RoleOperator:
		return PathPatients
	default:
		return PathLogin
	}
}

// Evaluate decides what to do with a navigation to route given the session
// state. loading is true while the session store is still rehydrating; id is
// the current identity or nil.
func Evaluate(route Route, loading bool, id *domain.Identity) Decision {
	if route.Access == AccessPublic {
		return Decision{State: StateAuthorized}
	}
	if loading {
		return Decision{State: StatePending}
	}

	switch route.Access {
	case AccessGuest:
		if id != nil && id.Role.Valid() {
			return Decision{State: StateAuthorized, Redirect: LandingPath(id.Role)}
		}
		return Decision{State: StateUnauthenticated}
	case AccessEntry:
		if id != nil && id.Role.Valid() {
			return Decision{State: StateAuthorized, Redirect: LandingPath(id.Role)}
		}
		return Decision{State: StateUnauthenticated, Redirect: PathLogin}
	}

	if id == nil || !id.Role.Valid() {
		return Decision{State: StateUnauthenticated, Redirect: PathLogin}
	}
	if !route.Allows(id.Role) {
		return Decision{State: StateForbidden, Redirect: LandingPath(id.Role)}
	}
	return Decision{State: StateAuthorized}
}
