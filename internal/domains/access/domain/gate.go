// Package domain holds the access gate: a pure decision over a session
// snapshot and a route requirement.
package domain

import sessiondomain "github.com/Apurer/game-storefront/internal/domains/session/domain"

// Decision is the outcome of one gate evaluation.
type Decision int

const (
	// DecisionPending means the session restore has not settled yet.
	DecisionPending Decision = iota
	DecisionRender
	DecisionRedirectLogin
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionRender:
		return "render"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Requirement is the static policy attached to a protected view.
type Requirement int

const (
	RequireAuthenticated Requirement = iota
	RequireAdmin
)

func (r Requirement) String() string {
	if r == RequireAdmin {
		return "admin"
	}
	return "authenticated"
}

// Decide evaluates the gate. It has no side effects; callers perform the
// redirect or render it asks for.
func Decide(session *sessiondomain.Session, loading bool, requirement Requirement) Decision {
	if loading {
		return DecisionPending
	}
	if session == nil {
		return DecisionRedirectLogin
	}
	if requirement == RequireAdmin && !session.IsAdmin() {
		return DecisionRedirectHome
	}
	return DecisionRender
}
