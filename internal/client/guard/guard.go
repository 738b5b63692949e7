// Package guard gates access to protected views. It is a pure decision
// function over the session state and the attempted path, safe to
// re-evaluate on every state or path change.
package guard

import (
	"github.com/desirppc/parcelace/internal/client/session"
)

// Well-known routes the guard redirects to.
const (
	RouteLogin      = "/login"
	RouteMobileOTP  = "/mobile-otp-verification"
	RouteOnboarding = "/onboarding"
)

// Navigation-state keys carried with a redirect.
const (
	StateRedirect = "redirect"
	StatePhone    = "phone"
	StateToken    = "token"
)

// Action is what the caller should do with the protected view.
type Action int

const (
	// ActionLoading: state is still resolving; show a placeholder, do not
	// redirect and do not flicker the children.
	ActionLoading Action = iota

	// ActionRender: all checks passed, render the children.
	ActionRender

	// ActionRedirect: navigate to Decision.Route with Decision.NavState.
	ActionRedirect
)

// Decision is the guard's verdict for one evaluation.
type Decision struct {
	Action   Action
	Route    string
	NavState map[string]string
}

// Input is the ambient session view the guard evaluates against.
type Input struct {
	// Initializing is true until the session manager has hydrated.
	Initializing bool

	Status session.Status

	// Phone and Token are carried to the OTP view when verification is
	// still pending.
	Phone string
	Token string
}

// Guard is the configuration of one protected view subtree.
type Guard struct {
	RequireAuth       bool
	RequireOnboarding bool
}

// New returns a guard with the default configuration: authentication
// required, onboarding not.
func New() Guard {
	return Guard{RequireAuth: true}
}

// Evaluate applies the checks in fixed precedence, first match winning:
// resolving state, auth not required, unauthenticated, mobile unverified,
// onboarding incomplete, render.
func (g Guard) Evaluate(in Input, attemptedPath string) Decision {
	if in.Initializing {
		return Decision{Action: ActionLoading}
	}

	if !g.RequireAuth {
		return Decision{Action: ActionRender}
	}

	if !in.Status.Authenticated {
		return Decision{
			Action:   ActionRedirect,
			Route:    RouteLogin,
			NavState: map[string]string{StateRedirect: attemptedPath},
		}
	}

	if !in.Status.MobileVerified {
		return Decision{
			Action: ActionRedirect,
			Route:  RouteMobileOTP,
			NavState: map[string]string{
				StatePhone: in.Phone,
				StateToken: in.Token,
			},
		}
	}

	if g.RequireOnboarding && !in.Status.OnboardingCompleted {
		return Decision{
			Action:   ActionRedirect,
			Route:    RouteOnboarding,
			NavState: map[string]string{StateRedirect: attemptedPath},
		}
	}

	return Decision{Action: ActionRender}
}

// InputFromManager snapshots a session manager into guard input.
func InputFromManager(m *session.Manager) Input {
	in := Input{
		Initializing: m.State() == session.StateInitializing,
		Status:       m.Status(),
		Token:        m.Token(),
	}
	if u := m.User(); u != nil {
		in.Phone = u.Phone
	}
	return in
}
