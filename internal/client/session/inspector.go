// Package session holds the per-process session state: pure inspection of
// a stored credential, the authenticated-state manager, and the expiry
// signal bus that links the HTTP layer to the manager.
package session

import (
	"time"

	"github.com/desirppc/parcelace/internal/client/credential"
)

// DefaultRenewalWarnAfter is how old a session may grow before the UI
// starts suggesting a re-login.
const DefaultRenewalWarnAfter = 30 * time.Minute

// Status is the derived, read-only view of a credential. It is recomputed
// on demand and never cached.
type Status struct {
	Authenticated       bool
	MobileVerified      bool
	OnboardingCompleted bool

	// Age is zero when the login timestamp is unknown.
	Age time.Duration

	RenewalWarning bool
}

// AgeMinutes reports the session age in whole minutes.
func (s Status) AgeMinutes() int {
	return int(s.Age.Minutes())
}

// Inspect derives a Status from a credential snapshot. A nil credential
// yields the zero (unauthenticated) Status; a credential with no login
// timestamp yields zero age and no renewal warning.
func Inspect(cred *credential.Credential, now time.Time, warnAfter time.Duration) Status {
	if cred == nil {
		return Status{}
	}
	if warnAfter <= 0 {
		warnAfter = DefaultRenewalWarnAfter
	}

	st := Status{
		Authenticated:       true,
		MobileVerified:      cred.User.IsMobileVerified(),
		OnboardingCompleted: cred.User.OnboardingCompleted,
	}

	if !cred.LoginAt.IsZero() && now.After(cred.LoginAt) {
		st.Age = now.Sub(cred.LoginAt)
		st.RenewalWarning = st.Age > warnAfter
	}
	return st
}
