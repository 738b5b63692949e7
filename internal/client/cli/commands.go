package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desirppc/parcelace/internal/client/guard"
	"github.com/desirppc/parcelace/internal/common"
)

// Login prompts for credentials, authenticates against the backend, and
// stores the session. Errors are reported to the user, not returned.
func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return
	}

	user, token, err := a.client.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthorized):
			printlnFn("Invalid email or password.")
		case errors.Is(err, common.ErrUnavailable):
			printlnFn("Server unavailable, try again later.")
		default:
			printlnFn("Login failed:", err)
		}
		return
	}

	if err := a.manager.Login(ctx, user, token); err != nil {
		printlnFn("Failed to store session:", err)
		return
	}
	printlnFn("Logged in as", user.Email)

	if !user.IsMobileVerified() {
		printlnFn("Note: mobile number is not verified yet.")
	}
}

// Logout clears the session. Safe to call when already logged out.
func (a *App) Logout(ctx context.Context) {
	if err := a.manager.Logout(ctx); err != nil {
		printlnFn("Logout finished with errors:", err)
		return
	}
	printlnFn("Logged out.")
}

// Status prints the derived session view.
func (a *App) Status(ctx context.Context) {
	st := a.manager.Status()
	if !st.Authenticated {
		printlnFn("Not logged in.")
		return
	}

	user := a.manager.User()
	printlnFn(fmt.Sprintf("Logged in as %s (id %d)", user.Email, user.ID))
	printlnFn(fmt.Sprintf("  mobile verified:      %v", st.MobileVerified))
	printlnFn(fmt.Sprintf("  onboarding completed: %v", st.OnboardingCompleted))
	printlnFn(fmt.Sprintf("  session age:          %d min", st.AgeMinutes()))
	if st.RenewalWarning {
		printlnFn("  session is getting old, consider logging in again")
	}
	if w := a.manager.CachedWallet(); w != nil {
		printlnFn(fmt.Sprintf("  wallet balance:       %.2f %s", w.Balance, w.Currency))
	}
}

// Refresh re-fetches the profile from the backend and persists it.
func (a *App) Refresh(ctx context.Context) {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return
	}

	user, err := a.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, common.ErrSessionExpired) {
			// The expiry watcher handles the forced logout.
			return
		}
		printlnFn("Refresh failed:", err)
		return
	}
	if err := a.manager.UpdateUser(ctx, user); err != nil {
		printlnFn("Failed to store refreshed profile:", err)
		return
	}
	printlnFn("Profile refreshed.")
}

// Open runs the route guard against a dashboard path and reports where
// the dashboard would send the user.
func (a *App) Open(ctx context.Context, path string) {
	g := guard.New()
	if path == "/onboarding-checklist" || path == "/getting-started" {
		g.RequireOnboarding = true
	}

	decision := g.Evaluate(guard.InputFromManager(a.manager), path)
	switch decision.Action {
	case guard.ActionLoading:
		printlnFn("Session still resolving, try again.")
	case guard.ActionRender:
		printlnFn("Access granted:", path)
	case guard.ActionRedirect:
		printlnFn("Redirected to", decision.Route)
		if to := decision.NavState[guard.StateRedirect]; to != "" {
			printlnFn("  (will return to", to, "after)")
		}
	}
}
