// Package dashboard renders the role-appropriate dashboard on top of the
// API client and the session store.
package dashboard

import (
	"fmt"

	"github.com/Divyansh670/FeedbackHub/internal/session"
)

// Decision is the route guard's verdict for a navigation attempt.
type Decision string

const (
	// DecisionAllow lets the navigation proceed.
	DecisionAllow Decision = "allow"
	// DecisionRedirectLogin sends an anonymous visitor to the login flow.
	DecisionRedirectLogin Decision = "redirect_login"
	// DecisionPending holds the navigation until the session resolves.
	DecisionPending Decision = "pending"
)

// Decide is the route guard for protected destinations. Pure: it reads the
// session state and returns exactly one verdict, never more. While the store
// is still loading the verdict is pending, so a visitor with a valid
// persisted token is never bounced to login by a race.
func Decide(state session.State) Decision {
	switch state {
	case session.StateAuthenticated:
		return DecisionAllow
	case session.StateAnonymous:
		return DecisionRedirectLogin
	default:
		return DecisionPending
	}
}

// SelectView maps a role to its dashboard view. The role set is closed;
// anything else is a data-integrity error, never a silent default.
func SelectView(role string) (View, error) {
	switch role {
	case "manager":
		return ViewManager, nil
	case "employee":
		return ViewEmployee, nil
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}
}

// View names a dashboard view.
type View string

const (
	ViewManager  View = "manager"
	ViewEmployee View = "employee"
)
