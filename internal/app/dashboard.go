package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Divyansh670/FeedbackHub/internal/apiclient"
	"github.com/Divyansh670/FeedbackHub/internal/config"
	"github.com/Divyansh670/FeedbackHub/internal/dashboard"
	"github.com/Divyansh670/FeedbackHub/internal/session"
)

// runDashboard runs the terminal dashboard client: restore or establish a
// session, then render the view for the user's role.
func runDashboard(cfg *config.Config, in io.Reader, out io.Writer) error {
	tokenPath := cfg.TokenFile
	if tokenPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("cannot resolve config dir, set TOKEN_FILE: %w", err)
		}
		tokenPath = filepath.Join(configDir, "feedbackhub", "token")
	}

	store := session.NewStore(tokenPath)
	client := apiclient.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, store)
	store.SetAPI(client)

	// Per-request deadlines come from the HTTP client; the outer context only
	// carries cancellation, so time spent typing credentials is not counted
	// against a deadline.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Init(ctx); err != nil {
		fmt.Fprintln(out, "Cannot display data right now.")
		return err
	}

	// The guard resolves exactly one way; anonymous means the login flow.
	if dashboard.Decide(store.State()) == dashboard.DecisionRedirectLogin {
		if err := promptLogin(ctx, store, in, out); err != nil {
			return err
		}
	}

	currentUser := store.CurrentUser()
	view, err := dashboard.SelectView(currentUser.Role)
	if err != nil {
		return fmt.Errorf("cannot route dashboard: %w", err)
	}

	switch view {
	case dashboard.ViewManager:
		v := dashboard.NewManagerView(client)
		if err := v.Load(ctx); err != nil {
			return renderLoadFailure(store, out, err)
		}
		v.Render(out)
	case dashboard.ViewEmployee:
		v := dashboard.NewEmployeeView(client)
		if err := v.Load(ctx); err != nil {
			return renderLoadFailure(store, out, err)
		}
		v.Render(out)
	}

	return nil
}

// promptLogin reads credentials from the terminal and logs in.
func promptLogin(ctx context.Context, store *session.Store, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	fmt.Fprint(out, "Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	user, err := store.Login(ctx, strings.TrimSpace(email), strings.TrimSpace(password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintf(out, "Logged in as %s (%s)\n\n", user.Name, user.Role)
	return nil
}

// renderLoadFailure surfaces a failed dashboard load without crashing, and
// tears the session down when the token was rejected mid-session.
func renderLoadFailure(store *session.Store, out io.Writer, err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		store.HandleUnauthorized()
		fmt.Fprintln(out, "Your session has expired. Run the dashboard again to log in.")
		return err
	}
	fmt.Fprintln(out, "Cannot display data right now.")
	return err
}
