package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Divyansh670/FeedbackHub/internal/config"
)

// fakeAPI is a minimal in-process stand-in for the feedback API.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "token-abc",
			"user": map[string]any{
				"id": "emp-1", "email": creds["email"],
				"name": "Jane Employee", "role": "employee",
			},
		})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": "emp-1", "email": "employee@company.com",
			"name": "Jane Employee", "role": "employee",
		})
	})
	mux.HandleFunc("GET /api/feedback", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id": "fb-1", "manager_id": "mgr-1", "employee_id": "emp-1",
				"strengths": "a", "areas_to_improve": "b", "sentiment": "positive",
				"created_at": "2026-03-01T09:00:00Z", "updated_at": "2026-03-01T09:00:00Z",
				"manager_name": "John Manager",
			},
			{
				"id": "fb-2", "manager_id": "mgr-1", "employee_id": "emp-1",
				"strengths": "c", "areas_to_improve": "d", "sentiment": "neutral",
				"created_at": "2026-02-01T09:00:00Z", "updated_at": "2026-02-01T09:00:00Z",
				"acknowledged_at": "2026-02-02T09:00:00Z",
				"manager_name":    "John Manager",
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testClientConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		APIBaseURL:     baseURL,
		TokenFile:      filepath.Join(t.TempDir(), "token"),
		RequestTimeout: 5 * time.Second,
	}
}

func TestRunDashboard_LoginFlowRendersEmployeeView(t *testing.T) {
	server := fakeAPI(t)
	cfg := testClientConfig(t, server.URL)

	in := strings.NewReader("employee@company.com\npassword123\n")
	var out bytes.Buffer

	if err := runDashboard(cfg, in, &out); err != nil {
		t.Fatalf("runDashboard: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Logged in as Jane Employee (employee)",
		"My Feedback",
		"Pending: 1  Acknowledged: 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q\noutput: %s", want, got)
		}
	}

	// The token survives for the next run.
	data, err := os.ReadFile(cfg.TokenFile)
	if err != nil {
		t.Fatalf("token file: %v", err)
	}
	if string(data) != "token-abc" {
		t.Errorf("persisted token = %q, want token-abc", data)
	}
}

func TestRunDashboard_RestoresPersistedSession(t *testing.T) {
	server := fakeAPI(t)
	cfg := testClientConfig(t, server.URL)
	if err := os.WriteFile(cfg.TokenFile, []byte("token-abc"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runDashboard(cfg, strings.NewReader(""), &out); err != nil {
		t.Fatalf("runDashboard: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "Email:") {
		t.Error("login prompt shown despite a valid persisted session")
	}
	if !strings.Contains(got, "My Feedback") {
		t.Errorf("employee view not rendered: %s", got)
	}
}

func TestRunDashboard_StaleTokenFallsBackToLogin(t *testing.T) {
	server := fakeAPI(t)
	cfg := testClientConfig(t, server.URL)
	if err := os.WriteFile(cfg.TokenFile, []byte("stale-token"), 0o600); err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("employee@company.com\npassword123\n")
	var out bytes.Buffer
	if err := runDashboard(cfg, in, &out); err != nil {
		t.Fatalf("runDashboard: %v", err)
	}

	if !strings.Contains(out.String(), "Email:") {
		t.Error("stale token did not fall back to the login prompt")
	}
	if !strings.Contains(out.String(), "My Feedback") {
		t.Error("employee view not rendered after re-login")
	}
}

func TestRunDashboard_WrongPasswordFails(t *testing.T) {
	server := fakeAPI(t)
	cfg := testClientConfig(t, server.URL)

	in := strings.NewReader("employee@company.com\nwrong\n")
	var out bytes.Buffer
	if err := runDashboard(cfg, in, &out); err == nil {
		t.Fatal("expected an error for wrong credentials")
	}

	if _, err := os.Stat(cfg.TokenFile); !os.IsNotExist(err) {
		t.Error("token file written despite failed login")
	}
}

func TestRunDashboard_ServerDownSurfacesWithoutCrash(t *testing.T) {
	server := fakeAPI(t)
	cfg := testClientConfig(t, server.URL)
	if err := os.WriteFile(cfg.TokenFile, []byte("token-abc"), 0o600); err != nil {
		t.Fatal(err)
	}
	server.Close()

	var out bytes.Buffer
	if err := runDashboard(cfg, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected an error with the server down")
	}
	if !strings.Contains(out.String(), "Cannot display data right now.") {
		t.Errorf("output = %q, want the failure notice", out.String())
	}
}
