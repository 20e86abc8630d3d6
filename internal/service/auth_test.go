package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/set-night/zeno/internal/api"
	"github.com/set-night/zeno/internal/config"
	"github.com/set-night/zeno/internal/credential"
	"github.com/set-night/zeno/internal/domain"
	"github.com/set-night/zeno/internal/ui"
)

func newAuthFlow(t *testing.T, handler http.HandlerFunc) (*AuthFlow, *credential.Store, *notifyRecorder, *requestCounter) {
	t.Helper()
	counter := &requestCounter{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.inc()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	creds, err := credential.Open(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	rec := &notifyRecorder{}
	return NewAuthFlow(api.New(srv.URL, creds), creds, rec), creds, rec, counter
}

func TestLoginPersistsToken(t *testing.T) {
	auth, creds, _, _ := newAuthFlow(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-123"}`))
	})

	if err := auth.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if !auth.Authenticated() {
		t.Fatal("expected authenticated state after login")
	}
	if creds.Token() != "tok-123" {
		t.Fatalf("unexpected token: %q", creds.Token())
	}
}

func TestLoginRejectedShowsGenericError(t *testing.T) {
	auth, creds, rec, _ := newAuthFlow(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg":"user not found in database"}`))
	})

	err := auth.Login(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if auth.Authenticated() {
		t.Fatal("must stay unauthenticated")
	}
	if creds.Token() != "" {
		t.Fatal("no credential may be persisted")
	}

	// The server's reason is never forwarded for login.
	event, ok := rec.last()
	if !ok || event.text != "Invalid credentials" {
		t.Fatalf("unexpected notification: %+v", event)
	}
	if event.sev != ui.SeverityInline {
		t.Fatal("login errors are inline")
	}
}

func TestRegisterShortPasswordSkipsNetwork(t *testing.T) {
	auth, _, rec, counter := newAuthFlow(t, func(w http.ResponseWriter, r *http.Request) {})

	err := auth.Register(context.Background(), "Ada", "ada@example.com", "12345")
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
	if counter.count() != 0 {
		t.Fatal("short password must be rejected before any network call")
	}

	// The user-facing text carries the same limit the guard enforces.
	want := fmt.Sprintf("Password must be at least %d characters.", config.MinPasswordLength)
	if event, ok := rec.last(); !ok || event.text != want {
		t.Fatalf("notification = %+v, want %q", event, want)
	}
}

func TestRegisterSuccess(t *testing.T) {
	auth, _, rec, _ := newAuthFlow(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	if err := auth.Register(context.Background(), "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	event, ok := rec.last()
	if !ok || event.text != "Registration successful! Please log in." {
		t.Fatalf("unexpected notification: %+v", event)
	}
}

func TestRegisterFailureUsesServerMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"server message", `{"msg":"Email already registered"}`, "Email already registered"},
		{"generic fallback", `{}`, "Registration failed. Email may already be in use."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			auth, _, rec, _ := newAuthFlow(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tc.body))
			})

			if err := auth.Register(context.Background(), "Ada", "ada@example.com", "hunter22"); err == nil {
				t.Fatal("expected error")
			}
			event, ok := rec.last()
			if !ok || event.text != tc.want {
				t.Fatalf("got %+v, want %q", event, tc.want)
			}
		})
	}
}

func TestLogoutClearsCredential(t *testing.T) {
	auth, creds, _, _ := newAuthFlow(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-123"}`))
	})

	if err := auth.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if err := auth.Logout(); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if auth.Authenticated() || creds.Token() != "" {
		t.Fatal("logout must clear the credential")
	}
}

func TestInspectReadsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-42",
		"email": "ada@example.com",
		"exp":   exp.Unix(),
	}).SignedString([]byte("server-side-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	auth, creds, _, _ := newAuthFlow(t, func(w http.ResponseWriter, r *http.Request) {})
	if err := creds.Save(signed); err != nil {
		t.Fatalf("save token: %v", err)
	}

	info, err := auth.Inspect()
	if err != nil {
		t.Fatalf("Inspect err: %v", err)
	}
	if info.Subject != "user-42" || info.Email != "ada@example.com" {
		t.Fatalf("unexpected claims: %+v", info)
	}
	if !info.ExpiresAt.Equal(exp) {
		t.Fatalf("exp = %v, want %v", info.ExpiresAt, exp)
	}
}

func TestInspectWithoutToken(t *testing.T) {
	auth, _, _, _ := newAuthFlow(t, func(w http.ResponseWriter, r *http.Request) {})

	if _, err := auth.Inspect(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}
