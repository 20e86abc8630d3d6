package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/set-night/zeno/internal/api"
	"github.com/set-night/zeno/internal/config"
	"github.com/set-night/zeno/internal/credential"
	"github.com/set-night/zeno/internal/domain"
	"github.com/set-night/zeno/internal/ui"
)

// AuthFlow exchanges credentials for a session token and owns the
// authenticated/unauthenticated transition. It is the only writer of the
// credential store besides account deletion, which goes through Logout too.
type AuthFlow struct {
	api      *api.Client
	creds    *credential.Store
	notifier ui.Notifier
}

func NewAuthFlow(client *api.Client, creds *credential.Store, notifier ui.Notifier) *AuthFlow {
	return &AuthFlow{api: client, creds: creds, notifier: notifier}
}

// Login trades email and password for a bearer token and persists it. Any
// failure surfaces the same generic text; the server's reason is logged but
// never shown, and nothing is persisted.
func (a *AuthFlow) Login(ctx context.Context, email, password string) error {
	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		slog.Debug("login rejected", "error", err)
		a.notifier.Notify(ui.SeverityInline, "Invalid credentials")
		return fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}

	if err := a.creds.Save(token); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	return nil
}

// Register creates a new account. The password length check runs before any
// network traffic. On success the caller is expected to wait
// config.RegisterRedirectDelay and switch to the login view.
func (a *AuthFlow) Register(ctx context.Context, name, email, password string) error {
	if utf8.RuneCountInString(password) < config.MinPasswordLength {
		a.notifier.Notify(ui.SeverityInline, fmt.Sprintf("Password must be at least %d characters.", config.MinPasswordLength))
		return domain.ErrPasswordTooShort
	}

	if err := a.api.Register(ctx, name, email, password); err != nil {
		text := api.ServerMessage(err)
		if text == "" {
			text = "Registration failed. Email may already be in use."
		}
		a.notifier.Notify(ui.SeverityInline, text)
		return fmt.Errorf("register: %w", err)
	}

	a.notifier.Notify(ui.SeverityInline, "Registration successful! Please log in.")
	return nil
}

// Logout clears the durable credential and with it the in-memory
// authenticated state. No network call is made; the token is simply dropped.
func (a *AuthFlow) Logout() error {
	if err := a.creds.Clear(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Authenticated reports whether a credential is present.
func (a *AuthFlow) Authenticated() bool {
	return a.creds.Authenticated()
}

// SessionInfo is what the client can read out of its own bearer token
// without verifying it. Verification is the server's job; this exists only
// for display.
type SessionInfo struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Inspect decodes the stored token's claims without signature verification.
func (a *AuthFlow) Inspect() (SessionInfo, error) {
	token := a.creds.Token()
	if token == "" {
		return SessionInfo{}, domain.ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return SessionInfo{}, fmt.Errorf("parse token: %w", err)
	}

	info := SessionInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
