package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/set-night/zeno/internal/api"
	"github.com/set-night/zeno/internal/domain"
	"github.com/set-night/zeno/internal/ui"
)

// ProfileManager reads and edits the authenticated user's profile. It keeps
// the last-loaded snapshot so an edit that changes nothing never reaches the
// network, and cancel reverts to it locally.
type ProfileManager struct {
	api       *api.Client
	notifier  ui.Notifier
	confirmer ui.Confirmer

	// teardown is invoked after a successful account deletion; it is the
	// logout path of the auth flow.
	teardown func() error

	mu       sync.Mutex
	snapshot domain.Profile
	name     string
	email    string
	editing  bool
	saving   bool
	deleting bool
	status   string
}

func NewProfileManager(client *api.Client, notifier ui.Notifier, confirmer ui.Confirmer, teardown func() error) *ProfileManager {
	return &ProfileManager{api: client, notifier: notifier, confirmer: confirmer, teardown: teardown}
}

// Load fetches the profile and seeds the editable fields from it.
func (p *ProfileManager) Load(ctx context.Context) error {
	profile, err := p.api.Profile(ctx)
	if err != nil {
		p.notifier.Notify(ui.SeverityInline, "Could not load profile.")
		return fmt.Errorf("load profile: %w", err)
	}

	p.mu.Lock()
	p.snapshot = profile
	p.name = profile.Name
	p.email = profile.Email
	p.status = ""
	p.mu.Unlock()
	return nil
}

// StartEdit enters edit mode.
func (p *ProfileManager) StartEdit() {
	p.mu.Lock()
	p.editing = true
	p.status = ""
	p.mu.Unlock()
}

// Save submits new name and email. When both equal the loaded snapshot the
// call is rejected locally without touching the network.
func (p *ProfileManager) Save(ctx context.Context, name, email string) error {
	p.mu.Lock()
	if name == p.snapshot.Name && email == p.snapshot.Email {
		p.mu.Unlock()
		return domain.ErrNoChanges
	}
	p.saving = true
	p.status = ""
	p.mu.Unlock()

	err := p.api.EditProfile(ctx, name, email)

	p.mu.Lock()
	p.saving = false
	if err != nil {
		p.mu.Unlock()
		text := api.ServerMessage(err)
		if text == "" {
			text = "Profile update failed."
		}
		p.notifier.Notify(ui.SeverityInline, text)
		return fmt.Errorf("save profile: %w", err)
	}

	p.snapshot.Name = name
	p.snapshot.Email = email
	p.name = name
	p.email = email
	p.editing = false
	p.status = "Profile updated!"
	p.mu.Unlock()
	return nil
}

// CancelEdit reverts the editable fields to the snapshot and leaves edit
// mode. Purely local, no network call.
func (p *ProfileManager) CancelEdit() {
	p.mu.Lock()
	p.name = p.snapshot.Name
	p.email = p.snapshot.Email
	p.status = ""
	p.editing = false
	p.mu.Unlock()
}

// DeleteAccount removes the account after explicit confirmation and tears
// the session down on success. On failure the user stays authenticated.
func (p *ProfileManager) DeleteAccount(ctx context.Context) error {
	if !p.confirmer.Confirm("Are you sure you want to delete your account?") {
		return domain.ErrConfirmationDeclined
	}

	p.mu.Lock()
	p.deleting = true
	p.mu.Unlock()

	err := p.api.DeleteAccount(ctx)

	p.mu.Lock()
	p.deleting = false
	p.mu.Unlock()

	if err != nil {
		p.notifier.Notify(ui.SeverityInline, "Failed to delete account.")
		return fmt.Errorf("delete account: %w", err)
	}

	if err := p.teardown(); err != nil {
		return fmt.Errorf("session teardown: %w", err)
	}
	return nil
}

// Snapshot returns the last-loaded profile.
func (p *ProfileManager) Snapshot() domain.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Fields returns the current editable name and email.
func (p *ProfileManager) Fields() (name, email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name, p.email
}

func (p *ProfileManager) Editing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editing
}

// Status returns the last success message, e.g. after a save.
func (p *ProfileManager) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}
