package domain

import "time"

// Profile is the authenticated user's account data. Name and email are
// editable; both must be resupplied on every edit.
type Profile struct {
	Name      string
	Email     string
	CreatedAt time.Time
}
