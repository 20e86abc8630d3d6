package domain

import "errors"

var (
	ErrEmptyMessage         = errors.New("message is empty")
	ErrSendInFlight         = errors.New("send already in flight")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNoChanges            = errors.New("no profile changes")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrConfirmationDeclined = errors.New("confirmation declined")
)
