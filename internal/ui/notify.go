// Package ui holds the terminal surface of the client: the interactive
// shell, transcript rendering, and the notification/confirmation boundary
// the services report through.
package ui

// Severity selects how a notification interrupts the user. Inline text is
// printed and the flow continues; blocking notifications require an explicit
// acknowledgment before anything else happens.
type Severity int

const (
	SeverityInline Severity = iota
	SeverityBlocking
)

// Notifier is the single error/status reporting channel. Components never
// print themselves; they notify and the active surface decides presentation.
type Notifier interface {
	Notify(sev Severity, text string)
}

// Confirmer gates irreversible actions behind an explicit user confirmation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// NotifyFunc adapts a function to the Notifier interface.
type NotifyFunc func(sev Severity, text string)

func (f NotifyFunc) Notify(sev Severity, text string) { f(sev, text) }

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
