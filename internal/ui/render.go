package ui

import (
	"fmt"
	"strings"

	"github.com/set-night/zeno/internal/domain"
)

// FormatMessage renders one transcript entry for the chat view.
func FormatMessage(m domain.Message) string {
	label := "Bot"
	if m.Role == domain.RoleUser {
		label = "You"
	}

	suffix := ""
	switch m.Status {
	case domain.StatusPending:
		suffix = " (sending...)"
	case domain.StatusFailed:
		suffix = " (not delivered)"
	}

	return fmt.Sprintf("[%s] %s: %s%s", m.Timestamp.Local().Format("15:04"), label, m.Content, suffix)
}

// FormatHistoryEntry renders one entry for the history view, with the full
// timestamp and the id needed for deletion.
func FormatHistoryEntry(m domain.Message) string {
	label := "Bot"
	if m.Role == domain.RoleUser {
		label = "You"
	}
	return fmt.Sprintf("%s  %s  %s: %s", m.ID, m.Timestamp.Local().Format("2006-01-02 15:04:05"), label, m.Content)
}

// RenderTranscript renders the full chat view body, including the
// empty-transcript placeholder.
func RenderTranscript(messages []domain.Message) string {
	if len(messages) == 0 {
		return "No messages yet. Start the conversation!"
	}
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = FormatMessage(m)
	}
	return strings.Join(lines, "\n")
}
