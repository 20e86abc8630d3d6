package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/set-night/zeno/internal/domain"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "yes\n", true},
		{"uppercase", "Y\n", true},
		{"no", "n\n", false},
		{"empty defaults to no", "\n", false},
		{"garbage", "sure\n", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out strings.Builder
			term := NewTerminal(strings.NewReader(tc.input), &out)
			if got := term.Confirm("Delete?"); got != tc.want {
				t.Fatalf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if !strings.Contains(out.String(), "[y/N]") {
				t.Fatal("prompt must show the default")
			}
		})
	}
}

func TestNotifyBlockingWaitsForAck(t *testing.T) {
	var out strings.Builder
	term := NewTerminal(strings.NewReader("\n"), &out)

	term.Notify(SeverityBlocking, "Failed to delete message.")

	if !strings.Contains(out.String(), "Failed to delete message.") {
		t.Fatal("notification text missing")
	}
	if !strings.Contains(out.String(), "Press Enter") {
		t.Fatal("blocking notification must ask for acknowledgment")
	}
}

func TestNotifyInlineDoesNotPrompt(t *testing.T) {
	var out strings.Builder
	term := NewTerminal(strings.NewReader(""), &out)

	term.Notify(SeverityInline, "Failed to send message.")

	if strings.Contains(out.String(), "Press Enter") {
		t.Fatal("inline notification must not block")
	}
}

func TestRenderTranscriptEmptyState(t *testing.T) {
	got := RenderTranscript(nil)
	if got != "No messages yet. Start the conversation!" {
		t.Fatalf("unexpected empty state: %q", got)
	}
}

func TestFormatMessageStatuses(t *testing.T) {
	ts := time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)

	m := domain.Message{ID: "x", Role: domain.RoleUser, Content: "hi", Timestamp: ts, Status: domain.StatusFailed}
	if got := FormatMessage(m); !strings.Contains(got, "(not delivered)") || !strings.Contains(got, "You: hi") {
		t.Fatalf("failed message render: %q", got)
	}

	m.Status = domain.StatusDelivered
	if got := FormatMessage(m); strings.Contains(got, "(") {
		t.Fatalf("delivered message must have no suffix: %q", got)
	}

	m.Role = domain.RoleBot
	if got := FormatMessage(m); !strings.Contains(got, "Bot: hi") {
		t.Fatalf("bot label missing: %q", got)
	}
}
