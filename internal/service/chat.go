package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/zeno/internal/api"
	"github.com/set-night/zeno/internal/domain"
	"github.com/set-night/zeno/internal/ui"
)

// ChatSession drives one conversation: it loads the transcript, appends the
// user's message optimistically before the network round-trip, appends the
// reply, and keeps a busy flag so only one send is ever in flight.
type ChatSession struct {
	api      *api.Client
	notifier ui.Notifier

	mu         sync.Mutex
	transcript []domain.Message
	busy       bool

	// OnChange runs after every transcript mutation. The shell uses it to
	// re-render so the newest message is always the one on screen.
	OnChange func()
}

func NewChatSession(client *api.Client, notifier ui.Notifier) *ChatSession {
	return &ChatSession{api: client, notifier: notifier}
}

// LoadHistory replaces the transcript with the server's copy. Messages that
// come back without a timestamp get the current instant; a timestamp is
// never shown empty. On failure the transcript is left empty and no retry
// is attempted.
func (s *ChatSession) LoadHistory(ctx context.Context) error {
	messages, err := s.api.History(ctx)
	if err != nil {
		s.mu.Lock()
		s.transcript = nil
		s.mu.Unlock()
		s.changed()
		s.notifier.Notify(ui.SeverityInline, "Failed to load chat history.")
		return fmt.Errorf("load history: %w", err)
	}

	backfillTimestamps(messages)

	s.mu.Lock()
	s.transcript = messages
	s.mu.Unlock()
	s.changed()
	return nil
}

// Send appends the text as a user message immediately, then asks the server
// for a reply and appends that too. The optimistic message is never removed:
// if the send fails it stays in the transcript, marked failed.
func (s *ChatSession) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyMessage
	}

	userMsg := domain.Message{
		ID:        "user-" + uuid.NewString(),
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: time.Now().UTC(),
		Status:    domain.StatusPending,
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrSendInFlight
	}
	s.busy = true
	s.transcript = append(s.transcript, userMsg)
	s.mu.Unlock()
	s.changed()

	reply, err := s.api.Send(ctx, text)

	s.mu.Lock()
	if err != nil {
		s.markStatus(userMsg.ID, domain.StatusFailed)
		s.busy = false
		s.mu.Unlock()
		s.changed()
		s.notifier.Notify(ui.SeverityInline, "Failed to send message.")
		return fmt.Errorf("send message: %w", err)
	}

	s.markStatus(userMsg.ID, domain.StatusDelivered)
	s.transcript = append(s.transcript, domain.Message{
		ID:        "bot-" + uuid.NewString(),
		Role:      domain.RoleBot,
		Content:   reply,
		Timestamp: time.Now().UTC(),
		Status:    domain.StatusDelivered,
	})
	s.busy = false
	s.mu.Unlock()
	s.changed()
	return nil
}

// Transcript returns a copy of the current message list in insertion order.
func (s *ChatSession) Transcript() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Busy reports whether a send is in flight. The shell disables input while
// this is true.
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// markStatus must be called with s.mu held.
func (s *ChatSession) markStatus(id string, status domain.DeliveryStatus) {
	for i := range s.transcript {
		if s.transcript[i].ID == id {
			s.transcript[i].Status = status
			return
		}
	}
}

func (s *ChatSession) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

func backfillTimestamps(messages []domain.Message) {
	now := time.Now().UTC()
	for i := range messages {
		if messages[i].Timestamp.IsZero() {
			messages[i].Timestamp = now
		}
	}
}
