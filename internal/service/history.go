package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/set-night/zeno/internal/api"
	"github.com/set-night/zeno/internal/domain"
	"github.com/set-night/zeno/internal/ui"
)

// HistoryManager is the management view over the persisted transcript:
// listing, deleting single messages, and clearing everything. It holds its
// own copy of the messages, independent of any ChatSession.
type HistoryManager struct {
	api       *api.Client
	notifier  ui.Notifier
	confirmer ui.Confirmer

	mu       sync.Mutex
	messages []domain.Message
	loading  bool
	clearing bool
}

func NewHistoryManager(client *api.Client, notifier ui.Notifier, confirmer ui.Confirmer) *HistoryManager {
	return &HistoryManager{api: client, notifier: notifier, confirmer: confirmer}
}

// Load fetches the full transcript. Same semantics as the chat view's load:
// timestamps backfilled, local copy emptied on failure, single attempt.
func (h *HistoryManager) Load(ctx context.Context) error {
	h.mu.Lock()
	h.loading = true
	h.mu.Unlock()

	messages, err := h.api.History(ctx)

	h.mu.Lock()
	h.loading = false
	if err != nil {
		h.messages = nil
		h.mu.Unlock()
		h.notifier.Notify(ui.SeverityInline, "Failed to load chat history.")
		return fmt.Errorf("load history: %w", err)
	}
	backfillTimestamps(messages)
	h.messages = messages
	h.mu.Unlock()
	return nil
}

// Delete removes one message by id, after explicit confirmation. The local
// copy only changes once the server accepted the deletion; a failure is
// raised as a blocking notification and leaves everything in place.
func (h *HistoryManager) Delete(ctx context.Context, id string) error {
	if !h.confirmer.Confirm("Are you sure you want to delete this message?") {
		return domain.ErrConfirmationDeclined
	}

	if err := h.api.DeleteMessage(ctx, id); err != nil {
		h.notifier.Notify(ui.SeverityBlocking, "Failed to delete message.")
		return fmt.Errorf("delete message: %w", err)
	}

	h.mu.Lock()
	kept := h.messages[:0]
	for _, m := range h.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	h.messages = kept
	h.mu.Unlock()
	return nil
}

// Clear wipes the whole transcript, after explicit confirmation.
func (h *HistoryManager) Clear(ctx context.Context) error {
	if !h.confirmer.Confirm("Clear ALL chat history? This cannot be undone.") {
		return domain.ErrConfirmationDeclined
	}

	h.mu.Lock()
	h.clearing = true
	h.mu.Unlock()

	err := h.api.ClearHistory(ctx)

	h.mu.Lock()
	h.clearing = false
	if err != nil {
		h.mu.Unlock()
		h.notifier.Notify(ui.SeverityInline, "Failed to clear chat history.")
		return fmt.Errorf("clear history: %w", err)
	}
	h.messages = nil
	h.mu.Unlock()
	return nil
}

// Messages returns a copy of the local transcript.
func (h *HistoryManager) Messages() []domain.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *HistoryManager) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

func (h *HistoryManager) Clearing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clearing
}
