package service

import (
	"net/http/httptest"
	"sync"

	"github.com/set-night/zeno/internal/api"
	"github.com/set-night/zeno/internal/ui"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(srv *httptest.Server) *api.Client {
	return api.New(srv.URL, staticToken("test-token"))
}

// notifyRecorder captures everything sent through the notification channel.
type notifyRecorder struct {
	mu     sync.Mutex
	events []notifyEvent
}

type notifyEvent struct {
	sev  ui.Severity
	text string
}

func (r *notifyRecorder) Notify(sev ui.Severity, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, notifyEvent{sev: sev, text: text})
}

func (r *notifyRecorder) all() []notifyEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifyEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *notifyRecorder) last() (notifyEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return notifyEvent{}, false
	}
	return r.events[len(r.events)-1], true
}

// confirmStub answers every confirmation the same way and remembers the
// prompts it saw.
type confirmStub struct {
	answer  bool
	prompts []string
}

func (c *confirmStub) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

// requestCounter counts requests reaching the test server, to prove the
// no-network cases really stay local.
type requestCounter struct {
	mu sync.Mutex
	n  int
}

func (c *requestCounter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *requestCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
