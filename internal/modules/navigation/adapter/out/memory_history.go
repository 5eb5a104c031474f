package out

import (
	"sync"

	"edura/internal/modules/navigation/domain"
	navout "edura/internal/modules/navigation/port/out"
)

type entry struct {
	tag    domain.Page
	tagged bool
	url    string
}

// MemoryHistory is a browser-like entry list with a cursor. It stands in for
// native history in the terminal client.
type MemoryHistory struct {
	mu       sync.Mutex
	entries  []entry
	cursor   int
	handlers []func(navout.PopEvent)
}

// NewMemoryHistory starts with one entry at startURL, tagged with the page
// that URL maps to, as a browser app replaces its first state on load.
func NewMemoryHistory(startURL string) *MemoryHistory {
	if startURL == "" {
		startURL = "/"
	}
	start := entry{tag: domain.PageFromPath(startURL), tagged: true, url: startURL}
	return &MemoryHistory{entries: []entry{start}}
}

// PushEntry records a tagged entry after the cursor, dropping any forward
// entries.
func (h *MemoryHistory) PushEntry(tag domain.Page, url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.cursor+1], entry{tag: tag, tagged: true, url: url})
	h.cursor = len(h.entries) - 1
}

func (h *MemoryHistory) OnPopEntry(handler func(navout.PopEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, handler)
}

// Back moves the cursor one entry back and emits a pop event. It reports
// false at the first entry.
func (h *MemoryHistory) Back() bool {
	return h.move(-1)
}

// Forward moves the cursor one entry forward and emits a pop event. It
// reports false at the last entry.
func (h *MemoryHistory) Forward() bool {
	return h.move(1)
}

// Visit records an untagged entry, as when a URL is typed directly, and
// emits a pop event for it.
func (h *MemoryHistory) Visit(url string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.cursor+1], entry{url: url})
	h.cursor = len(h.entries) - 1
	ev := h.eventLocked()
	handlers := h.handlersLocked()
	h.mu.Unlock()
	emit(handlers, ev)
}

// URL is the address of the entry under the cursor.
func (h *MemoryHistory) URL() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.cursor].url
}

// Len is the number of recorded entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *MemoryHistory) move(delta int) bool {
	h.mu.Lock()
	next := h.cursor + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.cursor = next
	ev := h.eventLocked()
	handlers := h.handlersLocked()
	h.mu.Unlock()
	emit(handlers, ev)
	return true
}

func (h *MemoryHistory) eventLocked() navout.PopEvent {
	e := h.entries[h.cursor]
	return navout.PopEvent{Tag: e.tag, Tagged: e.tagged, URL: e.url}
}

func (h *MemoryHistory) handlersLocked() []func(navout.PopEvent) {
	out := make([]func(navout.PopEvent), len(h.handlers))
	copy(out, h.handlers)
	return out
}

func emit(handlers []func(navout.PopEvent), ev navout.PopEvent) {
	for _, fn := range handlers {
		fn(ev)
	}
}
