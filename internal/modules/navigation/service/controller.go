package service

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"edura/internal/modules/navigation/domain"
	navout "edura/internal/modules/navigation/port/out"
	"edura/internal/platform/logging"
)

// State is a snapshot of the controller.
type State struct {
	Current domain.Page
	History []domain.Page
}

// Controller holds the requested page and the in-app back stack, and keeps
// them reconciled with native history.
type Controller struct {
	native navout.History
	logger hclog.Logger

	mu        sync.Mutex
	current   domain.Page
	history   []domain.Page
	nextObs   int
	observers map[int]func(State)
}

// NewController starts on the page derived from startURL with an empty back
// stack. native may be nil.
func NewController(native navout.History, startURL string, logger hclog.Logger) *Controller {
	c := &Controller{
		native:    native,
		logger:    logging.OrNull(logger).Named("navigation"),
		current:   domain.PageFromPath(startURL),
		observers: map[int]func(State){},
	}
	if native != nil {
		native.OnPopEntry(c.handlePop)
	}
	return c
}

// GoTo moves to page. It reports false when page is invalid or already
// current; neither case touches history.
func (c *Controller) GoTo(page domain.Page) bool {
	if !page.Valid() {
		c.logger.Debug("ignoring unknown page", "page", page)
		return false
	}
	c.mu.Lock()
	if page == c.current {
		c.mu.Unlock()
		return false
	}
	c.history = append(c.history, c.current)
	c.current = page
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.native != nil {
		c.native.PushEntry(page, page.URL())
	}
	c.logger.Debug("navigate", "page", page, "depth", len(snap.History))
	c.notify(snap)
	return true
}

// GoBack pops one page. It reports false on an empty stack.
func (c *Controller) GoBack() bool {
	c.mu.Lock()
	snap, ok := c.popLocked()
	c.mu.Unlock()
	if !ok {
		return false
	}
	c.logger.Debug("back", "page", snap.Current, "depth", len(snap.History))
	c.notify(snap)
	return true
}

func (c *Controller) Current() domain.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// History returns a copy of the back stack, oldest first.
func (c *Controller) History() []domain.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked().History
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn for every page change and returns a func that
// removes it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.nextObs
	c.nextObs++
	c.observers[key] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, key)
	}
}

// handlePop reconciles a native back/forward move. A tagged entry mirrors the
// push made by the last GoTo, so it pops once. With nothing left to pop the
// tag itself becomes current. An untagged entry sets current from its URL and
// leaves the stack alone.
func (c *Controller) handlePop(ev navout.PopEvent) {
	c.mu.Lock()
	var (
		snap    State
		changed bool
	)
	switch {
	case ev.Tagged && len(c.history) > 0:
		snap, changed = c.popLocked()
	case ev.Tagged:
		changed = ev.Tag.Valid() && ev.Tag != c.current
		if changed {
			c.current = ev.Tag
		}
		snap = c.snapshotLocked()
	default:
		page := domain.PageFromPath(ev.URL)
		changed = page != c.current
		c.current = page
		snap = c.snapshotLocked()
	}
	c.mu.Unlock()

	c.logger.Debug("native pop", "tagged", ev.Tagged, "tag", ev.Tag, "url", ev.URL, "page", snap.Current)
	if changed {
		c.notify(snap)
	}
}

func (c *Controller) popLocked() (State, bool) {
	n := len(c.history)
	if n == 0 {
		return State{}, false
	}
	c.current = c.history[n-1]
	c.history = c.history[:n-1]
	return c.snapshotLocked(), true
}

func (c *Controller) snapshotLocked() State {
	history := make([]domain.Page, len(c.history))
	copy(history, c.history)
	return State{Current: c.current, History: history}
}

func (c *Controller) notify(snap State) {
	c.mu.Lock()
	fns := make([]func(State), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
