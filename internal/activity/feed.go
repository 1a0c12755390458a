// Package activity maintains the merged pipeline activity feed: locally
// synthesized stage events folded together with events arriving over the
// live correlation channel.
package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the pipeline stage an event belongs to.
type Kind string

const (
	KindReceive Kind = "receive"
	KindEmail   Kind = "email"
	KindEnrich  Kind = "enrich"
	KindQualify Kind = "qualify"
	KindRoute   Kind = "route"
	KindError   Kind = "error"
)

// Event is one entry in the activity feed.
type Event struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Feed is the single ordered activity sequence. Ordering is by arrival, not
// timestamp, so the feed stays append-only regardless of clock skew between
// local and remote sources. Events are never reordered or removed.
type Feed struct {
	mu     sync.RWMutex
	events []Event
	seen   map[string]struct{}
	notify func(Event)
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{seen: make(map[string]struct{})}
}

// SetNotifier registers a sink invoked for every appended event. Must be set
// before the feed is shared.
func (f *Feed) SetNotifier(fn func(Event)) {
	f.notify = fn
}

// Append records a locally synthesized event, stamped with a fresh identity,
// and returns it.
func (f *Feed) Append(kind Kind, description string) Event {
	evt := Event{
		ID:          uuid.New().String(),
		Kind:        kind,
		Description: description,
		Timestamp:   time.Now(),
	}

	f.mu.Lock()
	f.seen[evt.ID] = struct{}{}
	f.events = append(f.events, evt)
	f.mu.Unlock()

	if f.notify != nil {
		f.notify(evt)
	}
	return evt
}

// Merge folds in a remote event, keyed by the identity its source assigned.
// Duplicates are dropped; arrival order is preserved. Returns true when the
// event was appended.
func (f *Feed) Merge(evt Event) bool {
	if evt.ID == "" {
		evt.ID = uuid.New().String()
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	f.mu.Lock()
	if _, dup := f.seen[evt.ID]; dup {
		f.mu.Unlock()
		return false
	}
	f.seen[evt.ID] = struct{}{}
	f.events = append(f.events, evt)
	f.mu.Unlock()

	if f.notify != nil {
		f.notify(evt)
	}
	return true
}

// Snapshot returns a copy of the feed in arrival order.
func (f *Feed) Snapshot() []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Len returns the number of events in the feed.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.events)
}
