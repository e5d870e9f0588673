package mocks

import (
	"context"
	"sync"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
)

// EventRecorder is an events.EventHandler that keeps every event it receives.
type EventRecorder struct {
	mu     sync.Mutex
	events []*events.Event
}

// HandleEvent records the event.
func (r *EventRecorder) HandleEvent(_ context.Context, event *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Kinds returns the kinds of the recorded events in arrival order.
func (r *EventRecorder) Kinds() []events.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]events.Kind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// Events returns the recorded events.
func (r *EventRecorder) Events() []*events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*events.Event(nil), r.events...)
}

// Reset forgets all recorded events.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
