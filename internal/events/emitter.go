package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

type subscription struct {
	id      int
	handler EventHandler
	kinds   []Kind
}

func (s subscription) wants(kind Kind) bool {
	return len(s.kinds) == 0 || slices.Contains(s.kinds, kind)
}

// InMemoryEventEmitter dispatches events synchronously to subscribed
// handlers, in subscription order, on the caller's goroutine.
type InMemoryEventEmitter struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID int
	logger *slog.Logger
}

// NewInMemoryEventEmitter returns an emitter with no subscribers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler subscribes handler to every kind of event.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.Subscribe(handler)
}

// Subscribe delivers events of the listed kinds to handler, or all events
// when no kinds are given. The returned func removes the subscription and is
// safe to call more than once.
func (e *InMemoryEventEmitter) Subscribe(handler EventHandler, kinds ...Kind) (unsubscribe func()) {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription{id: id, handler: handler, kinds: slices.Clone(kinds)})
	count := len(e.subs)
	e.mu.Unlock()

	e.logger.Debug("subscribed event handler", "subscription", id, "kinds", kinds, "subscriptions", count)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.subs = slices.DeleteFunc(e.subs, func(s subscription) bool { return s.id == id })
	}
}

// EmitEvent hands event to every interested subscriber. A failing handler
// does not stop delivery to the rest; the first failure is returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	var targets []subscription
	for _, s := range e.subs {
		if s.wants(event.Kind) {
			targets = append(targets, s)
		}
	}
	e.mu.RUnlock()

	if len(targets) == 0 {
		e.logger.Debug("event has no subscribers", "event_id", event.ID, "event_kind", event.Kind)
		return nil
	}

	var firstErr error
	for _, s := range targets {
		err := s.handler.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		e.logger.Error("event handler failed",
			"error", err,
			"subscription", s.id,
			"event_id", event.ID,
			"event_kind", event.Kind)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
