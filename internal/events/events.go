package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind names the collection or session state an event reports on.
type Kind string

// Change notifications emitted by the marketplace.
const (
	ServicesChanged      Kind = "services_changed"
	SearchHistoryChanged Kind = "search_history_changed"
	RequestsChanged      Kind = "requests_changed"
	ReviewsChanged       Kind = "reviews_changed"
	SubscriptionsChanged Kind = "subscriptions_changed"
	FavoritesChanged     Kind = "favorites_changed"
	ProfilesChanged      Kind = "profiles_changed"
	MessagesChanged      Kind = "messages_changed"
	UsersChanged         Kind = "users_changed"
	LoggedInChanged      Kind = "logged_in_changed"
	CurrentUserChanged   Kind = "current_user_changed"
)

// Event is a change notification. It carries no copy of the changed data;
// listeners re-query what they need.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Kind identifies what changed
	Kind Kind `json:"kind"`

	// Payload holds optional kind-specific details serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event of the given kind. A nil payload is omitted.
func NewEvent(kind Kind, payload interface{}) (*Event, error) {
	event := &Event{
		ID:        uuid.New(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if payload == nil {
		return event, nil
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	event.Payload = payloadBytes
	return event, nil
}

// EventHandler defines an interface for components that react to changes.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the marketplace to publish changes without knowing who listens.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
