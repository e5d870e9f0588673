package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message validation errors
var (
	ErrEmptySenderID   = errors.New("message sender ID cannot be empty")
	ErrEmptyReceiverID = errors.New("message receiver ID cannot be empty")
)

// Message is a direct note from one user to another.
type Message struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	Timestamp  time.Time
}

// NewMessage creates a Message with trimmed content stamped now.
// Returns an error if validation fails.
func NewMessage(senderID, receiverID uuid.UUID, content string) (*Message, error) {
	msg := &Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    strings.TrimSpace(content),
		Timestamp:  now(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	if m.SenderID == uuid.Nil {
		return ErrEmptySenderID
	}
	if m.ReceiverID == uuid.Nil {
		return ErrEmptyReceiverID
	}
	if strings.TrimSpace(m.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// Between reports whether the message was exchanged by a and b in either
// direction.
func (m Message) Between(a, b uuid.UUID) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// Involves reports whether userID sent or received the message.
func (m Message) Involves(userID uuid.UUID) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

type messageJSON struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		ID:         m.ID.String(),
		SenderID:   m.SenderID.String(),
		ReceiverID: m.ReceiverID.String(),
		Content:    m.Content,
		Timestamp:  FormatTimestamp(m.Timestamp),
	})
}

// UnmarshalJSON implements json.Unmarshaler. An invalid timestamp defaults
// to now.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Message{
		ID:         ensureID(parseIDOrNil(raw.ID)),
		SenderID:   parseIDOrNil(raw.SenderID),
		ReceiverID: parseIDOrNil(raw.ReceiverID),
		Content:    raw.Content,
		Timestamp:  parseTimestampOr(raw.Timestamp, now()),
	}
	return nil
}
