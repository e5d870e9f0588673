package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// SendMessage sends content from the session user to receiverID, who must
// be a registered user.
func (m *Marketplace) SendMessage(ctx context.Context, receiverID uuid.UUID, content string) (domain.Message, error) {
	if _, err := m.currentUser(); err != nil {
		return domain.Message{}, err
	}
	if receiverID == uuid.Nil {
		return domain.Message{}, ErrInvalidID
	}
	if !m.userExists(receiverID) {
		return domain.Message{}, fmt.Errorf("%w: user %s", ErrNotFound, receiverID)
	}

	msg, err := domain.NewMessage(m.session, receiverID, content)
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	msg.Timestamp = m.now()

	prev := m.messages
	m.messages = withAppended(prev, *msg)
	if err := m.commit(ctx, store.DocMessages, events.MessagesChanged, listDoc(m.messages), func() { m.messages = prev }); err != nil {
		return domain.Message{}, err
	}

	m.logger.Debug("message sent", "message_id", msg.ID, "receiver_id", receiverID)
	return *msg, nil
}

// Conversation returns the messages exchanged between the session user and
// otherID, oldest first.
func (m *Marketplace) Conversation(otherID uuid.UUID) ([]domain.Message, error) {
	if _, err := m.currentUser(); err != nil {
		return nil, err
	}
	if otherID == uuid.Nil {
		return nil, ErrInvalidID
	}

	out := []domain.Message{}
	for _, msg := range m.messages {
		if msg.Between(m.session, otherID) {
			out = append(out, msg)
		}
	}
	return out, nil
}

// MyMessages returns every message the session user sent or received.
func (m *Marketplace) MyMessages() ([]domain.Message, error) {
	if _, err := m.currentUser(); err != nil {
		return nil, err
	}

	out := []domain.Message{}
	for _, msg := range m.messages {
		if msg.Involves(m.session) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *Marketplace) userExists(id uuid.UUID) bool {
	for i := range m.users {
		if m.users[i].ID == id {
			return true
		}
	}
	return false
}
