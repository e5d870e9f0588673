package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// Requests returns every request in creation order.
func (m *Marketplace) Requests() []domain.Request {
	out := make([]domain.Request, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, r.Clone())
	}
	return out
}

// MyRequests returns the requests where the session user is the client or
// the provider.
func (m *Marketplace) MyRequests() ([]domain.Request, error) {
	if _, err := m.currentUser(); err != nil {
		return nil, err
	}

	out := []domain.Request{}
	for _, r := range m.requests {
		if r.Involves(m.session) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (m *Marketplace) requestIndex(id uuid.UUID) (int, error) {
	if id == uuid.Nil {
		return -1, ErrInvalidID
	}
	for i := range m.requests {
		if m.requests[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: request %s", ErrNotFound, id)
}

func (m *Marketplace) commitRequests(ctx context.Context, next []domain.Request) error {
	prev := m.requests
	m.requests = next
	return m.commit(ctx, store.DocRequests, events.RequestsChanged, listDoc(next), func() { m.requests = prev })
}

// CreateRequest opens a pending request from the session user. Identifiers
// are parsed with the configured policy: by default a malformed id is
// replaced with a fresh one, under the reject policy it fails with
// ErrInvalidID.
func (m *Marketplace) CreateRequest(ctx context.Context, serviceID, providerID, description string) (domain.Request, error) {
	if _, err := m.currentUser(); err != nil {
		return domain.Request{}, err
	}

	policy := m.settings.RequestIDPolicy
	sid, err := policy.Resolve(serviceID)
	if err != nil {
		return domain.Request{}, fmt.Errorf("%w: service id: %v", ErrInvalidID, err)
	}
	pid, err := policy.Resolve(providerID)
	if err != nil {
		return domain.Request{}, fmt.Errorf("%w: provider id: %v", ErrInvalidID, err)
	}

	req := domain.NewRequest(uuid.Nil, sid, m.session, pid)
	req.SetDescription(description)
	req.CreatedAt = m.now()

	if err := m.commitRequests(ctx, withAppended(m.requests, *req)); err != nil {
		return domain.Request{}, err
	}

	m.logger.Info("request created",
		"request_id", req.ID,
		"service_id", req.ServiceID,
		"client_id", req.ClientID)
	return req.Clone(), nil
}

// DeleteRequest removes the request with id.
func (m *Marketplace) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	i, err := m.requestIndex(id)
	if err != nil {
		return err
	}
	return m.commitRequests(ctx, withRemoved(m.requests, i))
}

// UpdateRequestStatus moves a request to the status at statusIndex, clamped
// to the known statuses. Setting the current status again writes nothing.
func (m *Marketplace) UpdateRequestStatus(ctx context.Context, id uuid.UUID, statusIndex int) (domain.Request, error) {
	i, err := m.requestIndex(id)
	if err != nil {
		return domain.Request{}, err
	}

	updated := m.requests[i].Clone()
	if !updated.UpdateStatus(domain.RequestStatusFromIndex(statusIndex), m.now()) {
		return updated, nil
	}
	if err := m.commitRequests(ctx, withReplaced(m.requests, i, updated)); err != nil {
		return domain.Request{}, err
	}

	m.logger.Debug("request status changed", "request_id", id, "status", updated.Status.String())
	return updated.Clone(), nil
}

// UpdateRequestDescription replaces a request's description.
func (m *Marketplace) UpdateRequestDescription(ctx context.Context, id uuid.UUID, description string) (domain.Request, error) {
	i, err := m.requestIndex(id)
	if err != nil {
		return domain.Request{}, err
	}

	updated := m.requests[i].Clone()
	updated.SetDescription(description)
	if err := m.commitRequests(ctx, withReplaced(m.requests, i, updated)); err != nil {
		return domain.Request{}, err
	}
	return updated.Clone(), nil
}

// AddRequestComment appends a comment to a request. Blank comments are
// rejected without writing.
func (m *Marketplace) AddRequestComment(ctx context.Context, id uuid.UUID, comment string) (domain.Request, error) {
	i, err := m.requestIndex(id)
	if err != nil {
		return domain.Request{}, err
	}

	updated := m.requests[i].Clone()
	if err := updated.AddComment(comment); err != nil {
		return domain.Request{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := m.commitRequests(ctx, withReplaced(m.requests, i, updated)); err != nil {
		return domain.Request{}, err
	}
	return updated.Clone(), nil
}
