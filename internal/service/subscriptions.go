package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// SubscriptionInput carries the editable fields of a subscription. Zero
// dates mean unset.
type SubscriptionInput struct {
	PlanType  string
	Price     float64
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

func (m *Marketplace) subscriptionIndex(userID uuid.UUID) int {
	for i := range m.subscriptions {
		if m.subscriptions[i].UserID == userID {
			return i
		}
	}
	return -1
}

func (m *Marketplace) commitSubscriptions(ctx context.Context, next []domain.Subscription) error {
	prev := m.subscriptions
	m.subscriptions = next
	return m.commit(ctx, store.DocSubscriptions, events.SubscriptionsChanged, listDoc(next), func() { m.subscriptions = prev })
}

// MySubscription returns the session user's subscription.
func (m *Marketplace) MySubscription() (domain.Subscription, error) {
	if _, err := m.currentUser(); err != nil {
		return domain.Subscription{}, err
	}
	i := m.subscriptionIndex(m.session)
	if i < 0 {
		return domain.Subscription{}, fmt.Errorf("%w: subscription", ErrNotFound)
	}
	return m.subscriptions[i], nil
}

// SaveMySubscription creates or updates the session user's single
// subscription. The price is clamped to a finite non-negative value; an
// invalid result is rejected and nothing is written.
func (m *Marketplace) SaveMySubscription(ctx context.Context, in SubscriptionInput) (domain.Subscription, error) {
	if _, err := m.currentUser(); err != nil {
		return domain.Subscription{}, err
	}

	i := m.subscriptionIndex(m.session)
	var sub domain.Subscription
	if i >= 0 {
		sub = m.subscriptions[i]
	} else {
		sub = *domain.NewSubscription(uuid.Nil, m.session)
	}

	sub.SetPlanType(in.PlanType)
	sub.SetPrice(in.Price)
	sub.StartDate = in.StartDate
	sub.EndDate = in.EndDate
	sub.Active = in.Active

	if err := sub.Validate(); err != nil {
		return domain.Subscription{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var next []domain.Subscription
	if i >= 0 {
		next = withReplaced(m.subscriptions, i, sub)
	} else {
		next = withAppended(m.subscriptions, sub)
	}
	if err := m.commitSubscriptions(ctx, next); err != nil {
		return domain.Subscription{}, err
	}

	m.logger.Info("subscription saved", "subscription_id", sub.ID, "plan", sub.PlanType)
	return sub, nil
}

// CancelMySubscription deactivates the session user's subscription and
// closes it now unless it already ended.
func (m *Marketplace) CancelMySubscription(ctx context.Context) (domain.Subscription, error) {
	if _, err := m.currentUser(); err != nil {
		return domain.Subscription{}, err
	}
	i := m.subscriptionIndex(m.session)
	if i < 0 {
		return domain.Subscription{}, fmt.Errorf("%w: subscription", ErrNotFound)
	}

	sub := m.subscriptions[i]
	sub.Cancel(m.now())
	if err := m.commitSubscriptions(ctx, withReplaced(m.subscriptions, i, sub)); err != nil {
		return domain.Subscription{}, err
	}

	m.logger.Info("subscription cancelled", "subscription_id", sub.ID)
	return sub, nil
}
