package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// ReviewsForService returns the reviews of serviceID in the order they were
// added.
func (m *Marketplace) ReviewsForService(serviceID uuid.UUID) []domain.Review {
	out := []domain.Review{}
	for _, r := range m.reviews {
		if r.ServiceID == serviceID {
			out = append(out, r)
		}
	}
	return out
}

// AddReview stores a review by the session user. The rating is clamped to
// [1, 5]. When the service's provider has a profile, the rating is merged
// into it.
func (m *Marketplace) AddReview(ctx context.Context, serviceID uuid.UUID, rating int, comment string) (domain.Review, error) {
	if _, err := m.currentUser(); err != nil {
		return domain.Review{}, err
	}
	if serviceID == uuid.Nil {
		return domain.Review{}, ErrInvalidID
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return domain.Review{}, fmt.Errorf("%w: %w", ErrValidation, domain.ErrEmptyContent)
	}

	clamped := domain.ClampReviewRating(rating)
	review := domain.NewReview(uuid.Nil, m.session, serviceID, float64(clamped), comment)
	review.CreatedAt = m.now()

	prev := m.reviews
	m.reviews = withAppended(prev, *review)
	if err := m.commit(ctx, store.DocReviews, events.ReviewsChanged, listDoc(m.reviews), func() { m.reviews = prev }); err != nil {
		return domain.Review{}, err
	}

	m.logger.Info("review added",
		"review_id", review.ID,
		"service_id", serviceID,
		"rating", clamped)

	m.mergeProviderRating(ctx, serviceID, float64(clamped))
	return *review, nil
}

// mergeProviderRating folds rating into the profile of the service's
// provider. Unknown services and providers without a profile are skipped.
func (m *Marketplace) mergeProviderRating(ctx context.Context, serviceID uuid.UUID, rating float64) {
	svc, ok := m.catalog.Get(serviceID)
	if !ok || svc.ProviderID == uuid.Nil {
		return
	}
	j := m.profileIndex(svc.ProviderID)
	if j < 0 {
		return
	}

	profile := m.profiles[j]
	profile.AddRating(rating)

	prev := m.profiles
	m.profiles = withReplaced(prev, j, profile)
	if err := m.commit(ctx, store.DocProfiles, events.ProfilesChanged, listDoc(m.profiles), func() { m.profiles = prev }); err != nil {
		m.logger.Warn("provider rating not saved", "provider_id", svc.ProviderID)
	}
}
