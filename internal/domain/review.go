package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Bounds applied to review ratings before they are stored.
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a client's rating and comment for a service.
type Review struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	ServiceID uuid.UUID
	Rating    float64
	Comment   string
	CreatedAt time.Time
}

// NewReview creates a Review. The rating is stored as given; callers clamp it
// with ClampReviewRating first.
func NewReview(id, clientID, serviceID uuid.UUID, rating float64, comment string) *Review {
	return &Review{
		ID:        ensureID(id),
		ClientID:  clientID,
		ServiceID: serviceID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now(),
	}
}

// ClampReviewRating constrains rating to [MinReviewRating, MaxReviewRating].
func ClampReviewRating(rating int) int {
	if rating < MinReviewRating {
		return MinReviewRating
	}
	if rating > MaxReviewRating {
		return MaxReviewRating
	}
	return rating
}

// Info returns a one-line summary.
func (r Review) Info() string {
	return fmt.Sprintf("Review %s | %.0f★ | %s", shortID(r.ID), r.Rating, r.Comment)
}

type reviewJSON struct {
	ID        string  `json:"id"`
	ClientID  string  `json:"clientId"`
	ServiceID string  `json:"serviceId"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt"`
}

// MarshalJSON implements json.Marshaler.
func (r Review) MarshalJSON() ([]byte, error) {
	return json.Marshal(reviewJSON{
		ID:        r.ID.String(),
		ClientID:  r.ClientID.String(),
		ServiceID: r.ServiceID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: FormatTimestamp(r.CreatedAt),
	})
}

// UnmarshalJSON implements json.Unmarshaler. An invalid createdAt is left
// zero rather than defaulted.
func (r *Review) UnmarshalJSON(data []byte) error {
	var raw reviewJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Review{
		ID:        ensureID(parseIDOrNil(raw.ID)),
		ClientID:  parseIDOrNil(raw.ClientID),
		ServiceID: parseIDOrNil(raw.ServiceID),
		Rating:    raw.Rating,
		Comment:   raw.Comment,
		CreatedAt: parseTimestampOr(raw.CreatedAt, time.Time{}),
	}
	return nil
}
