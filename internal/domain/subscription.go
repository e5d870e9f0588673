package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subscription validation errors
var (
	ErrEmptySubscriptionID     = errors.New("subscription ID cannot be empty")
	ErrEmptySubscriptionUserID = errors.New("subscription user ID cannot be empty")
	ErrEmptyPlanType           = errors.New("subscription plan type cannot be empty")
	ErrNegativePrice           = errors.New("price cannot be negative")
	ErrEndBeforeStart          = errors.New("subscription end date precedes start date")
)

// Subscription is a user's paid plan. A user holds at most one.
type Subscription struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	PlanType  string
	Price     float64
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

// NewSubscription creates an empty, inactive Subscription for userID.
func NewSubscription(id, userID uuid.UUID) *Subscription {
	return &Subscription{
		ID:     ensureID(id),
		UserID: userID,
	}
}

// SetPlanType stores the trimmed plan name.
func (s *Subscription) SetPlanType(planType string) {
	s.PlanType = strings.TrimSpace(planType)
}

// SetPrice sets the price; negative and non-finite values become zero.
func (s *Subscription) SetPrice(price float64) {
	s.Price = ClampPrice(price)
}

// Validate checks the Subscription invariants.
func (s *Subscription) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySubscriptionID
	}
	if s.UserID == uuid.Nil {
		return ErrEmptySubscriptionUserID
	}
	if strings.TrimSpace(s.PlanType) == "" {
		return ErrEmptyPlanType
	}
	if s.Price < 0 {
		return ErrNegativePrice
	}
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// IsExpired reports whether the end date has been reached at t.
// A subscription without an end date never expires.
func (s *Subscription) IsExpired(t time.Time) bool {
	if s.EndDate.IsZero() {
		return false
	}
	return !t.Before(s.EndDate)
}

// Cancel deactivates the subscription and closes it at t unless it already
// ended earlier.
func (s *Subscription) Cancel(t time.Time) {
	s.Active = false
	if s.EndDate.IsZero() || s.EndDate.After(t) {
		s.EndDate = t
	}
}

// Info returns a one-line summary.
func (s Subscription) Info() string {
	plan := s.PlanType
	if plan == "" {
		plan = "NoPlan"
	}
	state := "inactive"
	if s.Active {
		state = "active"
	}
	return fmt.Sprintf("Subscription %s | %s | %s", shortID(s.ID), plan, state)
}

// FullInfo returns a multi-line description of the subscription.
func (s Subscription) FullInfo() string {
	var b strings.Builder
	b.WriteString("=== SUBSCRIPTION ===\n")
	fmt.Fprintf(&b, "subscriptionId: %s\n", s.ID)
	fmt.Fprintf(&b, "userId: %s\n", s.UserID)
	fmt.Fprintf(&b, "planType: %s\n", s.PlanType)
	fmt.Fprintf(&b, "price: %.2f\n", s.Price)
	fmt.Fprintf(&b, "startDate: %s\n", FormatTimestamp(s.StartDate))
	fmt.Fprintf(&b, "endDate: %s\n", FormatTimestamp(s.EndDate))
	fmt.Fprintf(&b, "active: %t\n", s.Active)
	return b.String()
}

type subscriptionJSON struct {
	ID        string          `json:"subscriptionId"`
	UserID    string          `json:"userId"`
	PlanType  string          `json:"planType"`
	Price     float64         `json:"price"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Active    json.RawMessage `json:"active"`
}

// MarshalJSON implements json.Marshaler. Unset dates are written as "".
func (s Subscription) MarshalJSON() ([]byte, error) {
	active := "false"
	if s.Active {
		active = "true"
	}
	return json.Marshal(subscriptionJSON{
		ID:        s.ID.String(),
		UserID:    s.UserID.String(),
		PlanType:  s.PlanType,
		Price:     s.Price,
		StartDate: FormatTimestamp(s.StartDate),
		EndDate:   FormatTimestamp(s.EndDate),
		Active:    json.RawMessage(active),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Invalid dates stay unset and
// "active" may be a boolean or the string "true".
func (s *Subscription) UnmarshalJSON(data []byte) error {
	var raw subscriptionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Subscription{
		ID:        ensureID(parseIDOrNil(raw.ID)),
		UserID:    parseIDOrNil(raw.UserID),
		PlanType:  raw.PlanType,
		Price:     raw.Price,
		StartDate: parseTimestampOr(raw.StartDate, time.Time{}),
		EndDate:   parseTimestampOr(raw.EndDate, time.Time{}),
		Active:    decodeFlag(raw.Active),
	}
	return nil
}

func decodeFlag(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}
