package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rating bounds for services and profiles.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Service is a listing offered by a provider on the marketplace.
type Service struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	Title       string
	Description string
	Category    string
	Price       float64
	Active      bool
	Rating      float64
	Media       []string
	CreatedAt   time.Time
}

// NewService creates an active Service. A nil id is replaced with a fresh one
// and price is clamped to be non-negative.
func NewService(id, providerID uuid.UUID, title, description, category string, price float64) *Service {
	return &Service{
		ID:          ensureID(id),
		ProviderID:  providerID,
		Title:       title,
		Description: description,
		Category:    category,
		Price:       ClampPrice(price),
		Active:      true,
		CreatedAt:   now(),
	}
}

// ClampPrice maps negative and non-finite prices to zero.
func ClampPrice(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

// ClampRating constrains r to [MinRating, MaxRating].
func ClampRating(r float64) float64 {
	return clamp(r, MinRating, MaxRating)
}

// SetPrice sets the price, clamping negatives to zero.
func (s *Service) SetPrice(price float64) {
	s.Price = ClampPrice(price)
}

// SetRating sets the rating, clamped to [0, 5].
func (s *Service) SetRating(rating float64) {
	s.Rating = ClampRating(rating)
}

// AddMedia appends a trimmed media path unless it is blank or already present.
func (s *Service) AddMedia(path string) {
	p := strings.TrimSpace(path)
	if p == "" || s.HasMedia(p) {
		return
	}
	s.Media = append(s.Media, p)
}

// RemoveMedia removes every occurrence of the trimmed path.
func (s *Service) RemoveMedia(path string) {
	p := strings.TrimSpace(path)
	kept := s.Media[:0]
	for _, m := range s.Media {
		if m != p {
			kept = append(kept, m)
		}
	}
	s.Media = kept
}

// ClearMedia drops all media entries.
func (s *Service) ClearMedia() {
	s.Media = nil
}

// HasMedia reports whether path is attached to the service.
func (s *Service) HasMedia(path string) bool {
	for _, m := range s.Media {
		if m == path {
			return true
		}
	}
	return false
}

// Normalize enforces the Service invariants in place: a non-nil id, clamped
// price and rating, and a duplicate-free media list.
func (s *Service) Normalize() {
	s.ID = ensureID(s.ID)
	s.Price = ClampPrice(s.Price)
	s.Rating = ClampRating(s.Rating)

	media := s.Media
	s.Media = nil
	for _, m := range media {
		s.AddMedia(m)
	}
}

// Clone returns a deep copy of the service.
func (s Service) Clone() Service {
	if s.Media != nil {
		s.Media = append([]string(nil), s.Media...)
	}
	return s
}

// Info returns a one-line summary.
func (s Service) Info() string {
	title := s.Title
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("%s | %.2f ₽ | %.1f★", title, s.Price, s.Rating)
}

// FullInfo returns a multi-line description of every field.
func (s Service) FullInfo() string {
	var b strings.Builder
	b.WriteString("Service:\n")
	fmt.Fprintf(&b, "  id: %s\n", s.ID)
	fmt.Fprintf(&b, "  providerId: %s\n", s.ProviderID)
	fmt.Fprintf(&b, "  title: %s\n", s.Title)
	fmt.Fprintf(&b, "  category: %s\n", s.Category)
	fmt.Fprintf(&b, "  price: %.2f\n", s.Price)
	fmt.Fprintf(&b, "  active: %t\n", s.Active)
	fmt.Fprintf(&b, "  rating: %.2f\n", s.Rating)
	fmt.Fprintf(&b, "  media: %s\n", strings.Join(s.Media, ", "))
	fmt.Fprintf(&b, "  createdAt: %s\n", FormatTimestamp(s.CreatedAt))
	fmt.Fprintf(&b, "  description: %s\n", s.Description)
	return b.String()
}

type serviceJSON struct {
	ID          string   `json:"id"`
	ProviderID  string   `json:"providerId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Active      *bool    `json:"active"`
	Rating      float64  `json:"rating"`
	CreatedAt   string   `json:"createdAt"`
	Media       []string `json:"media"`
}

// MarshalJSON implements json.Marshaler.
func (s Service) MarshalJSON() ([]byte, error) {
	active := s.Active
	media := s.Media
	if media == nil {
		media = []string{}
	}
	return json.Marshal(serviceJSON{
		ID:          s.ID.String(),
		ProviderID:  s.ProviderID.String(),
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		Price:       s.Price,
		Active:      &active,
		Rating:      s.Rating,
		CreatedAt:   FormatTimestamp(s.CreatedAt),
		Media:       media,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Missing "active" means active,
// an invalid createdAt is left zero, and the invariants are re-applied.
func (s *Service) UnmarshalJSON(data []byte) error {
	var raw serviceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Service{
		ID:          parseIDOrNil(raw.ID),
		ProviderID:  parseIDOrNil(raw.ProviderID),
		Title:       raw.Title,
		Description: raw.Description,
		Category:    raw.Category,
		Price:       raw.Price,
		Active:      raw.Active == nil || *raw.Active,
		Rating:      raw.Rating,
		Media:       raw.Media,
		CreatedAt:   parseTimestampOr(raw.CreatedAt, time.Time{}),
	}
	s.Normalize()
	return nil
}
