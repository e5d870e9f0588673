package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Profile is the public card of a user: display name, contacts and the
// running rating collected from reviews.
type Profile struct {
	ID           uuid.UUID
	OwnerUserID  uuid.UUID
	Name         string
	Description  string
	AvatarPath   string
	ContactEmail string
	ContactPhone string
	Rating       float64
	ReviewCount  int
	Verified     bool
	CreatedAt    time.Time
}

// NewProfile creates an empty Profile owned by ownerUserID.
func NewProfile(id, ownerUserID uuid.UUID) *Profile {
	return &Profile{
		ID:          ensureID(id),
		OwnerUserID: ownerUserID,
		CreatedAt:   now(),
	}
}

// AddRating merges one sample, clamped to [0, 5], into the running mean.
func (p *Profile) AddRating(r float64) {
	r = ClampRating(r)
	p.Rating = (p.Rating*float64(p.ReviewCount) + r) / float64(p.ReviewCount+1)
	p.ReviewCount++
}

// Info returns a one-line summary.
func (p Profile) Info() string {
	name := p.Name
	if name == "" {
		name = "Unnamed"
	}
	return fmt.Sprintf("%s | %.1f★ (%d)", name, p.Rating, p.ReviewCount)
}

type profileJSON struct {
	ID           string  `json:"profileId"`
	OwnerUserID  string  `json:"ownerUserId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	AvatarPath   string  `json:"avatarPath"`
	ContactEmail string  `json:"contactEmail"`
	ContactPhone string  `json:"contactPhone"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"reviewCount"`
	Verified     bool    `json:"isVerified"`
	CreatedAt    string  `json:"createdAt"`
}

// MarshalJSON implements json.Marshaler.
func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(profileJSON{
		ID:           p.ID.String(),
		OwnerUserID:  p.OwnerUserID.String(),
		Name:         p.Name,
		Description:  p.Description,
		AvatarPath:   p.AvatarPath,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		Rating:       p.Rating,
		ReviewCount:  p.ReviewCount,
		Verified:     p.Verified,
		CreatedAt:    FormatTimestamp(p.CreatedAt),
	})
}

// UnmarshalJSON implements json.Unmarshaler. An invalid createdAt defaults
// to now.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw profileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	count := raw.ReviewCount
	if count < 0 {
		count = 0
	}

	*p = Profile{
		ID:           ensureID(parseIDOrNil(raw.ID)),
		OwnerUserID:  parseIDOrNil(raw.OwnerUserID),
		Name:         raw.Name,
		Description:  raw.Description,
		AvatarPath:   raw.AvatarPath,
		ContactEmail: raw.ContactEmail,
		ContactPhone: raw.ContactPhone,
		Rating:       ClampRating(raw.Rating),
		ReviewCount:  count,
		Verified:     raw.Verified,
		CreatedAt:    parseTimestampOr(raw.CreatedAt, now()),
	}
	return nil
}
