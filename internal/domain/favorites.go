package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultViewHistoryLimit caps the viewed-services list.
const DefaultViewHistoryLimit = 50

// Favorites holds a user's favorited services and providers and their
// recently viewed services. A user holds at most one.
type Favorites struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	FavoriteServiceIDs  []uuid.UUID
	FavoriteProviderIDs []uuid.UUID
	ViewedServiceIDs    []uuid.UUID // most recent first
	LastUpdated         time.Time
}

// NewFavorites creates empty Favorites for userID.
func NewFavorites(id, userID uuid.UUID) *Favorites {
	return &Favorites{
		ID:          ensureID(id),
		UserID:      userID,
		LastUpdated: now(),
	}
}

// ToggleFavoriteService adds serviceID if absent, removes it otherwise, and
// reports whether it is now a favorite.
func (f *Favorites) ToggleFavoriteService(serviceID uuid.UUID, at time.Time) (bool, error) {
	return toggle(&f.FavoriteServiceIDs, serviceID, f, at)
}

// ToggleFavoriteProvider is ToggleFavoriteService for providers.
func (f *Favorites) ToggleFavoriteProvider(providerID uuid.UUID, at time.Time) (bool, error) {
	return toggle(&f.FavoriteProviderIDs, providerID, f, at)
}

func toggle(list *[]uuid.UUID, id uuid.UUID, f *Favorites, at time.Time) (bool, error) {
	if id == uuid.Nil {
		return false, ErrInvalidID
	}
	defer f.touch(at)

	for i, v := range *list {
		if v == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return false, nil
		}
	}
	*list = append(*list, id)
	return true, nil
}

// IsFavoriteService reports whether serviceID is favorited.
func (f *Favorites) IsFavoriteService(serviceID uuid.UUID) bool {
	return containsID(f.FavoriteServiceIDs, serviceID)
}

// IsFavoriteProvider reports whether providerID is favorited.
func (f *Favorites) IsFavoriteProvider(providerID uuid.UUID) bool {
	return containsID(f.FavoriteProviderIDs, providerID)
}

// AddViewedService moves serviceID to the front of the view history and
// trims the history to limit entries, dropping the oldest. A limit below one
// is treated as one.
func (f *Favorites) AddViewedService(serviceID uuid.UUID, limit int, at time.Time) error {
	if serviceID == uuid.Nil {
		return ErrInvalidID
	}
	if limit < 1 {
		limit = 1
	}

	viewed := make([]uuid.UUID, 0, len(f.ViewedServiceIDs)+1)
	viewed = append(viewed, serviceID)
	for _, v := range f.ViewedServiceIDs {
		if v != serviceID {
			viewed = append(viewed, v)
		}
	}
	if len(viewed) > limit {
		viewed = viewed[:limit]
	}

	f.ViewedServiceIDs = viewed
	f.touch(at)
	return nil
}

// ClearViewHistory empties the view history.
func (f *Favorites) ClearViewHistory(at time.Time) {
	f.ViewedServiceIDs = nil
	f.touch(at)
}

func (f *Favorites) touch(at time.Time) {
	f.LastUpdated = at
}

// Clone returns a deep copy.
func (f Favorites) Clone() Favorites {
	f.FavoriteServiceIDs = cloneIDs(f.FavoriteServiceIDs)
	f.FavoriteProviderIDs = cloneIDs(f.FavoriteProviderIDs)
	f.ViewedServiceIDs = cloneIDs(f.ViewedServiceIDs)
	return f
}

// Info returns a one-line summary.
func (f Favorites) Info() string {
	return fmt.Sprintf("Favorites %s | services=%d providers=%d history=%d",
		shortID(f.ID), len(f.FavoriteServiceIDs), len(f.FavoriteProviderIDs), len(f.ViewedServiceIDs))
}

// FullInfo returns a multi-line summary.
func (f Favorites) FullInfo() string {
	var b strings.Builder
	b.WriteString("=== FAVORITES ===\n")
	fmt.Fprintf(&b, "favoritesId: %s\n", f.ID)
	fmt.Fprintf(&b, "userId: %s\n", f.UserID)
	fmt.Fprintf(&b, "lastUpdated: %s\n", FormatTimestamp(f.LastUpdated))
	fmt.Fprintf(&b, "favoriteServices: %d\n", len(f.FavoriteServiceIDs))
	fmt.Fprintf(&b, "favoriteProviders: %d\n", len(f.FavoriteProviderIDs))
	fmt.Fprintf(&b, "viewHistory: %d\n", len(f.ViewedServiceIDs))
	return b.String()
}

type favoritesJSON struct {
	ID                  string   `json:"favoritesId"`
	UserID              string   `json:"userId"`
	LastUpdated         string   `json:"lastUpdated"`
	FavoriteServiceIDs  []string `json:"favoriteServiceIds"`
	FavoriteProviderIDs []string `json:"favoriteProviderIds"`
	ViewedServiceIDs    []string `json:"viewedServiceIds"`
}

// MarshalJSON implements json.Marshaler.
func (f Favorites) MarshalJSON() ([]byte, error) {
	return json.Marshal(favoritesJSON{
		ID:                  f.ID.String(),
		UserID:              f.UserID.String(),
		LastUpdated:         FormatTimestamp(f.LastUpdated),
		FavoriteServiceIDs:  formatIDList(f.FavoriteServiceIDs),
		FavoriteProviderIDs: formatIDList(f.FavoriteProviderIDs),
		ViewedServiceIDs:    formatIDList(f.ViewedServiceIDs),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Malformed and duplicate ids are
// dropped and an invalid lastUpdated defaults to now.
func (f *Favorites) UnmarshalJSON(data []byte) error {
	var raw favoritesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = Favorites{
		ID:                  ensureID(parseIDOrNil(raw.ID)),
		UserID:              parseIDOrNil(raw.UserID),
		LastUpdated:         parseTimestampOr(raw.LastUpdated, now()),
		FavoriteServiceIDs:  parseIDList(raw.FavoriteServiceIDs),
		FavoriteProviderIDs: parseIDList(raw.FavoriteProviderIDs),
		ViewedServiceIDs:    parseIDList(raw.ViewedServiceIDs),
	}
	return nil
}
