package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

func (m *Marketplace) favoritesIndex(userID uuid.UUID) int {
	for i := range m.favorites {
		if m.favorites[i].UserID == userID {
			return i
		}
	}
	return -1
}

// MyFavorites returns the session user's favorites. A user who never
// changed them gets an unsaved empty record with a nil ID.
func (m *Marketplace) MyFavorites() (domain.Favorites, error) {
	if _, err := m.currentUser(); err != nil {
		return domain.Favorites{}, err
	}
	if i := m.favoritesIndex(m.session); i >= 0 {
		return m.favorites[i].Clone(), nil
	}
	return domain.Favorites{UserID: m.session}, nil
}

// updateFavorites applies fn to a copy of the session user's favorites,
// creating the record on first use, and persists the result.
func (m *Marketplace) updateFavorites(ctx context.Context, fn func(f *domain.Favorites, at time.Time) error) (domain.Favorites, error) {
	if _, err := m.currentUser(); err != nil {
		return domain.Favorites{}, err
	}

	at := m.now()
	i := m.favoritesIndex(m.session)
	var fav domain.Favorites
	if i >= 0 {
		fav = m.favorites[i].Clone()
	} else {
		fav = *domain.NewFavorites(uuid.Nil, m.session)
	}

	if err := fn(&fav, at); err != nil {
		return domain.Favorites{}, err
	}

	var next []domain.Favorites
	if i >= 0 {
		next = withReplaced(m.favorites, i, fav)
	} else {
		next = withAppended(m.favorites, fav)
	}

	prev := m.favorites
	m.favorites = next
	if err := m.commit(ctx, store.DocFavorites, events.FavoritesChanged, listDoc(next), func() { m.favorites = prev }); err != nil {
		return domain.Favorites{}, err
	}
	return fav.Clone(), nil
}

// ToggleFavoriteService adds serviceID to the favorites or removes it, and
// reports whether it is now a favorite.
func (m *Marketplace) ToggleFavoriteService(ctx context.Context, serviceID uuid.UUID) (bool, error) {
	var favorited bool
	_, err := m.updateFavorites(ctx, func(f *domain.Favorites, at time.Time) error {
		var err error
		favorited, err = f.ToggleFavoriteService(serviceID, at)
		return wrapInvalidID(err)
	})
	return favorited, err
}

// ToggleFavoriteProvider is ToggleFavoriteService for providers.
func (m *Marketplace) ToggleFavoriteProvider(ctx context.Context, providerID uuid.UUID) (bool, error) {
	var favorited bool
	_, err := m.updateFavorites(ctx, func(f *domain.Favorites, at time.Time) error {
		var err error
		favorited, err = f.ToggleFavoriteProvider(providerID, at)
		return wrapInvalidID(err)
	})
	return favorited, err
}

// AddViewedService moves serviceID to the front of the view history, which
// keeps the configured number of most recent entries.
func (m *Marketplace) AddViewedService(ctx context.Context, serviceID uuid.UUID) (domain.Favorites, error) {
	return m.updateFavorites(ctx, func(f *domain.Favorites, at time.Time) error {
		return wrapInvalidID(f.AddViewedService(serviceID, m.settings.ViewHistoryLimit, at))
	})
}

// ClearMyViewHistory empties the session user's view history.
func (m *Marketplace) ClearMyViewHistory(ctx context.Context) (domain.Favorites, error) {
	return m.updateFavorites(ctx, func(f *domain.Favorites, at time.Time) error {
		f.ClearViewHistory(at)
		return nil
	})
}

func wrapInvalidID(err error) error {
	if err != nil {
		return ErrInvalidID
	}
	return nil
}
