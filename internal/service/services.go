package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/catalog"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// commitCatalog persists next as the catalog document. On failure the
// previous catalog is kept.
func (m *Marketplace) commitCatalog(ctx context.Context, next *catalog.Catalog, kind events.Kind) error {
	prev := m.catalog
	m.catalog = next
	return m.commit(ctx, store.DocServices, kind, next, func() { m.catalog = prev })
}

// Services returns every service in insertion order.
func (m *Marketplace) Services() []domain.Service {
	return m.catalog.Services()
}

// ActiveServices returns the services marked active.
func (m *Marketplace) ActiveServices() []domain.Service {
	return m.catalog.Active()
}

// Service returns the service with id.
func (m *Marketplace) Service(id uuid.UUID) (domain.Service, error) {
	if id == uuid.Nil {
		return domain.Service{}, ErrInvalidID
	}
	s, ok := m.catalog.Get(id)
	if !ok {
		return domain.Service{}, fmt.Errorf("%w: service %s", ErrNotFound, id)
	}
	return s, nil
}

// AddService stores s, replacing any service with the same id. Price and
// rating are clamped; a nil id or zero creation time is filled in.
func (m *Marketplace) AddService(ctx context.Context, s domain.Service) (domain.Service, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = m.now()
	}

	next := m.catalog.Clone()
	stored := next.Add(s)
	if err := m.commitCatalog(ctx, next, events.ServicesChanged); err != nil {
		return domain.Service{}, err
	}

	m.logger.Debug("service saved", "service_id", stored.ID)
	return stored, nil
}

// UpdateService replaces an existing service.
func (m *Marketplace) UpdateService(ctx context.Context, s domain.Service) (domain.Service, error) {
	if s.ID == uuid.Nil {
		return domain.Service{}, ErrInvalidID
	}

	next := m.catalog.Clone()
	stored, err := next.Update(s)
	if err != nil {
		return domain.Service{}, fmt.Errorf("%w: service %s", ErrNotFound, s.ID)
	}
	if err := m.commitCatalog(ctx, next, events.ServicesChanged); err != nil {
		return domain.Service{}, err
	}
	return stored, nil
}

// DeleteService removes the service with id.
func (m *Marketplace) DeleteService(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}

	next := m.catalog.Clone()
	if err := next.Remove(id); err != nil {
		return fmt.Errorf("%w: service %s", ErrNotFound, id)
	}
	if err := m.commitCatalog(ctx, next, events.ServicesChanged); err != nil {
		return err
	}

	m.logger.Debug("service deleted", "service_id", id)
	return nil
}

// SearchByName returns services whose title contains query, ignoring case,
// and records query in the search history.
func (m *Marketplace) SearchByName(ctx context.Context, query string) []domain.Service {
	m.recordSearch(ctx, query)
	return m.catalog.SearchByName(query)
}

// SearchByDescription is SearchByName over descriptions.
func (m *Marketplace) SearchByDescription(ctx context.Context, query string) []domain.Service {
	m.recordSearch(ctx, query)
	return m.catalog.SearchByDescription(query)
}

// recordSearch adds query to the history and persists it. A failed write
// leaves the previous history in place and does not fail the search.
func (m *Marketplace) recordSearch(ctx context.Context, query string) {
	next := m.catalog.Clone()
	if !next.AddSearchHistory(query) {
		return
	}
	if err := m.commitCatalog(ctx, next, events.SearchHistoryChanged); err != nil {
		m.logger.Warn("search history not saved")
	}
}

// FilterByCategory returns services in category.
func (m *Marketplace) FilterByCategory(category string) []domain.Service {
	return m.catalog.FilterByCategory(category)
}

// FilterByPrice returns services priced within [minPrice, maxPrice].
func (m *Marketplace) FilterByPrice(minPrice, maxPrice float64) []domain.Service {
	return m.catalog.FilterByPrice(minPrice, maxPrice)
}

// FilterByRating returns services rated at least minRating.
func (m *Marketplace) FilterByRating(minRating float64) []domain.Service {
	return m.catalog.FilterByRating(minRating)
}

// PopularServices returns up to count services, highest rated first.
func (m *Marketplace) PopularServices(count int) []domain.Service {
	return m.catalog.Popular(count)
}

// NewServices returns up to count services, newest first.
func (m *Marketplace) NewServices(count int) []domain.Service {
	return m.catalog.Newest(count)
}

// Categories returns the known categories.
func (m *Marketplace) Categories() []string {
	return m.catalog.Categories()
}

// SearchHistory returns recent queries, most recent first.
func (m *Marketplace) SearchHistory() []string {
	return m.catalog.SearchHistory()
}

// CatalogInfo returns a one-line catalog summary.
func (m *Marketplace) CatalogInfo() string {
	return m.catalog.Info()
}

// CatalogFullInfo returns a multi-line catalog summary.
func (m *Marketplace) CatalogFullInfo() string {
	return m.catalog.FullInfo()
}
