// Package catalog owns the collection of marketplace services together with
// the category list and the search history, and answers search, filter and
// ranking queries over them. It has no notion of users or sessions.
package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
)

// DefaultSearchHistoryLimit is the number of queries kept in the history.
const DefaultSearchHistoryLimit = 50

// ErrNotFound is returned when no service has the requested id.
var ErrNotFound = errors.New("service not found")

// DefaultCategories seeds a new catalog.
var DefaultCategories = []string{
	"Бытовые услуги",
	"Дизайн",
	"Ремонт",
	"Обучение",
	"Консультирование",
	"Программирование",
}

// Catalog holds services in insertion order. Queries return deep copies.
type Catalog struct {
	services      []domain.Service
	categories    []string
	searchHistory []string

	historyLimit int
	locale       language.Tag
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSearchHistoryLimit sets how many queries are retained. Values below one
// fall back to DefaultSearchHistoryLimit.
func WithSearchHistoryLimit(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}

// WithLocale selects the language of Info and FullInfo. Unsupported
// languages resolve to the closest supported one.
func WithLocale(tag language.Tag) Option {
	return func(c *Catalog) {
		c.locale = MatchLocale(tag)
	}
}

// New returns a catalog seeded with DefaultCategories.
func New(opts ...Option) *Catalog {
	c := newEmpty(opts...)
	c.categories = append([]string(nil), DefaultCategories...)
	return c
}

func newEmpty(opts ...Option) *Catalog {
	c := &Catalog{
		historyLimit: DefaultSearchHistoryLimit,
		locale:       DefaultLocale,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone returns an independent deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		services:      c.Services(),
		categories:    append([]string(nil), c.categories...),
		searchHistory: append([]string(nil), c.searchHistory...),
		historyLimit:  c.historyLimit,
		locale:        c.locale,
	}
	return out
}

// Add stores s, replacing any service with the same id in place, and records
// its category. The stored copy has its invariants enforced.
func (c *Catalog) Add(s domain.Service) domain.Service {
	s = s.Clone()
	s.Normalize()

	if i := c.indexOf(s.ID); i >= 0 {
		c.services[i] = s
	} else {
		c.services = append(c.services, s)
	}
	c.addCategory(s.Category)

	return s.Clone()
}

// Update replaces the service sharing s's id. It never creates a service.
func (c *Catalog) Update(s domain.Service) (domain.Service, error) {
	if c.indexOf(s.ID) < 0 {
		return domain.Service{}, ErrNotFound
	}
	return c.Add(s), nil
}

// Remove deletes the service with the given id.
func (c *Catalog) Remove(id uuid.UUID) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	c.services = append(c.services[:i], c.services[i+1:]...)
	return nil
}

// Get returns a copy of the service with the given id.
func (c *Catalog) Get(id uuid.UUID) (domain.Service, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return domain.Service{}, false
	}
	return c.services[i].Clone(), true
}

// Len returns the number of services.
func (c *Catalog) Len() int {
	return len(c.services)
}

// Services returns every service in insertion order.
func (c *Catalog) Services() []domain.Service {
	return c.filter(func(domain.Service) bool { return true })
}

// Active returns the services marked active.
func (c *Catalog) Active() []domain.Service {
	return c.filter(func(s domain.Service) bool { return s.Active })
}

// SearchByName returns services whose title contains query, ignoring case.
// A blank query matches nothing.
func (c *Catalog) SearchByName(query string) []domain.Service {
	return c.search(query, func(s domain.Service) string { return s.Title })
}

// SearchByDescription is SearchByName over descriptions.
func (c *Catalog) SearchByDescription(query string) []domain.Service {
	return c.search(query, func(s domain.Service) string { return s.Description })
}

func (c *Catalog) search(query string, field func(domain.Service) string) []domain.Service {
	q := strings.TrimSpace(query)
	if q == "" {
		return []domain.Service{}
	}

	folder := cases.Fold()
	needle := folder.String(q)
	return c.filter(func(s domain.Service) bool {
		return strings.Contains(folder.String(field(s)), needle)
	})
}

// FilterByCategory returns services whose category equals category after
// trimming. A blank category matches nothing.
func (c *Catalog) FilterByCategory(category string) []domain.Service {
	category = strings.TrimSpace(category)
	if category == "" {
		return []domain.Service{}
	}
	return c.filter(func(s domain.Service) bool {
		return strings.TrimSpace(s.Category) == category
	})
}

// FilterByPrice returns services priced within [minPrice, maxPrice].
// An inverted range yields no services.
func (c *Catalog) FilterByPrice(minPrice, maxPrice float64) []domain.Service {
	if minPrice > maxPrice {
		return []domain.Service{}
	}
	return c.filter(func(s domain.Service) bool {
		return s.Price >= minPrice && s.Price <= maxPrice
	})
}

// FilterByRating returns services rated at least minRating.
func (c *Catalog) FilterByRating(minRating float64) []domain.Service {
	return c.filter(func(s domain.Service) bool {
		return s.Rating >= minRating
	})
}

// Popular returns up to count services by rating, highest first. Ties keep
// insertion order.
func (c *Catalog) Popular(count int) []domain.Service {
	return c.top(count, func(a, b domain.Service) bool { return a.Rating > b.Rating })
}

// Newest returns up to count services by creation time, newest first. Ties
// keep insertion order.
func (c *Catalog) Newest(count int) []domain.Service {
	return c.top(count, func(a, b domain.Service) bool { return a.CreatedAt.After(b.CreatedAt) })
}

func (c *Catalog) top(count int, less func(a, b domain.Service) bool) []domain.Service {
	ranked := c.Services()
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	if count < 0 {
		count = 0
	}
	if count < len(ranked) {
		ranked = ranked[:count]
	}
	return ranked
}

// AddSearchHistory records a trimmed query at the front of the history,
// dropping an earlier identical entry. Blank queries are ignored. Reports
// whether the history changed.
func (c *Catalog) AddSearchHistory(query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}

	history := make([]string, 0, len(c.searchHistory)+1)
	history = append(history, q)
	for _, h := range c.searchHistory {
		if h != q {
			history = append(history, h)
		}
	}
	if len(history) > c.historyLimit {
		history = history[:c.historyLimit]
	}
	c.searchHistory = history
	return true
}

// Categories returns the known categories.
func (c *Catalog) Categories() []string {
	return append([]string{}, c.categories...)
}

// SearchHistory returns recorded queries, most recent first.
func (c *Catalog) SearchHistory() []string {
	return append([]string{}, c.searchHistory...)
}

func (c *Catalog) addCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return
	}
	for _, existing := range c.categories {
		if existing == category {
			return
		}
	}
	c.categories = append(c.categories, category)
}

func (c *Catalog) indexOf(id uuid.UUID) int {
	for i := range c.services {
		if c.services[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) filter(keep func(domain.Service) bool) []domain.Service {
	out := make([]domain.Service, 0, len(c.services))
	for _, s := range c.services {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	return out
}
