package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/catalog"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/service/auth"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// Settings holds the tunable limits of a Marketplace.
type Settings struct {
	MinPasswordLength  int
	SearchHistoryLimit int
	ViewHistoryLimit   int
	RequestIDPolicy    domain.IDPolicy
	Locale             language.Tag
}

// DefaultSettings returns the limits used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		MinPasswordLength:  6,
		SearchHistoryLimit: catalog.DefaultSearchHistoryLimit,
		ViewHistoryLimit:   domain.DefaultViewHistoryLimit,
		RequestIDPolicy:    domain.IDPolicySynthesize,
		Locale:             catalog.DefaultLocale,
	}
}

func (s Settings) validate() error {
	if s.MinPasswordLength < 1 {
		return fmt.Errorf("%w: minimum password length must be positive", ErrValidation)
	}
	if s.SearchHistoryLimit < 1 || s.ViewHistoryLimit < 1 {
		return fmt.Errorf("%w: history limits must be positive", ErrValidation)
	}
	if !s.RequestIDPolicy.Valid() {
		return fmt.Errorf("%w: unknown id policy %q", ErrValidation, s.RequestIDPolicy)
	}
	return nil
}

// Option configures a Marketplace.
type Option func(*Marketplace)

// WithSettings replaces the default limits.
func WithSettings(s Settings) Option {
	return func(m *Marketplace) {
		m.settings = s
	}
}

// WithPasswordHasher replaces the default bcrypt hasher.
func WithPasswordHasher(h auth.PasswordHasher) Option {
	return func(m *Marketplace) {
		m.hasher = h
	}
}

// WithCodeGenerator replaces the random verification code generator.
func WithCodeGenerator(g auth.CodeGenerator) Option {
	return func(m *Marketplace) {
		m.codes = g
	}
}

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Marketplace) {
		m.now = now
	}
}

// Marketplace is the single entry point for every domain operation. It owns
// all collections and the current session. It is not safe for concurrent
// use; callers serialize access.
type Marketplace struct {
	backend  store.Backend
	emitter  events.EventEmitter
	hasher   auth.PasswordHasher
	codes    auth.CodeGenerator
	logger   *slog.Logger
	now      func() time.Time
	settings Settings

	catalog       *catalog.Catalog
	requests      []domain.Request
	reviews       []domain.Review
	subscriptions []domain.Subscription
	favorites     []domain.Favorites
	profiles      []domain.Profile
	users         []domain.User
	messages      []domain.Message

	// session is the logged-in user's id, uuid.Nil when logged out.
	session uuid.UUID
}

// New loads every collection from backend and returns a Marketplace with no
// current session. Missing or unreadable documents load as empty
// collections, except the catalog which falls back to a seeded one. A nil
// emitter discards events.
func New(
	ctx context.Context,
	backend store.Backend,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (*Marketplace, error) {
	m := &Marketplace{
		backend:  backend,
		emitter:  emitter,
		logger:   logger.With("component", "marketplace"),
		now:      func() time.Time { return time.Now().UTC() },
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.settings.validate(); err != nil {
		return nil, err
	}
	if m.hasher == nil {
		m.hasher = auth.NewBcryptHasher(0)
	}
	if m.codes == nil {
		m.codes = auth.NewRandomCodeGenerator()
	}

	m.catalog = m.loadCatalog(ctx)
	m.requests = loadCollection[domain.Request](ctx, m, store.DocRequests)
	m.reviews = loadCollection[domain.Review](ctx, m, store.DocReviews)
	m.subscriptions = loadCollection[domain.Subscription](ctx, m, store.DocSubscriptions)
	m.favorites = loadCollection[domain.Favorites](ctx, m, store.DocFavorites)
	m.profiles = loadCollection[domain.Profile](ctx, m, store.DocProfiles)
	m.users = loadCollection[domain.User](ctx, m, store.DocUsers)
	m.messages = loadCollection[domain.Message](ctx, m, store.DocMessages)

	m.logger.Info("marketplace loaded",
		"services", m.catalog.Len(),
		"requests", len(m.requests),
		"reviews", len(m.reviews),
		"users", len(m.users))

	return m, nil
}

func (m *Marketplace) catalogOptions() []catalog.Option {
	return []catalog.Option{
		catalog.WithSearchHistoryLimit(m.settings.SearchHistoryLimit),
		catalog.WithLocale(m.settings.Locale),
	}
}

func (m *Marketplace) loadCatalog(ctx context.Context) *catalog.Catalog {
	data, err := m.backend.Load(ctx, store.DocServices)
	if err != nil {
		if !store.IsNotFoundError(err) {
			m.logger.Warn("catalog unreadable, starting with defaults", "error", err)
		}
		return catalog.New(m.catalogOptions()...)
	}

	c, err := catalog.Decode(data, m.catalogOptions()...)
	if err != nil {
		m.logger.Warn("catalog document is corrupt, starting with defaults", "error", err)
		return catalog.New(m.catalogOptions()...)
	}
	return c
}

func loadCollection[T any](ctx context.Context, m *Marketplace, name string) []T {
	items, skipped, err := store.LoadList[T](ctx, m.backend, name)
	switch {
	case store.IsNotFoundError(err):
		m.logger.Debug("collection not stored yet", "document", name)
		return nil
	case err != nil:
		m.logger.Warn("collection unreadable, starting empty", "document", name, "error", err)
		return nil
	}

	if skipped > 0 {
		m.logger.Warn("skipped malformed records", "document", name, "skipped", skipped)
	}
	return items
}
