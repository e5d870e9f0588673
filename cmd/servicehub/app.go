package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/config"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/service"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/service/auth"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// application holds the shared dependencies of one CLI invocation and
// releases them on Close.
type application struct {
	config *config.Config
	logger *slog.Logger

	backend      store.Backend
	eventEmitter *events.InMemoryEventEmitter
	marketplace  *service.Marketplace
}

// newApplication opens the configured storage and loads the marketplace.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	backend, err := openBackend(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	app.backend = backend

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	settings, err := settingsFromConfig(cfg)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	app.marketplace, err = service.New(ctx, backend, app.eventEmitter, logger,
		service.WithSettings(settings),
		service.WithPasswordHasher(auth.NewBcryptHasher(cfg.Auth.BcryptCost)),
	)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to initialize marketplace: %w", err)
	}

	return app, nil
}

// Close releases the storage backend.
func (app *application) Close() error {
	if app.backend == nil {
		return nil
	}
	return app.backend.Close()
}

func openBackend(cfg config.StorageConfig, logger *slog.Logger) (store.Backend, error) {
	switch cfg.Driver {
	case "sqlite":
		b, err := store.OpenSQLite(cfg.SQLiteFile())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		logger.Debug("storage opened", "driver", cfg.Driver, "path", cfg.SQLiteFile())
		return b, nil
	default:
		b, err := store.NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open file storage: %w", err)
		}
		logger.Debug("storage opened", "driver", cfg.Driver, "dir", b.Dir())
		return b, nil
	}
}

func settingsFromConfig(cfg *config.Config) (service.Settings, error) {
	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		return service.Settings{}, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}

	return service.Settings{
		MinPasswordLength:  cfg.Auth.MinPasswordLength,
		SearchHistoryLimit: cfg.Catalog.SearchHistoryLimit,
		ViewHistoryLimit:   cfg.Favorites.ViewHistoryLimit,
		RequestIDPolicy:    domain.IDPolicy(cfg.Requests.IDPolicy),
		Locale:             locale,
	}, nil
}
