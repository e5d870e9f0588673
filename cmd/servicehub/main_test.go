package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/config"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	return &config.Config{
		Log:       config.LogConfig{Level: "error"},
		Storage:   config.StorageConfig{Driver: driver, DataDir: t.TempDir()},
		Catalog:   config.CatalogConfig{SearchHistoryLimit: 50},
		Favorites: config.FavoritesConfig{ViewHistoryLimit: 50},
		Auth:      config.AuthConfig{BcryptCost: 4, MinPasswordLength: 6},
		Requests:  config.RequestsConfig{IDPolicy: "synthesize"},
		Locale:    "en",
	}
}

// execute runs one command against a fresh application over cfg's storage,
// the way separate CLI invocations would.
func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), cfg, l)
	require.NoError(t, err)
	defer func() { require.NoError(t, app.Close()) }()

	var out bytes.Buffer
	err = runCommand(context.Background(), app, args, &out)
	return out.String(), err
}

func TestCommandsShareStorage(t *testing.T) {
	for _, driver := range []string{"file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t, driver)

			out, err := execute(t, cfg, "info")
			require.NoError(t, err)
			assert.Contains(t, out, "Services: 0")

			out, err = execute(t, cfg, "add-service", "-title", "Уборка", "-category", "Бытовые услуги", "-price", "1500")
			require.NoError(t, err)
			serviceID := strings.TrimSpace(out)

			out, err = execute(t, cfg, "search", "уБОРка")
			require.NoError(t, err)
			assert.Contains(t, out, serviceID)

			out, err = execute(t, cfg, "history")
			require.NoError(t, err)
			assert.Equal(t, "уБОРка\n", out)

			out, err = execute(t, cfg, "services", "-max-price", "1000")
			require.NoError(t, err)
			assert.Equal(t, "no services\n", out)

			out, err = execute(t, cfg, "categories")
			require.NoError(t, err)
			assert.Contains(t, out, "Бытовые услуги")
		})
	}
}

func TestAccountCommands(t *testing.T) {
	cfg := testConfig(t, "file")

	out, err := execute(t, cfg, "register", "-email", "a@x.com", "-password", "secret1", "-role", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider")

	_, err = execute(t, cfg, "issue-code", "-login", "a@x.com", "-password", "wrong!")
	assert.Error(t, err)

	out, err = execute(t, cfg, "issue-code", "-login", "a@x.com", "-password", "secret1")
	require.NoError(t, err)
	code := strings.TrimSpace(out)
	assert.Len(t, code, 6)

	out, err = execute(t, cfg, "verify", "-login", "A@X.COM", "-password", "secret1", "-code", " "+code+"\n")
	require.NoError(t, err)
	assert.Equal(t, "verified\n", out)

	out, err = execute(t, cfg, "add-service", "-title", "Ремонт")
	require.NoError(t, err)
	serviceID := strings.TrimSpace(out)

	out, err = execute(t, cfg, "favorite", "-login", "a@x.com", "-password", "secret1", "-service", serviceID)
	require.NoError(t, err)
	assert.Equal(t, "added to favorites\n", out)

	out, err = execute(t, cfg, "review", "-login", "a@x.com", "-password", "secret1", "-service", serviceID, "-rating", "9", "-comment", "ok")
	require.NoError(t, err)
	assert.Contains(t, out, "5★")

	out, err = execute(t, cfg, "request", "-login", "a@x.com", "-password", "secret1", "-service", serviceID, "-provider", "bad", "-description", "asap")
	require.NoError(t, err)
	assert.Contains(t, out, "Pending")
}

func TestUnknownCommand(t *testing.T) {
	cfg := testConfig(t, "file")

	out, err := execute(t, cfg, "launch")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, "usage: servicehub")

	_, err = execute(t, cfg)
	assert.ErrorIs(t, err, errUsage)
}

func TestRunWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "servicehub.yaml")
	yaml := "log:\n  level: error\nstorage:\n  data_dir: " + filepath.Join(dir, "data") + "\nlocale: en\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	original := slog.Default()
	defer slog.SetDefault(original)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", path, "categories"}, &out))
	assert.Contains(t, out.String(), "Программирование")
}
