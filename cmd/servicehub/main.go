// Package main implements the servicehub command line, a thin front end over
// the marketplace store: catalog queries, accounts, requests, reviews and
// favorites, persisted under the configured data directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/config"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/platform/logger"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Fatalf("servicehub: %v", err)
	}
}

// run parses the global flags, builds the application and executes one
// command.
func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("servicehub", flag.ContinueOnError)
	global.SetOutput(out)
	configPath := global.String("config", "", "path to a YAML config file")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := initializeConfig(*configPath)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Debug("configuration loaded",
		"storage_driver", cfg.Storage.Driver,
		"log_level", cfg.Log.Level,
		"locale", cfg.Locale)

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			slog.Error("failed to close storage", "error", cerr)
		}
	}()

	return runCommand(ctx, app, global.Args(), out)
}

func initializeConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
