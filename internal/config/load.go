package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SERVICEHUB_STORAGE_DRIVER for storage.driver.
const EnvPrefix = "SERVICEHUB"

// Default values applied before files and environment are read.
const (
	DefaultLogLevel           = "info"
	DefaultStorageDriver      = "file"
	DefaultSearchHistoryLimit = 50
	DefaultViewHistoryLimit   = 50
	DefaultBcryptCost         = 10
	DefaultMinPasswordLength  = 6
	DefaultIDPolicy           = "synthesize"
	DefaultLocale             = "ru"
)

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded first, then an optional
// servicehub.yaml. Environment variables take precedence over values from
// config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	return load("")
}

// LoadFile is Load with an explicit config file, which must exist.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("servicehub")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("storage.driver", DefaultStorageDriver)
	v.SetDefault("storage.data_dir", DefaultDataDir())
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("catalog.search_history_limit", DefaultSearchHistoryLimit)
	v.SetDefault("favorites.view_history_limit", DefaultViewHistoryLimit)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("auth.min_password_length", DefaultMinPasswordLength)
	v.SetDefault("requests.id_policy", DefaultIDPolicy)
	v.SetDefault("locale", DefaultLocale)
}

// DefaultDataDir is the per-user application data directory. It falls back
// to a dot-directory in the working directory when the platform reports none.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".servicehub"
	}
	return filepath.Join(dir, "servicehub")
}
