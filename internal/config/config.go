package config

import "path/filepath"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage" validate:"required"`
	Catalog   CatalogConfig   `mapstructure:"catalog" validate:"required"`
	Favorites FavoritesConfig `mapstructure:"favorites" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Requests  RequestsConfig  `mapstructure:"requests" validate:"required"`
	Locale    string          `mapstructure:"locale" validate:"required,bcp47_language_tag"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects where collections are persisted.
type StorageConfig struct {
	Driver  string `mapstructure:"driver" validate:"required,oneof=file sqlite"`
	DataDir string `mapstructure:"data_dir" validate:"required"`
	// SQLitePath defaults to servicehub.db inside DataDir.
	SQLitePath string `mapstructure:"sqlite_path"`
}

// SQLiteFile returns the database path used by the sqlite driver.
func (s StorageConfig) SQLiteFile() string {
	if s.SQLitePath != "" {
		return s.SQLitePath
	}
	return filepath.Join(s.DataDir, "servicehub.db")
}

// CatalogConfig contains catalog settings.
type CatalogConfig struct {
	SearchHistoryLimit int `mapstructure:"search_history_limit" validate:"gt=0"`
}

// FavoritesConfig contains favorites settings.
type FavoritesConfig struct {
	ViewHistoryLimit int `mapstructure:"view_history_limit" validate:"gt=0"`
}

// AuthConfig contains account and password settings.
type AuthConfig struct {
	BcryptCost        int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	MinPasswordLength int `mapstructure:"min_password_length" validate:"gte=1,lte=72"`
}

// RequestsConfig contains service request settings.
type RequestsConfig struct {
	// IDPolicy decides how malformed ids passed to request creation are
	// handled: "synthesize" replaces them, "reject" fails the call.
	IDPolicy string `mapstructure:"id_policy" validate:"required,oneof=synthesize reject"`
}
