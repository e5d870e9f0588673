// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, .env and YAML files). It
// provides type-safe access to storage, logging and domain limits while
// keeping configuration details separate from business logic.
package config
