package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gaborage/go-appkit/validation"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Validate checks the loaded configuration for missing or inconsistent
// values. It returns an error describing the first failed validation.
func Validate(cfg *Config) error {
	if err := validateApp(&cfg.App); err != nil {
		return fmt.Errorf("app config: %w", err)
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		return fmt.Errorf("paths config: %w", err)
	}

	return nil
}

func validateApp(cfg *AppConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("app name is required")
	}

	if cfg.Version == "" {
		return fmt.Errorf("app version is required")
	}

	validEnvs := []string{EnvDevelopment, EnvStaging, EnvProduction}
	if !slices.Contains(validEnvs, cfg.Env) {
		return fmt.Errorf("invalid environment: %s (must be one of: %s)",
			cfg.Env, strings.Join(validEnvs, ", "))
	}

	return nil
}

// validateDatabase requires the full connection quartet. A host that
// looks like an IP literal must be a valid one.
func validateDatabase(cfg *DatabaseConfig) error {
	if !validation.Fields(&cfg.Host, &cfg.Database, &cfg.Username, &cfg.Password) {
		return fmt.Errorf("host, database, username, and password are all required")
	}

	if looksLikeIP(cfg.Host) && !validation.IsIP(cfg.Host) {
		return fmt.Errorf("invalid host IP: %s", cfg.Host)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", cfg.Port)
	}

	if cfg.MaxConns < 0 || cfg.MaxIdleConns < 0 {
		return fmt.Errorf("connection pool sizes cannot be negative")
	}

	if cfg.MaxIdleConns > cfg.MaxConns && cfg.MaxConns > 0 {
		return fmt.Errorf("max idle connections (%d) cannot exceed max connections (%d)",
			cfg.MaxIdleConns, cfg.MaxConns)
	}

	return nil
}

func validateLog(cfg *LogConfig) error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	if !slices.Contains(validLevels, cfg.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			cfg.Level, strings.Join(validLevels, ", "))
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	if cfg.RootMarker == "" {
		return fmt.Errorf("root marker file name is required")
	}

	if strings.ContainsAny(cfg.RootMarker, `/\`) {
		return fmt.Errorf("root marker must be a bare file name: %s", cfg.RootMarker)
	}

	return nil
}

// looksLikeIP reports whether host is made only of digits and dots or
// contains a colon, i.e. it is an address literal rather than a name.
func looksLikeIP(host string) bool {
	if strings.Contains(host, ":") {
		return true
	}
	for _, r := range host {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
