// Package config provides configuration loading and validation for the
// aliasvault-core CLI adapter's defaults (log level/format, prune
// retention, default match mode). The pure engine packages never read
// config themselves, and the cmd/aliasvaultcore commands do not load
// it either: they take their settings from flags and the JSON input.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// CLIConfig is the CLI adapter's optional configuration file.
type CLIConfig struct {
	Logging           LoggingSettings           `yaml:"logging"`
	VaultPruner       VaultPrunerSettings       `yaml:"vault_pruner"`
	CredentialMatcher CredentialMatcherSettings `yaml:"credential_matcher"`
}

// LoggingSettings controls the CLI's structured logger.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// VaultPrunerSettings holds defaults for the prune operation.
type VaultPrunerSettings struct {
	DefaultRetentionDays uint32 `yaml:"default_retention_days"`
}

// CredentialMatcherSettings holds defaults for the autofill matcher.
type CredentialMatcherSettings struct {
	DefaultMatchingMode string `yaml:"default_matching_mode"`
}

// Default returns the configuration the CLI uses when no config file is
// given or a value is left unset in the file.
func Default() *CLIConfig {
	return &CLIConfig{
		Logging: LoggingSettings{
			Level:  "info",
			Format: "json",
		},
		VaultPruner: VaultPrunerSettings{
			DefaultRetentionDays: 30,
		},
		CredentialMatcher: CredentialMatcherSettings{
			DefaultMatchingMode: "default",
		},
	}
}

// Load reads and parses the configuration file, filling in any field
// left unset with Default's values.
//
//nolint:gosec // G304: config path is from a command-line argument
func Load(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate performs validation on the configuration.
func Validate(cfg *CLIConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %s", strings.Join(validLevels, ", "))
	}

	validFormats := []string{"json", "human"}
	if !slices.Contains(validFormats, cfg.Logging.Format) {
		return fmt.Errorf("logging.format must be one of: %s", strings.Join(validFormats, ", "))
	}

	if cfg.VaultPruner.DefaultRetentionDays == 0 {
		return fmt.Errorf("vault_pruner.default_retention_days must be greater than 0")
	}

	validModes := []string{"default", "url_exact", "url_subdomain"}
	if !slices.Contains(validModes, cfg.CredentialMatcher.DefaultMatchingMode) {
		return fmt.Errorf("credential_matcher.default_matching_mode must be one of: %s", strings.Join(validModes, ", "))
	}

	return nil
}
