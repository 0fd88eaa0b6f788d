// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Export    ExportConfig    `yaml:"export"`
	Quotes    QuotesConfig    `yaml:"quotes"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorkspaceConfig defines where configuration documents and incoming
// feed files live on disk.
type WorkspaceConfig struct {
	ConfigDir string `yaml:"config_dir"`
	FeedsDir  string `yaml:"feeds_dir"`
}

// ExportConfig defines the Shopify CSV export output.
type ExportConfig struct {
	OutputFile string `yaml:"output_file"`
}

// QuotesConfig defines the quoting dataset output.
type QuotesConfig struct {
	OutputFile string `yaml:"output_file"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault returns the configuration at path, or a fully defaulted
// configuration when the file does not exist. Running without a config
// file is the common case for one-shot exports.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	applyWorkspaceDefaults(&cfg.Workspace)
	applyExportDefaults(&cfg.Export)
	applyQuotesDefaults(&cfg.Quotes)
	applyLoggingDefaults(&cfg.Logging)
}

func applyWorkspaceDefaults(w *WorkspaceConfig) {
	if w.ConfigDir == "" {
		w.ConfigDir = "mappings"
	}
	if w.FeedsDir == "" {
		w.FeedsDir = "feeds"
	}
}

func applyExportDefaults(e *ExportConfig) {
	if e.OutputFile == "" {
		e.OutputFile = "shopify_products.csv"
	}
}

func applyQuotesDefaults(q *QuotesConfig) {
	if q.OutputFile == "" {
		q.OutputFile = "export_data_for_quoting.csv"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)",
			cfg.Logging.Level,
		))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)",
			cfg.Logging.Format,
		))
	}

	if cfg.Export.OutputFile == cfg.Quotes.OutputFile {
		errs = append(errs, fmt.Errorf(
			"export.output_file and quotes.output_file must differ (both %q)",
			cfg.Export.OutputFile,
		))
	}

	return errors.Join(errs...)
}
