package main

import "errors"

// KnownMetrics is the set of metric names exported by datafeeds plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Feed intake metrics.
	"datafeeds_feed_files_total":         true,
	"datafeeds_feed_files_skipped_total": true,
	"datafeeds_feed_rows_total":          true,

	// Export metrics.
	"datafeeds_export_duration_seconds":         true,
	"datafeeds_export_duplicates_removed_total": true,
	"datafeeds_export_titles_retitled_total":    true,
	"datafeeds_export_warnings_total":           true,

	// Quote metrics.
	"datafeeds_quote_entries_total": true,
	"datafeeds_quote_lookups_total": true,

	// Recording rules.
	"datafeeds:feed_rows:rate5m":       true,
	"datafeeds:export_warnings:rate1h": true,
	"datafeeds:quote_lookups:rate5m":   true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
