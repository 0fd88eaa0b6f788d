// Command dashgen generates the Grafana dashboard and Prometheus rule
// files for datafeeds runs scraped through a Pushgateway.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/etecplus/datafeeds/tools/dashgen/dashboards"
	"github.com/etecplus/datafeeds/tools/dashgen/rules"
	"github.com/etecplus/datafeeds/tools/dashgen/validate"
)

const generatedHeader = "# Generated by tools/dashgen. Do not edit by hand.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("building overview dashboard: %w", err)
	}

	if result := validate.Dashboard(dash, KnownMetrics); !result.Ok() {
		return fmt.Errorf("dashboard validation failed: %v", result.Errors)
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		dashJSON, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding dashboard: %w", err)
		}
		dashJSON = append(dashJSON, '\n')

		path := filepath.Join(cfg.OutputDir, "grafana", "data", "datafeeds-overview.json")
		if err := writeFile(path, dashJSON); err != nil {
			return err
		}
	}

	if cfg.RulesEnabled {
		for name, cr := range map[string]rules.PrometheusRule{
			"datafeeds-recording-rules.yaml": rules.RecordingRules(),
			"datafeeds-alerts.yaml":          rules.AlertRules(),
		} {
			data, err := yaml.Marshal(cr)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", name, err)
			}
			data = append([]byte(generatedHeader), data...)

			if err := writeFile(filepath.Join(cfg.OutputDir, "prometheus", name), data); err != nil {
				return err
			}
		}
	}

	fmt.Printf("dashgen: artifacts written to %s\n", cfg.OutputDir)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
