package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build the deduplicated Shopify import CSV from all feeds",
		Long: "Reads every recognized feed file, maps supplier columns onto the\n" +
			"Shopify template, removes duplicate SKUs keeping the cheapest source,\n" +
			"and writes the import-ready CSV.",
		Example: `  datafeeds export
  datafeeds export --feeds ./incoming --out shopify_products.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, outFile)
		},
	}
	cmd.Flags().StringVar(&outFile, "out", "", "output CSV path (default from config)")

	return cmd
}

func runExport(cmd *cobra.Command, outFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outFile == "" {
		outFile = cfg.Export.OutputFile
	}

	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	result, runErr := newEngine(cfg).RunExport(cmd.Context(), f)
	if closeErr := f.Close(); runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return runErr
	}

	if jsonOutput() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println("Export written to", outFile)
	return printRunResult(result)
}
