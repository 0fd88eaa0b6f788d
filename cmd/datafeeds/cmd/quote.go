package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/etecplus/datafeeds/internal/metrics"
)

func quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Build and query the cross-supplier quoting dataset",
	}
	cmd.AddCommand(quoteBuildCmd())
	cmd.AddCommand(quoteLookupCmd())
	return cmd
}

func quoteBuildCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the full quoting dataset as CSV",
		Long: "Reads every recognized feed file and writes all rows, including\n" +
			"duplicate SKUs from competing suppliers, with a _Supplier column.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuoteBuild(cmd, outFile)
		},
	}
	cmd.Flags().StringVar(&outFile, "out", "", "output CSV path (default from config)")

	return cmd
}

func runQuoteBuild(cmd *cobra.Command, outFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outFile == "" {
		outFile = cfg.Quotes.OutputFile
	}

	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	result, _, runErr := newEngine(cfg).BuildQuotes(cmd.Context(), f)
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

	fmt.Println("Quoting dataset written to", outFile)
	return printRunResult(result)
}

func quoteLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <sku> [sku...]",
		Short: "Compare supplier prices for one or more SKUs",
		Long: "Builds the quote index from the current feeds and lists every\n" +
			"supplier offering for each SKU, cheapest first.",
		Example: `  datafeeds quote lookup MOUSE001
  datafeeds quote lookup MOUSE001 CABLE-2 KB-402`,
		Args: cobra.MinimumNArgs(1),
		RunE: runQuoteLookup,
	}
}

func runQuoteLookup(cmd *cobra.Command, skus []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, index, err := newEngine(cfg).BuildQuotes(cmd.Context(), nil)
	if err != nil {
		return err
	}

	results := index.LookupAll(skus)
	metrics.QuoteLookupsTotal.Add(float64(len(skus)))

	if jsonOutput() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, sku := range skus {
		if err := printQuoteMatches(sku, results[sku]); err != nil {
			return err
		}
	}
	return nil
}
