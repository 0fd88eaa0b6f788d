package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/etecplus/datafeeds/internal/feed"
	"github.com/etecplus/datafeeds/internal/mapping"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

func templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage the Shopify template columns",
	}
	cmd.AddCommand(templateShowCmd())
	cmd.AddCommand(templateSetCmd())
	return cmd
}

func templateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configured template columns",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			schema, err := newStore(cfg).LoadTemplate()
			if err != nil {
				return err
			}

			if jsonOutput() {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(schema.Fields)
			}

			if len(schema.Fields) == 0 {
				fmt.Println("No template configured. Run: datafeeds template set <file.csv>")
				return nil
			}
			for _, field := range schema.Fields {
				fmt.Println(field)
			}
			return nil
		},
	}
}

func templateSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <template.csv>",
		Short: "Set the template columns from a Shopify export file",
		Long: "Reads the header row of a Shopify product CSV (or Excel) export and\n" +
			"stores it as the column template every export is shaped to.",
		Example: `  datafeeds template set product_template.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading template file: %w", err)
			}

			columns, err := feed.Header(filepath.Base(args[0]), data)
			if err != nil {
				return fmt.Errorf("parsing template file: %w", err)
			}

			schema := domain.NewSchema(columns)
			if err := mapping.ValidateSchema(schema); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := newStore(cfg).SaveTemplate(schema); err != nil {
				return err
			}

			fmt.Printf("Template saved (%d columns)\n", len(columns))
			return nil
		},
	}
}
