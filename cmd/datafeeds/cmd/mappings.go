package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/etecplus/datafeeds/internal/mapping"
)

func mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage per-supplier column mappings",
	}
	cmd.AddCommand(mappingsShowCmd())
	cmd.AddCommand(mappingsSetCmd())
	return cmd
}

func mappingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [supplier]",
		Short: "Show configured column mappings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			mappings, err := newStore(cfg).LoadMappings()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				rs, ok := mappings[args[0]]
				if !ok {
					return fmt.Errorf("no mapping configured for supplier %q", args[0])
				}
				mappings = map[string]mapping.RuleSet{args[0]: rs}
			}

			if jsonOutput() {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(mappings)
			}
			return printMappings(mappings)
		},
	}
}

func mappingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <supplier> <rules.json>",
		Short: "Set a supplier's column mapping from a JSON rules file",
		Long: "Replaces the supplier's mapping with the rules in the given JSON file.\n" +
			"Each rule maps a Shopify field to a source column, a literal value,\n" +
			"or a list of columns joined with a separator.",
		Example: `  datafeeds mappings set auscomp auscomp_rules.json`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			supplier, path := args[0], args[1]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading rules file: %w", err)
			}

			var rules map[string]mapping.Rule
			if err := json.Unmarshal(data, &rules); err != nil {
				return fmt.Errorf("parsing rules file: %w", err)
			}

			rs := mapping.RuleSet{Supplier: supplier, Rules: rules}
			if err := rs.Validate(); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s := newStore(cfg)

			mappings, err := s.LoadMappings()
			if err != nil {
				return err
			}
			mappings[supplier] = rs
			if err := s.SaveMappings(mappings); err != nil {
				return err
			}

			fmt.Printf("Mapping for %q updated (%d rules)\n", supplier, len(rules))
			return nil
		},
	}
}
