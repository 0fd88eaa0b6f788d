package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/etecplus/datafeeds/internal/store"
)

func suppliersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "Manage the supplier registry",
	}
	cmd.AddCommand(suppliersListCmd())
	cmd.AddCommand(suppliersAddCmd())
	cmd.AddCommand(suppliersRemoveCmd())
	return cmd
}

func suppliersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered suppliers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			suppliers, err := newStore(cfg).LoadSuppliers()
			if err != nil {
				return err
			}

			if jsonOutput() {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(suppliers)
			}
			return printSuppliers(suppliers)
		},
	}
}

func suppliersAddCmd() *cobra.Command {
	var (
		name     string
		filename string
		keywords []string
	)

	cmd := &cobra.Command{
		Use:   "add <key>",
		Short: "Register a supplier",
		Example: `  datafeeds suppliers add auscomp --name "Auscomp" --keyword auscomp
  datafeeds suppliers add leader --name "Leader Systems" --keyword leader --keyword leadersystem`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))
			if key == "" {
				return fmt.Errorf("supplier key must not be empty")
			}
			if name == "" {
				name = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s := newStore(cfg)

			suppliers, err := s.LoadSuppliers()
			if err != nil {
				return err
			}
			suppliers[key] = store.Supplier{Name: name, Keywords: keywords, Filename: filename}
			if err := s.SaveSuppliers(suppliers); err != nil {
				return err
			}

			fmt.Printf("Registered supplier %q\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the key)")
	cmd.Flags().StringVar(&filename, "filename", "", "known feed file name, matched like a keyword")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil,
		"file name keyword for feed detection (repeatable, defaults to the key)")

	return cmd
}

func suppliersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a supplier and its mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s := newStore(cfg)

			suppliers, err := s.LoadSuppliers()
			if err != nil {
				return err
			}
			if _, ok := suppliers[key]; !ok {
				return fmt.Errorf("supplier %q is not registered", key)
			}
			delete(suppliers, key)
			if err := s.SaveSuppliers(suppliers); err != nil {
				return err
			}

			mappings, err := s.LoadMappings()
			if err != nil {
				return err
			}
			if _, ok := mappings[key]; ok {
				delete(mappings, key)
				if err := s.SaveMappings(mappings); err != nil {
					return err
				}
			}

			fmt.Printf("Removed supplier %q\n", key)
			return nil
		},
	}
}
