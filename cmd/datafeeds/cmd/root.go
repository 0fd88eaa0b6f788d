// Package cmd implements the datafeeds CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/etecplus/datafeeds/internal/config"
	"github.com/etecplus/datafeeds/internal/engine"
	"github.com/etecplus/datafeeds/internal/store"
	"github.com/etecplus/datafeeds/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "datafeeds",
		Short: "Supplier datafeed processor for Shopify imports",
		Long: "datafeeds converts supplier product feeds into Shopify-importable CSV files.\n" +
			"It maps supplier columns onto a Shopify template, removes duplicate SKUs\n" +
			"keeping the cheapest source, and builds cross-supplier quoting datasets.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default datafeeds.yaml)")
	rootCmd.PersistentFlags().
		String("feeds", "", "directory of incoming supplier feed files")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("feeds", rootCmd.PersistentFlags().Lookup("feeds")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(suppliersCmd())
	rootCmd.AddCommand(mappingsCmd())
	rootCmd.AddCommand(templateCmd())
	rootCmd.AddCommand(versionCommand())
}

func initConfig() {
	viper.SetEnvPrefix("DATAFEEDS")
	viper.AutomaticEnv()
}

// loadConfig resolves the application configuration, falling back to
// defaults when no config file exists.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err == nil {
			fmt.Fprintln(os.Stderr, "Using config file:", cfgFile)
		}
	} else {
		cfg, err = config.LoadOrDefault("datafeeds.yaml")
	}
	if err != nil {
		return nil, err
	}

	if feeds := viper.GetString("feeds"); feeds != "" {
		cfg.Workspace.FeedsDir = feeds
	}
	return cfg, nil
}

func newStore(cfg *config.Config) store.Store {
	return store.NewFileStore(cfg.Workspace.ConfigDir)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

func newEngine(cfg *config.Config) *engine.Engine {
	return engine.NewEngine(newStore(cfg),
		engine.WithLogger(newLogger(cfg)),
		engine.WithFeedsDir(cfg.Workspace.FeedsDir),
	)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
