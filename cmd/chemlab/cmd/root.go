// Package cmd contains all CLI commands for the chemlab tool.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/daniacca/chemlab/internal/chemlab"
	"github.com/daniacca/chemlab/internal/store"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chemlab",
	Short: "Virtual chemistry lab - predict reactions from the terminal",
	Long: `chemlab predicts what happens when chemicals are mixed, using the
same rule engine the lab server runs.

Examples:
  chemlab predict "hydrochloric acid" "sodium hydroxide"
  chemlab predict sodium water --temperature hot
  chemlab chemicals
  chemlab seed`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("rules-file", "", "path to a JSON or YAML reaction rule file (builtin rules when empty)")
	rootCmd.PersistentFlags().String("store", "sqlite", "catalog store backend: sqlite, postgres or memory")
	rootCmd.PersistentFlags().String("sqlite-path", "./data/chemlab.db", "path of the SQLite catalog database")
	rootCmd.PersistentFlags().String("postgres-dsn", "", "Postgres DSN for the catalog database")

	viper.BindPFlag("rules_file", rootCmd.PersistentFlags().Lookup("rules-file"))
	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("sqlite_path", rootCmd.PersistentFlags().Lookup("sqlite-path"))
	viper.BindPFlag("postgres_dsn", rootCmd.PersistentFlags().Lookup("postgres-dsn"))
}

// initConfig reads ENV variables (CHEMLAB_STORE, CHEMLAB_SQLITE_PATH, ...).
func initConfig() {
	viper.SetEnvPrefix("CHEMLAB")
	viper.AutomaticEnv()
}

// loadRules returns the configured rule table.
func loadRules() (*chemlab.RuleSet, error) {
	if path := viper.GetString("rules_file"); path != "" {
		return chemlab.LoadRuleFile(path)
	}
	return chemlab.DefaultRules(), nil
}

// openStore opens the configured catalog store.
func openStore() (store.Store, error) {
	switch viper.GetString("store") {
	case "postgres":
		return store.NewPostgresStore(context.Background(), viper.GetString("postgres_dsn"))
	case "memory":
		return store.NewMemoryStore(), nil
	case "sqlite", "":
		return store.NewSQLiteStore(viper.GetString("sqlite_path"))
	default:
		return nil, fmt.Errorf("unknown store backend: %q", viper.GetString("store"))
	}
}

// loadCatalog returns the catalog from the store; when the store is
// empty the builtin chemical library is used so the CLI works without a
// seeded database.
func loadCatalog(ctx context.Context, st store.Store) (*chemlab.MemoryCatalog, error) {
	catalog, err := store.LoadCatalog(ctx, st)
	if err != nil {
		return nil, err
	}
	if catalog.Len() > 0 {
		return catalog, nil
	}
	recs, err := store.SeedChemicals()
	if err != nil {
		return nil, err
	}
	return chemlab.NewMemoryCatalog(recs), nil
}
