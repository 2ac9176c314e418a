package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daniacca/chemlab/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the builtin chemical library into the catalog store",
	Long: `Load the builtin chemical library into the configured catalog store.
Chemicals already present are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	added, err := store.Seed(cmd.Context(), st)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	total, err := st.Count(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d chemicals (%d total in store)\n", added, total)
	return nil
}
