package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/daniacca/chemlab/internal/chemlab"
)

var chemicalsCmd = &cobra.Command{
	Use:   "chemicals",
	Short: "List the chemical catalog grouped by category",
	Args:  cobra.NoArgs,
	RunE:  runChemicals,
}

func init() {
	rootCmd.AddCommand(chemicalsCmd)
}

func runChemicals(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	catalog, err := loadCatalog(cmd.Context(), st)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	byCategory := make(map[chemlab.Category][]chemlab.ChemicalRecord)
	for _, rec := range catalog.All() {
		byCategory[rec.Category] = append(byCategory[rec.Category], rec)
	}

	for _, cat := range chemlab.KnownCategories {
		recs := byCategory[cat]
		if len(recs) == 0 {
			continue
		}
		sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })

		fmt.Printf("%s:\n", cat)
		for _, rec := range recs {
			if rec.Formula != "" {
				fmt.Printf("  %-28s %s\n", rec.Name, chemlab.FormatFormula(rec.Formula, rec.Name))
			} else {
				fmt.Printf("  %s\n", rec.Name)
			}
		}
		fmt.Println()
	}
	return nil
}
