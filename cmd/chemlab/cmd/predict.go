package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daniacca/chemlab/internal/chemlab"
	"github.com/daniacca/chemlab/internal/explain"
)

var predictCmd = &cobra.Command{
	Use:   "predict <chemical> [chemical...]",
	Short: "Predict the reaction when chemicals are mixed",
	Long: `Predict what happens when the given chemicals are mixed together in
the vessel, under the chosen temperature and concentration.

Examples:
  chemlab predict "hydrochloric acid" "sodium hydroxide"
  chemlab predict sodium water --temperature hot --concentration concentrated
  chemlab predict zinc "hydrochloric acid" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().String("temperature", "room", "vessel temperature: room, hot or cold")
	predictCmd.Flags().String("concentration", "dilute", "solution concentration: dilute or concentrated")
	predictCmd.Flags().Bool("json", false, "print the raw result JSON")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	tempFlag, _ := cmd.Flags().GetString("temperature")
	concFlag, _ := cmd.Flags().GetString("concentration")
	asJSON, _ := cmd.Flags().GetBool("json")

	temp, err := chemlab.ParseTemperature(tempFlag)
	if err != nil {
		return err
	}
	conc, err := chemlab.ParseConcentration(concFlag)
	if err != nil {
		return err
	}

	rules, err := loadRules()
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	catalog, err := loadCatalog(cmd.Context(), st)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	engine := chemlab.NewEngine(catalog, rules)
	result, err := engine.Predict(args, temp, conc)
	if err != nil {
		return err
	}

	content, _ := explain.NewStaticGenerator().Generate(cmd.Context(), explain.Request{
		ReactionType: result.ReactionType,
	})
	result.Explanation = content.Explanation
	result.SafetyTips = content.SafetyTips
	result.Concept = content.Concept
	result.RealWorldExample = content.RealWorldExample

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(args, temp, conc, result)
	return nil
}

func printResult(ingredients []string, temp chemlab.Temperature, conc chemlab.Concentration, result chemlab.ReactionResult) {
	fmt.Printf("Mixing: %s (%s, %s)\n\n", strings.Join(ingredients, " + "), temp, conc)

	if len(result.VisualSteps) > 1 {
		for i, phase := range result.VisualSteps {
			fmt.Printf("Step %d: %s\n", i+1, phase.Equation)
			if len(phase.Symptoms) > 0 {
				fmt.Printf("        %s\n", strings.Join(phase.Symptoms, ", "))
			}
		}
		fmt.Println()
	} else {
		fmt.Printf("Equation: %s\n", result.Equation)
	}

	fmt.Printf("Type:     %s\n", result.ReactionType)
	if len(result.Products) > 0 {
		fmt.Printf("Products: %s\n", strings.Join(result.Products, ", "))
	}
	fmt.Printf("pH:       %g\n", result.PH)
	if len(result.Symptoms) > 0 {
		fmt.Printf("Observed: %s\n", strings.Join(result.Symptoms, ", "))
	}
	fmt.Printf("\n%s\n", result.Explanation)
	if result.SafetyTips != "" {
		fmt.Printf("\nSafety: %s\n", result.SafetyTips)
	}
}
