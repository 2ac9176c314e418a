package chemlab

import "strings"

// commonFormulas maps Hill-system notation (alphabetical, as stored by
// chemical databases) to the representation used in laboratory practice.
var commonFormulas = map[string]string{
	"ClH":    "HCl",
	"H2O4S":  "H2SO4",
	"H4N2":   "N2H4",
	"H3N":    "NH3",
	"H4O2S":  "H2SO4",
	"HNaO":   "NaOH",
	"HKO":    "KOH",
	"H3O4P":  "H3PO4",
	"CH2O2":  "HCOOH",
	"C2H4O2": "CH3COOH",
	"ClNa":   "NaCl",
	"IK":     "KI",
	"ClK":    "KCl",
	"O2S":    "SO2",
	"O3S":    "SO3",
}

// FormatFormula converts a Hill-system formula into its common laboratory
// representation for display. Falls back to the name when no formula is
// available.
func FormatFormula(formula, name string) string {
	if formula == "" {
		if name != "" {
			return name
		}
		return "Unknown"
	}

	if common, ok := commonFormulas[formula]; ok {
		return common
	}

	// Hill notation puts H last for binary acids without carbon
	// (BrH, FH, IH); flip those back to the acid form.
	if strings.HasSuffix(formula, "H") && !strings.Contains(formula, "C") {
		return "H" + strings.TrimSuffix(formula, "H")
	}

	return formula
}
