package chemlab

import (
	"fmt"
	"strings"
)

// Category is the broad classification of a chemical, used by reaction
// rules to match by role instead of by exact name.
type Category string

const (
	CategoryLiquid    Category = "liquid"
	CategoryAcid      Category = "acid"
	CategoryBase      Category = "base"
	CategorySalt      Category = "salt"
	CategoryIndicator Category = "indicator"
	CategorySolid     Category = "solid"
	CategoryGas       Category = "gas"
	CategoryIon       Category = "ion"

	// CategoryUnknown marks an ingredient the catalog could not resolve.
	// Unknown ingredients still contribute to mixture classification but
	// never satisfy a category matcher.
	CategoryUnknown Category = "unknown"
)

// KnownCategories lists every category a catalog record may carry,
// in the display order used by the chemicals API.
var KnownCategories = []Category{
	CategoryLiquid,
	CategoryAcid,
	CategoryBase,
	CategorySalt,
	CategoryIndicator,
	CategorySolid,
	CategoryGas,
	CategoryIon,
}

// ParseCategory parses a category string (case-insensitive).
// It accepts both singular and plural forms ("acid" and "acids") since
// catalog seed data historically used plurals.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "gas" || normalized == "gases" {
		return CategoryGas, nil
	}
	switch strings.TrimSuffix(normalized, "s") {
	case "liquid":
		return CategoryLiquid, nil
	case "acid":
		return CategoryAcid, nil
	case "base":
		return CategoryBase, nil
	case "salt":
		return CategorySalt, nil
	case "indicator":
		return CategoryIndicator, nil
	case "solid":
		return CategorySolid, nil
	case "ion":
		return CategoryIon, nil
	case "unknown":
		return CategoryUnknown, nil
	default:
		return CategoryUnknown, fmt.Errorf("unknown category: %q", s)
	}
}

// metals recognized by the heuristic categorizer, by formula symbol.
var metalFormulas = map[string]bool{
	"zn": true, "mg": true, "fe": true, "cu": true, "al": true,
	"na": true, "ca": true, "k": true, "li": true, "pb": true,
	"sn": true, "ag": true, "au": true, "pt": true, "ni": true,
}

var gasNames = []string{
	"ammonia", "chlorine", "hydrogen", "oxygen", "nitrogen",
	"methane", "propane", "butane", "carbon dioxide", "carbon monoxide",
}

// CategorizeHeuristic assigns a category from the name and formula alone.
// It is the fallback used when a record arrives without a stored category,
// so a badly seeded catalog still produces usable role matching.
func CategorizeHeuristic(name, formula string) Category {
	nameLower := strings.ToLower(name)
	formulaLower := strings.ToLower(formula)

	if strings.Contains(nameLower, "acid") || strings.Contains(nameLower, "vinegar") {
		return CategoryAcid
	}
	if formula != "" && strings.HasPrefix(formula, "H") {
		for _, anion := range []string{"Cl", "SO", "NO", "PO", "CO"} {
			if strings.Contains(formula, anion) {
				return CategoryAcid
			}
		}
	}

	if strings.Contains(nameLower, "hydroxide") || strings.Contains(nameLower, "ammonia") {
		return CategoryBase
	}
	if strings.Contains(formula, "OH") || formula == "NH3" {
		return CategoryBase
	}
	for _, base := range []string{"soda", "carbonate", "bicarbonate"} {
		if strings.Contains(nameLower, base) {
			return CategoryBase
		}
	}

	for _, ind := range []string{"indicator", "phenolphthalein", "litmus", "methyl", "bromothymol"} {
		if strings.Contains(nameLower, ind) {
			return CategoryIndicator
		}
	}

	if formula != "" && len(formula) <= 3 && isAlpha(formula) && metalFormulas[formulaLower] {
		return CategorySolid
	}

	for _, gas := range gasNames {
		if strings.Contains(nameLower, gas) {
			return CategoryGas
		}
	}

	if strings.Contains(nameLower, "ion") || strings.ContainsAny(formula, "+-") {
		return CategoryIon
	}

	return CategorySalt
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
