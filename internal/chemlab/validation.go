package chemlab

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation issues
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid rule table: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "rule table validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// ValidateRuleFileConfig performs comprehensive validation of a rule
// table definition before it is built. It catches authoring mistakes
// that would otherwise surface as runtime faults: duplicate or missing
// IDs, empty matchers, bad enum values, dangling cascade references and
// cascade cycles.
func ValidateRuleFileConfig(cfg RuleFileConfig) error {
	err := &ValidationError{}

	if cfg.Name == "" {
		err.Add("rule table name is required")
	}

	ruleIDs := make(map[string]bool)
	for i, rc := range cfg.Rules {
		prefix := fmt.Sprintf("rule at index %d", i)
		if rc.ID != "" {
			prefix = "rule '" + rc.ID + "'"
		}

		if rc.ID == "" {
			err.Add(prefix + ": rule ID is required")
		} else if ruleIDs[rc.ID] {
			err.Add("duplicate rule ID: " + rc.ID)
		} else {
			ruleIDs[rc.ID] = true
		}

		if len(rc.Reactants) == 0 {
			err.Add(prefix + ": at least one reactant matcher is required")
		}
		for j, reactant := range rc.Reactants {
			reactantPrefix := fmt.Sprintf("%s reactant at index %d", prefix, j)
			switch {
			case reactant.Name == "" && reactant.Category == "":
				err.Add(reactantPrefix + ": either name or category is required")
			case reactant.Name != "" && reactant.Category != "":
				err.Add(reactantPrefix + ": name and category are mutually exclusive")
			case reactant.Category != "":
				if _, perr := ParseCategory(reactant.Category); perr != nil {
					err.Add(reactantPrefix + ": " + perr.Error())
				}
			}
		}

		if rc.Condition != nil {
			if rc.Condition.Temperature != "" {
				if _, perr := ParseTemperature(rc.Condition.Temperature); perr != nil {
					err.Add(prefix + ": " + perr.Error())
				}
			}
			if rc.Condition.Concentration != "" {
				if _, perr := ParseConcentration(rc.Condition.Concentration); perr != nil {
					err.Add(prefix + ": " + perr.Error())
				}
			}
		}

		if rc.Equation == "" {
			err.Add(prefix + ": equation is required")
		}
		if rc.Priority < 0 {
			err.Add(prefix + ": priority must not be negative")
		}
	}

	// Cascade references must resolve, and chains must terminate within
	// the depth cap. Both are config errors the sequencer would otherwise
	// hit at runtime.
	for _, rc := range cfg.Rules {
		if rc.CascadesInto == "" {
			continue
		}
		if !ruleIDs[rc.CascadesInto] {
			err.Add("rule '" + rc.ID + "': cascades_into references unknown rule '" + rc.CascadesInto + "'")
		}
	}
	validateCascadeChains(cfg.Rules, err)

	if err.HasIssues() {
		return err
	}
	return nil
}

// validateCascadeChains walks every cascade chain and reports cycles
// and chains longer than MaxCascadeDepth.
func validateCascadeChains(rules []RuleConfig, err *ValidationError) {
	next := make(map[string]string, len(rules))
	for _, rc := range rules {
		if rc.ID != "" && rc.CascadesInto != "" {
			next[rc.ID] = rc.CascadesInto
		}
	}

	for _, rc := range rules {
		seen := map[string]bool{}
		depth := 0
		for id := rc.ID; id != ""; id = next[id] {
			if seen[id] {
				err.Add("rule '" + rc.ID + "': cascades_into chain forms a cycle through '" + id + "'")
				break
			}
			seen[id] = true
			depth++
			if depth > MaxCascadeDepth {
				err.Add(fmt.Sprintf("rule '%s': cascades_into chain exceeds maximum depth %d", rc.ID, MaxCascadeDepth))
				break
			}
		}
	}
}
