package chemlab

// RuleSet is the static reaction rule table, loaded once at process
// start and immutable afterwards. Rules are indexed by required name and
// category so the matcher can filter candidates cheaply.
type RuleSet struct {
	rules []*ReactionRule
	byID  map[string]*ReactionRule

	// candidate indexes: a rule appears under every name and category
	// its matchers require.
	byName     map[string][]*ReactionRule
	byCategory map[Category][]*ReactionRule

	// initialColors maps chemical names to the tint they show when
	// first dissolved in water, before any reaction.
	initialColors map[string]string
}

// NewRuleSet builds an indexed rule set. Declaration order is preserved
// and used as the final matching tie-break. The rules are assumed to
// already be validated (see ValidateRuleFileConfig / Validate).
func NewRuleSet(rules []*ReactionRule, initialColors map[string]string) *RuleSet {
	rs := &RuleSet{
		byID:          make(map[string]*ReactionRule, len(rules)),
		byName:        make(map[string][]*ReactionRule),
		byCategory:    make(map[Category][]*ReactionRule),
		initialColors: make(map[string]string, len(initialColors)),
	}

	for i, rule := range rules {
		rule.order = i
		rs.rules = append(rs.rules, rule)
		rs.byID[rule.ID] = rule
		for _, reactant := range rule.Reactants {
			if reactant.Name != "" {
				key := NormalizeName(reactant.Name)
				rs.byName[key] = append(rs.byName[key], rule)
			} else if reactant.Category != "" {
				rs.byCategory[reactant.Category] = append(rs.byCategory[reactant.Category], rule)
			}
		}
	}

	for name, color := range initialColors {
		rs.initialColors[NormalizeName(name)] = color
	}

	return rs
}

// Rules returns all rules in declaration order.
func (rs *RuleSet) Rules() []*ReactionRule {
	return rs.rules
}

// ByID retrieves a rule by its ID.
func (rs *RuleSet) ByID(id string) (*ReactionRule, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Candidates returns the rules whose matchers mention at least one of
// the given resolved ingredients, deduplicated, in declaration order.
// A rule not in this set cannot match, since every rule requires at
// least one reactant.
func (rs *RuleSet) Candidates(ingredients []ResolvedIngredient) []*ReactionRule {
	seen := make(map[string]bool)
	var out []*ReactionRule

	add := func(rules []*ReactionRule) {
		for _, r := range rules {
			if !seen[r.ID] {
				seen[r.ID] = true
				out = append(out, r)
			}
		}
	}

	for _, ing := range ingredients {
		add(rs.byName[ing.Name])
		if ing.Category != CategoryUnknown {
			add(rs.byCategory[ing.Category])
		}
	}

	// Declaration order keeps later tie-breaking deterministic.
	sortRulesByOrder(out)
	return out
}

// InitialColor returns the dissolution tint for a chemical, or the
// default transparent white when the chemical has no registered color.
func (rs *RuleSet) InitialColor(name string) string {
	if color, ok := rs.initialColors[NormalizeName(name)]; ok {
		return color
	}
	return DefaultInitialColor
}

func sortRulesByOrder(rules []*ReactionRule) {
	// insertion sort: candidate lists are small and mostly ordered
	for i := 1; i < len(rules); i++ {
		for j := i; j > 0 && rules[j-1].order > rules[j].order; j-- {
			rules[j-1], rules[j] = rules[j], rules[j-1]
		}
	}
}
