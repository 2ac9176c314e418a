package chemlab

// Matcher finds the best reaction rule for a set of vessel ingredients
// under the current environmental conditions. It is a pure function of
// its inputs: no hidden state, no I/O.
type Matcher struct {
	catalog Catalog
	rules   *RuleSet
}

// NewMatcher creates a matcher over the given catalog and rule table.
func NewMatcher(catalog Catalog, rules *RuleSet) *Matcher {
	return &Matcher{catalog: catalog, rules: rules}
}

// Resolve looks up every ingredient name in the catalog. Unknown names
// are not an error: they resolve to CategoryUnknown and still count for
// mixture classification. Input order (= drop order) is preserved.
func (m *Matcher) Resolve(ingredients []string) []ResolvedIngredient {
	resolved := make([]ResolvedIngredient, 0, len(ingredients))
	for _, name := range ingredients {
		normalized := NormalizeName(name)
		ri := ResolvedIngredient{Name: normalized, Category: CategoryUnknown}
		if rec, ok := m.catalog.Lookup(normalized); ok {
			ri.Record = rec
			ri.Category = rec.Category
			ri.Known = true
		}
		resolved = append(resolved, ri)
	}
	return resolved
}

// Match resolves the ingredients and selects the winning rule, if any.
// Selection is deterministic: highest priority wins, then the rule with
// more distinct role matchers, then the first-declared rule.
func (m *Matcher) Match(ingredients []string, temp Temperature, conc Concentration) MatchOutcome {
	resolved := m.Resolve(ingredients)

	outcome := MatchOutcome{
		Ingredients:   resolved,
		Temperature:   temp,
		Concentration: conc,
		LiquidColor:   m.fallbackColor(resolved),
	}

	var winner *ReactionRule
	for _, rule := range m.rules.Candidates(resolved) {
		if !rule.Condition.Matches(temp, conc) {
			continue
		}
		if !satisfies(rule, resolved) {
			continue
		}
		if winner == nil || betterMatch(rule, winner) {
			winner = rule
		}
	}

	if winner != nil {
		outcome.Rule = winner
		if winner.LiquidColor != "" {
			outcome.LiquidColor = winner.LiquidColor
		}
	}
	return outcome
}

// betterMatch reports whether candidate should replace current.
// Precedence: priority weight, then matcher count, then exact-name
// matcher count (a name pair beats a role pair of the same arity),
// then declaration order (first-declared wins).
func betterMatch(candidate, current *ReactionRule) bool {
	if candidate.Priority != current.Priority {
		return candidate.Priority > current.Priority
	}
	if candidate.Specificity() != current.Specificity() {
		return candidate.Specificity() > current.Specificity()
	}
	if exactNames(candidate) != exactNames(current) {
		return exactNames(candidate) > exactNames(current)
	}
	return candidate.order < current.order
}

func exactNames(r *ReactionRule) int {
	n := 0
	for _, m := range r.Reactants {
		if m.Name != "" {
			n++
		}
	}
	return n
}

// satisfies reports whether each of the rule's matchers can consume a
// distinct ingredient. Duplicated names in the vessel may satisfy
// duplicated matchers, since each occupies its own slot.
func satisfies(rule *ReactionRule, ingredients []ResolvedIngredient) bool {
	used := make([]bool, len(ingredients))
	return assign(rule.Reactants, ingredients, used)
}

// assign backtracks over matcher-to-ingredient assignments. Rule arity
// is tiny (two or three matchers), so exhaustive search is cheap.
func assign(matchers []Reactant, ingredients []ResolvedIngredient, used []bool) bool {
	if len(matchers) == 0 {
		return true
	}
	matcher := matchers[0]
	for i, ing := range ingredients {
		if used[i] || !matcher.Matches(ing) {
			continue
		}
		used[i] = true
		if assign(matchers[1:], ingredients, used) {
			return true
		}
		used[i] = false
	}
	return false
}

// fallbackColor picks the most recently added known chemical's catalog
// color, used when the winning rule declares no tint of its own.
func (m *Matcher) fallbackColor(resolved []ResolvedIngredient) string {
	for i := len(resolved) - 1; i >= 0; i-- {
		if resolved[i].Known && resolved[i].Record.Color != "" {
			return resolved[i].Record.Color
		}
	}
	return DefaultLiquidColor
}
