package chemlab

import "testing"

func TestResolvePreservesOrderAndFlags(t *testing.T) {
	m := NewMatcher(testCatalog(), DefaultRules())

	resolved := m.Resolve([]string{"  Sodium Hydroxide ", "glitter", "water"})
	if len(resolved) != 3 {
		t.Fatalf("expected 3 resolved ingredients, got %d", len(resolved))
	}

	if resolved[0].Name != "sodium hydroxide" || !resolved[0].Known || resolved[0].Category != CategoryBase {
		t.Errorf("unexpected resolution for sodium hydroxide: %+v", resolved[0])
	}
	if resolved[1].Name != "glitter" || resolved[1].Known || resolved[1].Category != CategoryUnknown {
		t.Errorf("unknown ingredient should resolve to unknown category: %+v", resolved[1])
	}
	if resolved[2].Name != "water" || resolved[2].Category != CategoryLiquid {
		t.Errorf("unexpected resolution for water: %+v", resolved[2])
	}
}

func TestMatchSelectsExactRule(t *testing.T) {
	m := NewMatcher(testCatalog(), DefaultRules())

	outcome := m.Match([]string{"hydrochloric acid", "sodium hydroxide"}, TemperatureRoom, ConcentrationDilute)
	if outcome.Rule == nil {
		t.Fatal("expected a match")
	}
	if outcome.Rule.ID != "hcl-naoh-neutralization" {
		t.Errorf("expected hcl-naoh-neutralization, got %s", outcome.Rule.ID)
	}
}

func TestMatchExtraIngredientsStillMatch(t *testing.T) {
	m := NewMatcher(testCatalog(), DefaultRules())

	// Matchers consume a subset of the vessel; extras are ignored.
	outcome := m.Match([]string{"water", "zinc", "hydrochloric acid"}, TemperatureRoom, ConcentrationDilute)
	if outcome.Rule == nil || outcome.Rule.ID != "hcl-zinc" {
		t.Fatalf("expected hcl-zinc, got %+v", outcome.Rule)
	}
}

func TestMatchNoRule(t *testing.T) {
	m := NewMatcher(testCatalog(), DefaultRules())

	outcome := m.Match([]string{"water", "zinc"}, TemperatureRoom, ConcentrationDilute)
	if outcome.Rule != nil {
		t.Errorf("expected no match, got %s", outcome.Rule.ID)
	}
	if outcome.LiquidColor != DefaultLiquidColor {
		t.Errorf("expected default liquid color, got %s", outcome.LiquidColor)
	}
}

func TestMatchConditionFilters(t *testing.T) {
	m := NewMatcher(testCatalog(), DefaultRules())

	if outcome := m.Match([]string{"copper", "sulfuric acid"}, TemperatureRoom, ConcentrationDilute); outcome.Rule != nil {
		t.Errorf("room/dilute should not match, got %s", outcome.Rule.ID)
	}
	outcome := m.Match([]string{"copper", "sulfuric acid"}, TemperatureHot, ConcentrationConcentrated)
	if outcome.Rule == nil || outcome.Rule.ID != "copper-sulfuric-hot-concentrated" {
		t.Fatalf("expected copper-sulfuric-hot-concentrated, got %+v", outcome.Rule)
	}
}

// Each matcher must consume a distinct ingredient: a rule wanting two
// acids is not satisfied by a single acid.
func TestMatchDistinctConsumption(t *testing.T) {
	rules := NewRuleSet([]*ReactionRule{
		{
			ID:        "acid-pair",
			Reactants: []Reactant{{Category: CategoryAcid}, {Category: CategoryAcid}},
			Equation:  "acid pair",
		},
	}, nil)
	m := NewMatcher(testCatalog(), rules)

	if outcome := m.Match([]string{"nitric acid"}, TemperatureRoom, ConcentrationDilute); outcome.Rule != nil {
		t.Error("one acid must not satisfy two acid matchers")
	}
	if outcome := m.Match([]string{"nitric acid", "acetic acid"}, TemperatureRoom, ConcentrationDilute); outcome.Rule == nil {
		t.Error("two acids should satisfy two acid matchers")
	}
	// The same name twice occupies two slots.
	if outcome := m.Match([]string{"nitric acid", "nitric acid"}, TemperatureRoom, ConcentrationDilute); outcome.Rule == nil {
		t.Error("a duplicated ingredient should satisfy duplicated matchers")
	}
}

func TestMatchUnknownNeverSatisfiesCategory(t *testing.T) {
	rules := NewRuleSet([]*ReactionRule{
		{
			ID:        "any-acid",
			Reactants: []Reactant{{Category: CategoryAcid}},
			Equation:  "any acid",
		},
	}, nil)
	m := NewMatcher(testCatalog(), rules)

	if outcome := m.Match([]string{"mystery goo"}, TemperatureRoom, ConcentrationDilute); outcome.Rule != nil {
		t.Error("an unknown ingredient must not satisfy a category matcher")
	}
}

func TestMatchPriorityWins(t *testing.T) {
	rules := NewRuleSet([]*ReactionRule{
		{
			ID:        "low",
			Reactants: []Reactant{{Name: "water"}},
			Equation:  "low",
			Priority:  1,
		},
		{
			ID:        "high",
			Reactants: []Reactant{{Name: "water"}},
			Equation:  "high",
			Priority:  5,
		},
	}, nil)
	m := NewMatcher(testCatalog(), rules)

	outcome := m.Match([]string{"water"}, TemperatureRoom, ConcentrationDilute)
	if outcome.Rule == nil || outcome.Rule.ID != "high" {
		t.Fatalf("expected the higher-priority rule, got %+v", outcome.Rule)
	}
}

func TestMatchSpecificityBreaksTies(t *testing.T) {
	rules := NewRuleSet([]*ReactionRule{
		{
			ID:        "single",
			Reactants: []Reactant{{Name: "water"}},
			Equation:  "single",
		},
		{
			ID:        "pair",
			Reactants: []Reactant{{Name: "water"}, {Name: "sodium"}},
			Equation:  "pair",
		},
	}, nil)
	m := NewMatcher(testCatalog(), rules)

	outcome := m.Match([]string{"water", "sodium"}, TemperatureRoom, ConcentrationDilute)
	if outcome.Rule == nil || outcome.Rule.ID != "pair" {
		t.Fatalf("expected the two-matcher rule, got %+v", outcome.Rule)
	}
}

// At equal priority and arity, a name pair beats a role pair even when
// declared later.
func TestMatchExactNamesBreakTies(t *testing.T) {
	rules := NewRuleSet([]*ReactionRule{
		{
			ID:        "roles",
			Reactants: []Reactant{{Category: CategoryAcid}, {Category: CategoryBase}},
			Equation:  "roles",
		},
		{
			ID:        "names",
			Reactants: []Reactant{{Name: "nitric acid"}, {Name: "potassium hydroxide"}},
			Equation:  "names",
		},
	}, nil)
	m := NewMatcher(testCatalog(), rules)

	outcome := m.Match([]string{"nitric acid", "potassium hydroxide"}, TemperatureRoom, ConcentrationDilute)
	if outcome.Rule == nil || outcome.Rule.ID != "names" {
		t.Fatalf("expected the exact-name rule, got %+v", outcome.Rule)
	}
}

func TestMatchFirstDeclaredBreaksFinalTie(t *testing.T) {
	rules := NewRuleSet([]*ReactionRule{
		{
			ID:        "first",
			Reactants: []Reactant{{Name: "water"}},
			Equation:  "first",
		},
		{
			ID:        "second",
			Reactants: []Reactant{{Name: "water"}},
			Equation:  "second",
		},
	}, nil)
	m := NewMatcher(testCatalog(), rules)

	outcome := m.Match([]string{"water"}, TemperatureRoom, ConcentrationDilute)
	if outcome.Rule == nil || outcome.Rule.ID != "first" {
		t.Fatalf("expected the first-declared rule, got %+v", outcome.Rule)
	}
}

func TestMatchRuleColorOverridesFallback(t *testing.T) {
	m := NewMatcher(testCatalog(), DefaultRules())

	outcome := m.Match([]string{"copper sulfate", "sodium hydroxide"}, TemperatureRoom, ConcentrationDilute)
	if outcome.Rule == nil {
		t.Fatal("expected a match")
	}
	if outcome.LiquidColor != outcome.Rule.LiquidColor {
		t.Errorf("expected the rule's color %s, got %s", outcome.Rule.LiquidColor, outcome.LiquidColor)
	}
}
