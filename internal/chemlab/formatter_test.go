package chemlab

import "testing"

func TestFormatDefaults(t *testing.T) {
	rule := &ReactionRule{
		ID:        "bare",
		Reactants: []Reactant{{Name: "water"}},
		Equation:  "bare",
	}
	outcome := MatchOutcome{Rule: rule, LiquidColor: DefaultLiquidColor}
	phases := []Phase{phaseFromRule(rule, outcome)}

	result := Format(outcome, phases)
	if result.ReactionType != ReactionTypeMixture {
		t.Errorf("missing reaction type should default to mixture, got %s", result.ReactionType)
	}
	if result.Products == nil {
		t.Error("products must be an empty list, not nil")
	}
	if result.Symptoms == nil {
		t.Error("symptoms must be an empty list, not nil")
	}
	if result.ParticleType != ParticleNone {
		t.Errorf("expected no particles, got %s", result.ParticleType)
	}
	if result.ParticleColor != DefaultParticleColor {
		t.Errorf("expected default particle color, got %s", result.ParticleColor)
	}
}

// When a rule declares a bubble or precipitate trigger but no particle
// type, the formatter picks the matching effect, in both the top-level
// view and phase 0.
func TestFormatAutoSelectsParticles(t *testing.T) {
	cases := []struct {
		triggers AnimationTriggers
		want     string
	}{
		{AnimationTriggers{Bubbles: true}, ParticleBubble},
		{AnimationTriggers{Precipitate: true}, ParticlePrecipitate},
		{AnimationTriggers{Bubbles: true, Precipitate: true}, ParticleBubble},
		{AnimationTriggers{Heat: true}, ParticleNone},
	}
	for _, tc := range cases {
		rule := &ReactionRule{
			ID:        "auto",
			Reactants: []Reactant{{Name: "water"}},
			Equation:  "auto",
			Triggers:  tc.triggers,
		}
		outcome := MatchOutcome{Rule: rule}
		result := Format(outcome, []Phase{phaseFromRule(rule, outcome)})

		if result.ParticleType != tc.want {
			t.Errorf("triggers %+v: expected %s, got %s", tc.triggers, tc.want, result.ParticleType)
		}
		if result.VisualSteps[0].ParticleType != tc.want {
			t.Errorf("triggers %+v: phase 0 expected %s, got %s", tc.triggers, tc.want, result.VisualSteps[0].ParticleType)
		}
	}
}

func TestFormatMixture(t *testing.T) {
	outcome := MatchOutcome{
		Ingredients: []ResolvedIngredient{
			{Name: "salt"},
			{Name: "sand"},
		},
	}

	result := Format(outcome, nil)
	if result.Equation != "Mixture of salt, sand" {
		t.Errorf("unexpected equation: %s", result.Equation)
	}
	if result.PH != NeutralPH {
		t.Errorf("expected neutral pH, got %v", result.PH)
	}
	if !result.Triggers.Empty() {
		t.Errorf("mixture must carry no triggers, got %+v", result.Triggers)
	}
	if result.LiquidColor != DefaultLiquidColor {
		t.Errorf("expected default liquid color, got %s", result.LiquidColor)
	}
	if result.VisualSteps == nil || len(result.VisualSteps) != 0 {
		t.Errorf("expected an empty visual step list, got %v", result.VisualSteps)
	}
}

func TestFormatMixtureKeepsFallbackColor(t *testing.T) {
	outcome := MatchOutcome{
		Ingredients: []ResolvedIngredient{{Name: "copper sulfate"}},
		LiquidColor: "#0000FFAA",
	}

	result := Format(outcome, nil)
	if result.LiquidColor != "#0000FFAA" {
		t.Errorf("expected the resolved fallback color, got %s", result.LiquidColor)
	}
}
