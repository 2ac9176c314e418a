package chemlab

import "strings"

// Format merges a match outcome and its phase sequence into the external
// result shape. Every optional field comes out present-but-defaulted:
// symptoms are an empty list (never nil), pH is the neutral sentinel,
// the reaction type defaults to "mixture". When a cascade exists, the
// top-level fields mirror VisualSteps[0] so a consumer reading only the
// top level still sees a coherent single-reaction view.
func Format(outcome MatchOutcome, phases []Phase) ReactionResult {
	if outcome.Rule == nil || len(phases) == 0 {
		return mixtureResult(outcome)
	}

	rule := outcome.Rule
	first := phases[0]

	products := rule.Products
	if products == nil {
		products = []string{}
	}

	result := ReactionResult{
		RuleID:        rule.ID,
		Equation:      first.Equation,
		Products:      products,
		PH:            rule.PH,
		Symptoms:      first.Symptoms,
		ReactionType:  rule.ReactionType,
		Triggers:      first.Triggers,
		LiquidColor:   first.LiquidColor,
		ParticleType:  first.ParticleType,
		ParticleColor: first.ParticleColor,
		VisualSteps:   phases,
	}
	if result.ReactionType == "" {
		result.ReactionType = ReactionTypeMixture
	}
	if result.ParticleColor == "" {
		result.ParticleColor = DefaultParticleColor
	}
	// Auto-select the particle effect from triggers when the rule did
	// not declare one.
	if result.ParticleType == ParticleNone {
		if result.Triggers.Bubbles {
			result.ParticleType = ParticleBubble
		} else if result.Triggers.Precipitate {
			result.ParticleType = ParticlePrecipitate
		}
	}
	// Phase 0 mirrors the top-level view, including the defaults
	// applied above.
	result.VisualSteps[0].ParticleType = result.ParticleType
	if result.VisualSteps[0].ParticleColor == "" {
		result.VisualSteps[0].ParticleColor = result.ParticleColor
	}
	return result
}

// mixtureResult is the canonical "no reaction / physical mixture"
// payload: well-formed, fully defaulted, no animation triggers.
func mixtureResult(outcome MatchOutcome) ReactionResult {
	names := make([]string, 0, len(outcome.Ingredients))
	for _, ing := range outcome.Ingredients {
		names = append(names, ing.Name)
	}

	color := outcome.LiquidColor
	if color == "" {
		color = DefaultLiquidColor
	}

	return ReactionResult{
		Equation:      "Mixture of " + strings.Join(names, ", "),
		Products:      names,
		PH:            NeutralPH,
		Symptoms:      []string{},
		ReactionType:  ReactionTypeMixture,
		Triggers:      AnimationTriggers{},
		LiquidColor:   color,
		ParticleType:  ParticleNone,
		ParticleColor: DefaultParticleColor,
		VisualSteps:   []Phase{},
	}
}
