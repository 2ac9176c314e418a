package chemlab

import (
	"errors"
	"fmt"
)

// MaxCascadeDepth caps how many phases a cascade chain may produce.
// Reaching the cap means the rule table is misconfigured (most likely a
// cascades_into cycle) and is reported as an error, never as a result.
const MaxCascadeDepth = 10

// ErrCascadeDepth signals a cascade chain that exceeded MaxCascadeDepth.
var ErrCascadeDepth = errors.New("cascade exceeds maximum depth")

// Sequencer expands a match outcome into its ordered phase list by
// following cascades_into references.
type Sequencer struct {
	rules *RuleSet
}

// NewSequencer creates a sequencer over the given rule table.
func NewSequencer(rules *RuleSet) *Sequencer {
	return &Sequencer{rules: rules}
}

// Sequence returns the ordered phases for the outcome. The sequence is
// always non-empty for a matched outcome: the winning rule is phase 0.
// The chain stops when a rule has no cascade target or when the target's
// condition rejects the current environment; it errors when a target ID
// is unknown or the depth cap is hit.
func (s *Sequencer) Sequence(outcome MatchOutcome) ([]Phase, error) {
	if outcome.Rule == nil {
		return nil, nil
	}

	phases := make([]Phase, 0, 1)
	rule := outcome.Rule
	for {
		if len(phases) >= MaxCascadeDepth {
			return nil, fmt.Errorf("rule %q: %w", outcome.Rule.ID, ErrCascadeDepth)
		}
		phases = append(phases, phaseFromRule(rule, outcome))

		if rule.CascadesInto == "" {
			return phases, nil
		}
		next, ok := s.rules.ByID(rule.CascadesInto)
		if !ok {
			return nil, fmt.Errorf("rule %q cascades into unknown rule %q", rule.ID, rule.CascadesInto)
		}
		// Cascade steps may be condition-gated; an unsatisfied step
		// ends the chain rather than erroring.
		if !next.Condition.Matches(outcome.Temperature, outcome.Concentration) {
			return phases, nil
		}
		rule = next
	}
}

// phaseFromRule builds a phase payload from a rule's static data. The
// winning rule's resolved liquid color applies to phase 0; later phases
// carry their own declared override or inherit the resolved color.
func phaseFromRule(rule *ReactionRule, outcome MatchOutcome) Phase {
	color := rule.LiquidColor
	if color == "" {
		color = outcome.LiquidColor
	}
	particleType := rule.ParticleType
	if particleType == "" {
		particleType = ParticleNone
	}
	symptoms := rule.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	return Phase{
		Equation:      rule.Equation,
		Symptoms:      symptoms,
		Triggers:      rule.Triggers,
		LiquidColor:   color,
		ParticleType:  particleType,
		ParticleColor: rule.ParticleColor,
	}
}
