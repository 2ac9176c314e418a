package chemlab

import "fmt"

// Engine composes the matcher, sequencer and formatter into the single
// prediction operation exposed to callers. It is pure and blocking-free:
// the catalog and rule table are read-only after construction, so one
// engine is safe for concurrent use across requests.
type Engine struct {
	catalog   Catalog
	rules     *RuleSet
	matcher   *Matcher
	sequencer *Sequencer
	logger    Logger
}

// NewEngine creates an engine over an immutable catalog and rule table.
func NewEngine(catalog Catalog, rules *RuleSet) *Engine {
	return &Engine{
		catalog:   catalog,
		rules:     rules,
		matcher:   NewMatcher(catalog, rules),
		sequencer: NewSequencer(rules),
		logger:    NewNoOpLogger(),
	}
}

// SetLogger injects a logger. The default is a no-op.
func (e *Engine) SetLogger(logger Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// Rules exposes the engine's rule table (for initial-color lookups).
func (e *Engine) Rules() *RuleSet {
	return e.rules
}

// Predict returns the reaction outcome for the accumulated vessel
// contents under the given conditions. Ingredients must be non-empty.
// The condition enums are normalized here through ParseTemperature and
// ParseConcentration, so empty values fall back to room and dilute and
// invalid values are rejected at the boundary.
//
// Unknown ingredients and unmatched rule tables are not errors: they
// produce the canonical mixture result. The only runtime errors are
// rule-table configuration faults surfaced by the sequencer.
func (e *Engine) Predict(ingredients []string, temp Temperature, conc Concentration) (ReactionResult, error) {
	if len(ingredients) == 0 {
		return ReactionResult{}, fmt.Errorf("no ingredients provided")
	}
	temp, err := ParseTemperature(string(temp))
	if err != nil {
		return ReactionResult{}, err
	}
	conc, err = ParseConcentration(string(conc))
	if err != nil {
		return ReactionResult{}, err
	}

	outcome := e.matcher.Match(ingredients, temp, conc)
	if outcome.Rule != nil {
		e.logger.Debugf("matched rule %s for %v (temp=%s conc=%s)", outcome.Rule.ID, ingredients, temp, conc)
	}

	phases, err := e.sequencer.Sequence(outcome)
	if err != nil {
		return ReactionResult{}, err
	}

	return Format(outcome, phases), nil
}

// InitialColor returns the tint a chemical shows when first dissolved.
func (e *Engine) InitialColor(name string) string {
	return e.rules.InitialColor(name)
}
