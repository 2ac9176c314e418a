package chemlab

// Sentinel defaults used by the formatter so that every field of a
// ReactionResult is present-but-defaulted, never absent.
const (
	NeutralPH            = 7.0
	ReactionTypeMixture  = "mixture"
	DefaultLiquidColor   = "#FFFFFF33"
	DefaultInitialColor  = "#FFFFFF22"
	DefaultParticleColor = "#FFFFFF"
)

// Phase is one step of a cascade's ordered playback. Consumers apply
// phases strictly in order; phase order is part of the contract.
type Phase struct {
	Equation      string            `json:"equation"`
	Symptoms      []string          `json:"symptoms"`
	Triggers      AnimationTriggers `json:"animation_triggers"`
	LiquidColor   string            `json:"liquidColor"`
	ParticleType  string            `json:"particleType"`
	ParticleColor string            `json:"particleColor,omitempty"`
}

// ReactionResult is the externally consumed prediction payload, shaped
// for the beaker renderer and the explanation generator.
//
// Explanation, SafetyTips, Concept and RealWorldExample are filled by an
// external text generator after prediction; the core leaves them empty.
type ReactionResult struct {
	Equation      string            `json:"equation"`
	Products      []string          `json:"products"`
	PH            float64           `json:"ph"`
	Symptoms      []string          `json:"symptoms"`
	ReactionType  string            `json:"reaction_type"`
	Triggers      AnimationTriggers `json:"animation_triggers"`
	LiquidColor   string            `json:"liquidColor"`
	ParticleType  string            `json:"particleType"`
	ParticleColor string            `json:"particleColor"`

	// VisualSteps holds the ordered phase sequence. Length > 1 means a
	// cascade; VisualSteps[0] always mirrors the top-level fields.
	VisualSteps []Phase `json:"visual_steps"`

	Explanation      string `json:"explanation"`
	SafetyTips       string `json:"safety_tips"`
	Concept          string `json:"concept"`
	RealWorldExample string `json:"real_world_example"`

	// RuleID identifies the matched rule for event consumers. It is not
	// part of the API response body; mixtures leave it empty.
	RuleID string `json:"-"`
}

// ResolvedIngredient is an input name after catalog resolution.
type ResolvedIngredient struct {
	Name     string // normalized
	Category Category
	Record   ChemicalRecord
	Known    bool
}

// MatchOutcome carries the matcher's decision into the sequencer and
// formatter. Rule is nil when no rule matched.
type MatchOutcome struct {
	Rule          *ReactionRule
	Ingredients   []ResolvedIngredient
	Temperature   Temperature
	Concentration Concentration

	// LiquidColor is the resolved tint: the winning rule's override, or
	// the most recently added known chemical's catalog color.
	LiquidColor string
}
