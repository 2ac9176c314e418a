package chemlab

// Reactant is a single role matcher of a reaction rule. Exactly one of
// Name or Category is set: a named matcher requires that exact chemical,
// a category matcher accepts any resolved chemical of that category.
type Reactant struct {
	Name     string
	Category Category
}

// Matches reports whether the matcher accepts the resolved ingredient.
// Unknown ingredients never satisfy a category matcher.
func (r Reactant) Matches(ing ResolvedIngredient) bool {
	if r.Name != "" {
		return NormalizeName(r.Name) == ing.Name
	}
	if r.Category != "" {
		return ing.Category == r.Category && ing.Category != CategoryUnknown
	}
	return false
}

// AnimationTriggers tells the renderer which beaker effects to play.
type AnimationTriggers struct {
	Bubbles     bool   `json:"bubbles" yaml:"bubbles"`
	Precipitate bool   `json:"precipitate" yaml:"precipitate"`
	Heat        bool   `json:"heat" yaml:"heat"`
	GasSmoke    bool   `json:"gas_smoke,omitempty" yaml:"gas_smoke,omitempty"`
	ColorChange string `json:"color_change,omitempty" yaml:"color_change,omitempty"`
}

// Empty reports whether no trigger is set.
func (t AnimationTriggers) Empty() bool {
	return t == AnimationTriggers{}
}

// Particle effect types understood by the renderer.
const (
	ParticleNone        = "none"
	ParticleBubble      = "bubble"
	ParticlePrecipitate = "precipitate"
	ParticleSmoke       = "smoke"
)

// ReactionRule is one entry of the static rule table. Rules are data:
// adding a reaction never touches the matcher.
type ReactionRule struct {
	ID        string
	Reactants []Reactant
	Condition Condition

	Equation      string
	Products      []string
	ReactionType  string
	PH            float64
	PHChange      string
	Symptoms      []string
	Triggers      AnimationTriggers
	LiquidColor   string
	ParticleType  string
	ParticleColor string

	// Priority breaks ties when several rules match; higher wins.
	Priority int

	// CascadesInto references the rule played as the next phase when
	// this rule fires, forming a multi-phase sequence.
	CascadesInto string

	// order is the declaration index inside the rule set, the final
	// deterministic tie-break.
	order int
}

// Specificity is the number of distinct role matchers the rule requires.
// More matchers means a more specific rule.
func (r *ReactionRule) Specificity() int {
	return len(r.Reactants)
}
