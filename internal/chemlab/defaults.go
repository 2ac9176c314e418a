package chemlab

// Builtin rule table: the known reactions shipped with the simulator.
// Exact-name rules carry priority 10 so they always beat the generic
// role-based rules (priority 1) when both match.

const (
	priorityExact   = 10
	priorityGeneric = 1
)

// DefaultInitialColors are the tints chemicals show when first added to
// water, keyed by catalog name.
func DefaultInitialColors() map[string]string {
	return map[string]string{
		"potassium permanganate": "#800080AA",
		"copper sulfate":         "#0000FFAA",
		"iron(iii) chloride":     "#DAA520AA",
		"cobalt(ii) chloride":    "#FF1493AA",
		"nickel(ii) sulfate":     "#00FF00AA",
		"potassium dichromate":   "#FF8C00AA",
		"methyl orange":          "#FFA500AA",
		"bromothymol blue":       "#0064FFAA",
		"red cabbage extract":    "#4B0082AA",
		"iodine":                 "#8B4513AA",
	}
}

// DefaultRules returns the builtin reaction table as an immutable rule set.
func DefaultRules() *RuleSet {
	rules := []*ReactionRule{
		{
			ID:           "hcl-naoh-neutralization",
			Reactants:    []Reactant{{Name: "hydrochloric acid"}, {Name: "sodium hydroxide"}},
			Equation:     "HCl(aq) + NaOH(aq) → NaCl(aq) + H₂O(l)",
			Products:     []string{"NaCl", "H2O"},
			PH:           7,
			PHChange:     "neutralizes",
			Symptoms:     []string{"no_visible_change", "heat_released"},
			ReactionType: "neutralization",
			Triggers: AnimationTriggers{
				Heat:        true,
				ColorChange: "#FFFFFF22",
			},
			LiquidColor:  "#FFFFFF22",
			ParticleType: ParticleNone,
			Priority:     priorityExact,
		},
		{
			ID:           "acetic-acid-bicarbonate",
			Reactants:    []Reactant{{Name: "acetic acid"}, {Name: "sodium bicarbonate"}},
			Equation:     "CH₃COOH(aq) + NaHCO₃(s) → CH₃COONa(aq) + H₂O(l) + CO₂(g)",
			Products:     []string{"CH3COONa", "H2O", "CO2"},
			PH:           8.5,
			PHChange:     "increases",
			Symptoms:     []string{"rapid_bubbling", "gas_evolution"},
			ReactionType: "acid_carbonate",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				ColorChange: "#FFFFFF44",
			},
			LiquidColor:   "#FFFFFF44",
			ParticleType:  ParticleBubble,
			ParticleColor: "#FFFFFF",
			Priority:      priorityExact,
		},
		{
			ID:           "permanganate-naoh-redox",
			Reactants:    []Reactant{{Name: "potassium permanganate"}, {Name: "sodium hydroxide"}},
			Equation:     "2KMnO₄(aq) + 2NaOH(aq) → K₂MnO₄(aq) + Na₂MnO₄(aq) + H₂O(l) + O₂(g)",
			Products:     []string{"potassium manganate", "sodium manganate", "oxygen", "water"},
			PH:           13,
			PHChange:     "basic",
			Symptoms:     []string{"purple_to_green_change"},
			ReactionType: "redox",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				ColorChange: "#228B22AA",
			},
			LiquidColor:   "#228B22AA",
			ParticleType:  ParticleBubble,
			ParticleColor: "#FFFFFF",
			Priority:      priorityExact,
		},
		{
			ID:           "copper-sulfate-iron",
			Reactants:    []Reactant{{Name: "copper sulfate"}, {Name: "iron"}},
			Equation:     "Fe(s) + CuSO₄(aq) → FeSO₄(aq) + Cu(s)",
			Products:     []string{"iron sulfate", "copper"},
			PH:           5.5,
			Symptoms:     []string{"blue_color_fading", "reddish_brown_solid_forming"},
			ReactionType: "single_displacement",
			Triggers: AnimationTriggers{
				Precipitate: true,
				ColorChange: "#90EE9077",
			},
			LiquidColor:   "#90EE9077",
			ParticleType:  ParticlePrecipitate,
			ParticleColor: "#B87333",
			Priority:      priorityExact,
		},
		{
			ID:           "hcl-zinc",
			Reactants:    []Reactant{{Name: "hydrochloric acid"}, {Name: "zinc"}},
			Equation:     "Zn(s) + 2HCl(aq) → ZnCl₂(aq) + H₂(g)",
			Products:     []string{"zinc chloride", "hydrogen"},
			PH:           4,
			Symptoms:     []string{"vigorous_bubbling", "zinc_dissolving"},
			ReactionType: "single_displacement",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				Heat:        true,
				ColorChange: "#FFFFFF22",
			},
			LiquidColor:   "#FFFFFF22",
			ParticleType:  ParticleBubble,
			ParticleColor: "#FFFFFF",
			Priority:      priorityExact,
		},
		{
			ID:           "copper-sulfate-naoh-precipitation",
			Reactants:    []Reactant{{Name: "copper sulfate"}, {Name: "sodium hydroxide"}},
			Equation:     "CuSO₄(aq) + 2NaOH(aq) → Cu(OH)₂(s) + Na₂SO₄(aq)",
			Products:     []string{"copper hydroxide", "sodium sulfate"},
			PH:           11,
			PHChange:     "increases",
			Symptoms:     []string{"blue_precipitate"},
			ReactionType: "precipitation",
			Triggers: AnimationTriggers{
				Precipitate: true,
				ColorChange: "#0064FFAA",
			},
			LiquidColor:   "#0064FFAA",
			ParticleType:  ParticlePrecipitate,
			ParticleColor: "#00BFFF",
			Priority:      priorityExact,
		},
		{
			ID:           "lead-nitrate-potassium-iodide",
			Reactants:    []Reactant{{Name: "lead nitrate"}, {Name: "potassium iodide"}},
			Equation:     "Pb(NO₃)₂(aq) + 2KI(aq) → PbI₂(s) + 2KNO₃(aq)",
			Products:     []string{"lead iodide", "potassium nitrate"},
			PH:           7,
			PHChange:     "neutral",
			Symptoms:     []string{"yellow_precipitate"},
			ReactionType: "precipitation",
			Triggers: AnimationTriggers{
				Precipitate: true,
				ColorChange: "#FFD700AA",
			},
			LiquidColor:   "#FFD700AA",
			ParticleType:  ParticlePrecipitate,
			ParticleColor: "#FFD700",
			Priority:      priorityExact,
		},
		{
			// Copper only dissolves in hot concentrated sulfuric acid;
			// under any other condition the pair falls through to the
			// physical-mixture default.
			ID:           "copper-sulfuric-hot-concentrated",
			Reactants:    []Reactant{{Name: "copper"}, {Name: "sulfuric acid"}},
			Condition:    Condition{Temperature: TemperatureHot, Concentration: ConcentrationConcentrated},
			Equation:     "Cu(s) + 2H₂SO₄(conc) → CuSO₄(aq) + SO₂(g) + 2H₂O(l)",
			Products:     []string{"copper sulfate", "sulfur dioxide", "water"},
			PH:           1,
			Symptoms:     []string{"blue_color_evolution", "vigorous_bubbling", "gas_evolution"},
			ReactionType: "redox",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				Heat:        true,
				GasSmoke:    true,
				ColorChange: "#0000FFAA",
			},
			LiquidColor:   "#0000FFAA",
			ParticleType:  ParticleSmoke,
			ParticleColor: "#E0E0E0",
			Priority:      priorityExact,
		},
		{
			ID:           "phenolphthalein-naoh",
			Reactants:    []Reactant{{Name: "phenolphthalein"}, {Name: "sodium hydroxide"}},
			Equation:     "Phenolphthalein(aq) + NaOH(aq) → Pink Complex(aq)",
			Products:     []string{"pink complex"},
			PH:           10,
			PHChange:     "basic",
			Symptoms:     []string{"vivid_pink_color"},
			ReactionType: "indicator",
			Triggers: AnimationTriggers{
				ColorChange: "#FF1493AA",
			},
			LiquidColor:  "#FF1493AA",
			ParticleType: ParticleNone,
			Priority:     priorityExact,
		},
		{
			ID:           "sodium-water",
			Reactants:    []Reactant{{Name: "sodium"}, {Name: "water"}},
			Condition:    Condition{Concentration: ConcentrationDilute},
			Equation:     "2Na(s) + 2H₂O(l) → 2NaOH(aq) + H₂(g)",
			Products:     []string{"sodium hydroxide", "hydrogen"},
			PH:           14,
			Symptoms:     []string{"vigorous_reaction", "hydrogen_bubbles", "exothermic"},
			ReactionType: "single_displacement",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				Heat:        true,
				ColorChange: "#FFFFFF22",
			},
			LiquidColor:   "#FFFFFF22",
			ParticleType:  ParticleBubble,
			ParticleColor: "#FFFFFF",
			Priority:      priorityExact,
			CascadesInto:  "hydrogen-ignition",
		},
		{
			ID:           "sodium-water-concentrated",
			Reactants:    []Reactant{{Name: "sodium"}, {Name: "water"}},
			Condition:    Condition{Concentration: ConcentrationConcentrated},
			Equation:     "2Na(s) + 2H₂O(l) → 2NaOH(aq) + H₂(g)",
			Products:     []string{"sodium hydroxide", "hydrogen"},
			PH:           14,
			Symptoms:     []string{"violent_reaction", "hydrogen_bubbles", "exothermic"},
			ReactionType: "single_displacement",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				Heat:        true,
				ColorChange: "#FFFFFF22",
			},
			LiquidColor:   "#FFFFFF22",
			ParticleType:  ParticleBubble,
			ParticleColor: "#FFFFFF",
			Priority:      priorityExact,
			CascadesInto:  "hydrogen-ignition",
		},
		{
			// Secondary phase of the alkali-metal/water cascade: the
			// reaction heat ignites the evolved hydrogen. Also matches
			// directly when both gases are in the vessel.
			ID:           "hydrogen-ignition",
			Reactants:    []Reactant{{Name: "hydrogen"}, {Name: "oxygen"}},
			Equation:     "2H₂(g) + O₂(g) → 2H₂O(l)",
			Products:     []string{"water"},
			PH:           7,
			Symptoms:     []string{"flame_flash", "popping_sound"},
			ReactionType: "combustion",
			Triggers: AnimationTriggers{
				Heat:     true,
				GasSmoke: true,
			},
			LiquidColor:   "#FFFFFF22",
			ParticleType:  ParticleSmoke,
			ParticleColor: "#FFA500",
			Priority:      priorityExact,
		},
		{
			ID:           "sodium-nitric-dilute",
			Reactants:    []Reactant{{Name: "sodium"}, {Name: "nitric acid"}},
			Condition:    Condition{Concentration: ConcentrationDilute},
			Equation:     "8Na + 30HNO₃(dilute) → 8NaNO₃ + 3NH₄NO₃ + 9H₂O",
			Products:     []string{"sodium nitrate", "ammonium nitrate", "water"},
			PH:           4,
			Symptoms:     []string{"vigorous_reaction", "brown_fumes", "heat_released"},
			ReactionType: "redox",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				Heat:        true,
				GasSmoke:    true,
				ColorChange: "#FFD700AA",
			},
			LiquidColor:   "#FFD700AA",
			ParticleType:  ParticleSmoke,
			ParticleColor: "#8B4513",
			Priority:      priorityExact,
		},
		{
			ID:           "sodium-nitric-concentrated",
			Reactants:    []Reactant{{Name: "sodium"}, {Name: "nitric acid"}},
			Condition:    Condition{Temperature: TemperatureRoom, Concentration: ConcentrationConcentrated},
			Equation:     "Na + HNO₃(conc) → NaNO₃ + NO₂(g) + H₂O",
			Products:     []string{"sodium nitrate", "nitrogen dioxide", "water"},
			PH:           2,
			Symptoms:     []string{"vigorous_reaction", "brown_red_gas", "exothermic"},
			ReactionType: "redox",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				Heat:        true,
				GasSmoke:    true,
				ColorChange: "#8B4513AA",
			},
			LiquidColor:   "#8B4513AA",
			ParticleType:  ParticleSmoke,
			ParticleColor: "#8B4513",
			Priority:      priorityExact,
		},
		{
			ID:           "sodium-nitric-hot-concentrated",
			Reactants:    []Reactant{{Name: "sodium"}, {Name: "nitric acid"}},
			Condition:    Condition{Temperature: TemperatureHot, Concentration: ConcentrationConcentrated},
			Equation:     "Na + HNO₃(conc) → NaNO₃ + NO₂(g) + H₂O",
			Products:     []string{"sodium nitrate", "nitrogen dioxide", "water"},
			PH:           1,
			Symptoms:     []string{"violent_reaction", "brown_red_dense_gas"},
			ReactionType: "redox",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				Heat:        true,
				GasSmoke:    true,
				ColorChange: "#654321AA",
			},
			LiquidColor:   "#654321AA",
			ParticleType:  ParticleSmoke,
			ParticleColor: "#8B4513",
			Priority:      priorityExact,
		},
		{
			ID:           "magnesium-hcl",
			Reactants:    []Reactant{{Name: "magnesium"}, {Name: "hydrochloric acid"}},
			Equation:     "Mg(s) + 2HCl(aq) → MgCl₂(aq) + H₂(g)",
			Products:     []string{"magnesium chloride", "hydrogen"},
			PH:           3,
			Symptoms:     []string{"vigorous_bubbling", "magnesium_dissolving", "gas_evolution"},
			ReactionType: "single_displacement",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				Heat:        true,
				ColorChange: "#FFFFFF22",
			},
			LiquidColor:   "#FFFFFF22",
			ParticleType:  ParticleBubble,
			ParticleColor: "#FFFFFF",
			Priority:      priorityExact,
		},
		{
			ID:           "calcium-carbonate-hcl",
			Reactants:    []Reactant{{Name: "calcium carbonate"}, {Name: "hydrochloric acid"}},
			Equation:     "CaCO₃(s) + 2HCl(aq) → CaCl₂(aq) + H₂O(l) + CO₂(g)",
			Products:     []string{"calcium chloride", "water", "carbon dioxide"},
			PH:           5,
			Symptoms:     []string{"vigorous_bubbling", "effervescence", "gas_evolution"},
			ReactionType: "acid_carbonate",
			Triggers: AnimationTriggers{
				Bubbles:     true,
				ColorChange: "#FFFFFF22",
			},
			LiquidColor:   "#FFFFFF22",
			ParticleType:  ParticleBubble,
			ParticleColor: "#FFFFFF",
			Priority:      priorityExact,
		},
		{
			// Catch-all role rule: any acid with any base neutralizes.
			// Low priority, so every exact-name rule above wins first.
			ID:           "generic-neutralization",
			Reactants:    []Reactant{{Category: CategoryAcid}, {Category: CategoryBase}},
			Equation:     "Acid(aq) + Base(aq) → Salt(aq) + H₂O(l)",
			Products:     []string{"salt", "water"},
			PH:           7,
			PHChange:     "neutralizes",
			Symptoms:     []string{"heat_released"},
			ReactionType: "neutralization",
			Triggers: AnimationTriggers{
				Heat:        true,
				ColorChange: "#FFFFFF22",
			},
			LiquidColor:  "#FFFFFF22",
			ParticleType: ParticleNone,
			Priority:     priorityGeneric,
		},
	}

	return NewRuleSet(rules, DefaultInitialColors())
}
