package chemlab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReactantConfig is the wire form of a role matcher. Exactly one of
// Name or Category must be set.
type ReactantConfig struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// ConditionConfig is the wire form of a rule's environment predicate.
// Empty fields mean "any".
type ConditionConfig struct {
	Temperature   string `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Concentration string `json:"concentration,omitempty" yaml:"concentration,omitempty"`
}

// RuleConfig is the wire form of one reaction rule.
type RuleConfig struct {
	ID            string            `json:"id" yaml:"id"`
	Reactants     []ReactantConfig  `json:"reactants" yaml:"reactants"`
	Condition     *ConditionConfig  `json:"condition,omitempty" yaml:"condition,omitempty"`
	Equation      string            `json:"equation" yaml:"equation"`
	Products      []string          `json:"products,omitempty" yaml:"products,omitempty"`
	ReactionType  string            `json:"reaction_type" yaml:"reaction_type"`
	PH            *float64          `json:"ph,omitempty" yaml:"ph,omitempty"`
	PHChange      string            `json:"ph_change,omitempty" yaml:"ph_change,omitempty"`
	Symptoms      []string          `json:"symptoms,omitempty" yaml:"symptoms,omitempty"`
	Triggers      AnimationTriggers `json:"animation_triggers,omitempty" yaml:"animation_triggers,omitempty"`
	LiquidColor   string            `json:"liquid_color,omitempty" yaml:"liquid_color,omitempty"`
	ParticleType  string            `json:"particle_type,omitempty" yaml:"particle_type,omitempty"`
	ParticleColor string            `json:"particle_color,omitempty" yaml:"particle_color,omitempty"`
	Priority      int               `json:"priority,omitempty" yaml:"priority,omitempty"`
	CascadesInto  string            `json:"cascades_into,omitempty" yaml:"cascades_into,omitempty"`
}

// RuleFileConfig is the root of a rule table definition file.
type RuleFileConfig struct {
	Name          string            `json:"name" yaml:"name"`
	Rules         []RuleConfig      `json:"rules" yaml:"rules"`
	InitialColors map[string]string `json:"initial_colors,omitempty" yaml:"initial_colors,omitempty"`
}

// BuildRuleSetFromConfig validates the configuration and builds the
// immutable rule set from it.
func BuildRuleSetFromConfig(cfg RuleFileConfig) (*RuleSet, error) {
	if err := ValidateRuleFileConfig(cfg); err != nil {
		return nil, err
	}

	rules := make([]*ReactionRule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		rule := &ReactionRule{
			ID:            rc.ID,
			Equation:      rc.Equation,
			Products:      rc.Products,
			ReactionType:  rc.ReactionType,
			PH:            NeutralPH,
			PHChange:      rc.PHChange,
			Symptoms:      rc.Symptoms,
			Triggers:      rc.Triggers,
			LiquidColor:   rc.LiquidColor,
			ParticleType:  rc.ParticleType,
			ParticleColor: rc.ParticleColor,
			Priority:      rc.Priority,
			CascadesInto:  rc.CascadesInto,
		}
		if rc.PH != nil {
			rule.PH = *rc.PH
		}
		for _, reactant := range rc.Reactants {
			if reactant.Name != "" {
				rule.Reactants = append(rule.Reactants, Reactant{Name: reactant.Name})
			} else {
				category, _ := ParseCategory(reactant.Category)
				rule.Reactants = append(rule.Reactants, Reactant{Category: category})
			}
		}
		if rc.Condition != nil {
			// validated above, so parse errors cannot occur here
			if rc.Condition.Temperature != "" {
				temp, _ := ParseTemperature(rc.Condition.Temperature)
				rule.Condition.Temperature = temp
			}
			if rc.Condition.Concentration != "" {
				conc, _ := ParseConcentration(rc.Condition.Concentration)
				rule.Condition.Concentration = conc
			}
		}
		rules = append(rules, rule)
	}

	return NewRuleSet(rules, cfg.InitialColors), nil
}

// LoadRuleFile reads a rule table from a JSON or YAML file, decided by
// extension. Rule files are loaded once at process start; changing one
// requires a restart.
func LoadRuleFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	var cfg RuleFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing rule file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing rule file: %w", err)
		}
	}

	return BuildRuleSetFromConfig(cfg)
}
