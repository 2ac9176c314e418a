// Package client provides a Go client for the chemlab server and a
// fluent builder for reaction rule files.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/daniacca/chemlab/internal/chemlab"
)

// RuleFileBuilder provides a fluent API for building rule files.
// Use it to define the reaction table a lab server loads at startup.
type RuleFileBuilder struct {
	name          string
	rules         []*RuleBuilder
	initialColors map[string]string
}

// NewRuleFile creates a new rule file builder with the given name.
// The name identifies the rule table and is used for organization purposes.
func NewRuleFile(name string) *RuleFileBuilder {
	return &RuleFileBuilder{
		name:          name,
		rules:         make([]*RuleBuilder, 0),
		initialColors: make(map[string]string),
	}
}

// Rule adds a reaction rule to the file. Rules keep the order they are
// added in; earlier rules win ties against later ones.
func (fb *RuleFileBuilder) Rule(rb *RuleBuilder) *RuleFileBuilder {
	fb.rules = append(fb.rules, rb)
	return fb
}

// InitialColor sets the tint a chemical shows when first added to water.
func (fb *RuleFileBuilder) InitialColor(chemical, color string) *RuleFileBuilder {
	fb.initialColors[chemlab.NormalizeName(chemical)] = color
	return fb
}

// Build converts the builder to a RuleFileConfig.
func (fb *RuleFileBuilder) Build() chemlab.RuleFileConfig {
	rules := make([]chemlab.RuleConfig, 0, len(fb.rules))
	for _, rb := range fb.rules {
		rules = append(rules, rb.Build())
	}
	cfg := chemlab.RuleFileConfig{
		Name:  fb.name,
		Rules: rules,
	}
	if len(fb.initialColors) > 0 {
		cfg.InitialColors = fb.initialColors
	}
	return cfg
}

// Validate builds the configuration and runs the full rule table
// validation, reporting every issue at once.
func (fb *RuleFileBuilder) Validate() error {
	return chemlab.ValidateRuleFileConfig(fb.Build())
}

// WriteFile validates the rule table and writes it to path, as YAML for
// .yaml/.yml extensions and JSON otherwise. The output is accepted by
// the server's rules-file option.
func (fb *RuleFileBuilder) WriteFile(path string) error {
	cfg := fb.Build()
	if err := chemlab.ValidateRuleFileConfig(cfg); err != nil {
		return err
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal rule file: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// RuleBuilder provides a fluent API for building one reaction rule:
// its reactant matchers, environment condition, outcome and visuals.
type RuleBuilder struct {
	cfg chemlab.RuleConfig
}

// NewRule creates a new rule builder with the given ID.
// The ID must be unique within a rule file.
func NewRule(id string) *RuleBuilder {
	return &RuleBuilder{cfg: chemlab.RuleConfig{ID: id}}
}

// Reactant adds an exact-name reactant matcher.
func (rb *RuleBuilder) Reactant(name string) *RuleBuilder {
	rb.cfg.Reactants = append(rb.cfg.Reactants, chemlab.ReactantConfig{Name: name})
	return rb
}

// ReactantCategory adds a role matcher satisfied by any chemical of the
// given category.
func (rb *RuleBuilder) ReactantCategory(category string) *RuleBuilder {
	rb.cfg.Reactants = append(rb.cfg.Reactants, chemlab.ReactantConfig{Category: category})
	return rb
}

// When restricts the rule to an environment condition. Pass an empty
// string to leave a dimension unrestricted.
func (rb *RuleBuilder) When(temperature, concentration string) *RuleBuilder {
	rb.cfg.Condition = &chemlab.ConditionConfig{
		Temperature:   temperature,
		Concentration: concentration,
	}
	return rb
}

// Equation sets the displayed chemical equation.
func (rb *RuleBuilder) Equation(equation string) *RuleBuilder {
	rb.cfg.Equation = equation
	return rb
}

// Products sets the product formula list.
func (rb *RuleBuilder) Products(products ...string) *RuleBuilder {
	rb.cfg.Products = products
	return rb
}

// Type sets the reaction type label (e.g. "neutralization", "redox").
func (rb *RuleBuilder) Type(reactionType string) *RuleBuilder {
	rb.cfg.ReactionType = reactionType
	return rb
}

// PH sets the resulting pH.
func (rb *RuleBuilder) PH(ph float64) *RuleBuilder {
	rb.cfg.PH = &ph
	return rb
}

// PHChange sets the pH trend label (e.g. "neutralizes", "decreases").
func (rb *RuleBuilder) PHChange(change string) *RuleBuilder {
	rb.cfg.PHChange = change
	return rb
}

// Symptoms sets the observable symptom list.
func (rb *RuleBuilder) Symptoms(symptoms ...string) *RuleBuilder {
	rb.cfg.Symptoms = symptoms
	return rb
}

// Bubbles marks the reaction as evolving gas bubbles.
func (rb *RuleBuilder) Bubbles() *RuleBuilder {
	rb.cfg.Triggers.Bubbles = true
	return rb
}

// Precipitate marks the reaction as forming a precipitate.
func (rb *RuleBuilder) Precipitate() *RuleBuilder {
	rb.cfg.Triggers.Precipitate = true
	return rb
}

// Heat marks the reaction as releasing heat.
func (rb *RuleBuilder) Heat() *RuleBuilder {
	rb.cfg.Triggers.Heat = true
	return rb
}

// GasSmoke marks the reaction as producing visible fumes.
func (rb *RuleBuilder) GasSmoke() *RuleBuilder {
	rb.cfg.Triggers.GasSmoke = true
	return rb
}

// ColorChange sets the animation color change trigger.
func (rb *RuleBuilder) ColorChange(color string) *RuleBuilder {
	rb.cfg.Triggers.ColorChange = color
	return rb
}

// LiquidColor sets the liquid tint after the reaction.
func (rb *RuleBuilder) LiquidColor(color string) *RuleBuilder {
	rb.cfg.LiquidColor = color
	return rb
}

// Particles sets the particle effect and its color.
func (rb *RuleBuilder) Particles(particleType, color string) *RuleBuilder {
	rb.cfg.ParticleType = particleType
	rb.cfg.ParticleColor = color
	return rb
}

// Priority sets the rule priority; higher wins when several rules match.
func (rb *RuleBuilder) Priority(priority int) *RuleBuilder {
	rb.cfg.Priority = priority
	return rb
}

// CascadesInto chains a follow-up rule that fires on this rule's
// products, producing a multi-phase reaction.
func (rb *RuleBuilder) CascadesInto(ruleID string) *RuleBuilder {
	rb.cfg.CascadesInto = ruleID
	return rb
}

// Build converts the builder to a RuleConfig.
func (rb *RuleBuilder) Build() chemlab.RuleConfig {
	return rb.cfg
}

// Client is an HTTP client for the chemlab server API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL
// (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient creates a client using a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

// Chemical is one catalog entry as returned by the chemicals listing.
type Chemical struct {
	Name            string  `json:"name"`
	Formula         string  `json:"formula"`
	MolecularWeight float64 `json:"molecular_weight,omitempty"`
	Category        string  `json:"category"`
	Color           string  `json:"color,omitempty"`
	IUPACName       string  `json:"iupac_name,omitempty"`
	SMILES          string  `json:"smiles,omitempty"`
	CID             int     `json:"cid,omitempty"`
}

// Chemicals returns the catalog grouped by category
// ("acids", "bases", "salts", ...).
func (c *Client) Chemicals(ctx context.Context) (map[string][]Chemical, error) {
	var out map[string][]Chemical
	if err := c.getJSON(ctx, "/api/chemicals", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// React predicts what happens when the given chemicals are mixed.
// Temperature and concentration may be empty, defaulting to room/dilute.
func (c *Client) React(ctx context.Context, ingredients []string, temperature, concentration string) (chemlab.ReactionResult, error) {
	body := map[string]any{
		"ingredients":   ingredients,
		"temperature":   temperature,
		"concentration": concentration,
	}
	var result chemlab.ReactionResult
	if err := c.postJSON(ctx, "/api/react", body, &result); err != nil {
		return chemlab.ReactionResult{}, err
	}
	return result, nil
}

// ChemicalColor returns the tint a chemical shows when first dissolved.
func (c *Client) ChemicalColor(ctx context.Context, name string) (string, error) {
	var out struct {
		Color string `json:"color"`
	}
	if err := c.getJSON(ctx, "/api/chemical-color/"+url.PathEscape(name), &out); err != nil {
		return "", err
	}
	return out.Color, nil
}

// AddChemical adds a chemical to the server's catalog. Category may be
// empty; the server then categorizes heuristically.
func (c *Client) AddChemical(ctx context.Context, chem Chemical) error {
	return c.postJSON(ctx, "/api/admin/chemicals", chem, nil)
}

// RegisterWebhook registers a webhook notifier that receives every
// reaction event as an HTTP POST.
func (c *Client) RegisterWebhook(ctx context.Context, id, webhookURL string) error {
	body := map[string]any{
		"type":   "webhook",
		"id":     id,
		"config": map[string]any{"url": webhookURL},
	}
	return c.postJSON(ctx, "/notifiers", body, nil)
}

// UnregisterNotifier removes a notifier by ID.
func (c *Client) UnregisterNotifier(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/notifiers/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
