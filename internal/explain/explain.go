// Package explain generates the educational content attached to
// reaction results: explanations, safety tips, the underlying concept
// and a real-world example.
package explain

import "context"

// Request carries everything known about a predicted reaction.
type Request struct {
	Ingredients   []string
	Temperature   string
	Concentration string
	ReactionType  string
	Equation      string
	PH            float64
	Symptoms      []string
	// History holds the equations of each cascade phase, first to last.
	History []string
}

// Content is the educational material for one reaction.
type Content struct {
	Explanation      string `json:"explanation"`
	SafetyTips       string `json:"safety_tips"`
	Concept          string `json:"concept"`
	RealWorldExample string `json:"real_world_example"`
}

// Generator produces educational content for a reaction.
type Generator interface {
	Generate(ctx context.Context, req Request) (Content, error)
}

// WithFallback returns a generator that tries primary first and falls
// back to the static content when the primary fails.
func WithFallback(primary Generator, fallback *StaticGenerator) Generator {
	return &fallbackGenerator{primary: primary, fallback: fallback}
}

type fallbackGenerator struct {
	primary  Generator
	fallback *StaticGenerator
}

func (g *fallbackGenerator) Generate(ctx context.Context, req Request) (Content, error) {
	if g.primary != nil {
		if content, err := g.primary.Generate(ctx, req); err == nil {
			return content, nil
		}
	}
	return g.fallback.Generate(ctx, req)
}
