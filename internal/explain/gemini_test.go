package explain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseContent(t *testing.T) {
	text := "Here is the result:\n```json\n" +
		`{"explanation": "Acid meets base.", "safety_tips": "Goggles on.", "concept": "Neutralization.", "real_world_example": "Antacids."}` +
		"\n```"

	content, err := parseContent(text)
	if err != nil {
		t.Fatalf("parseContent failed: %v", err)
	}
	if content.Explanation != "Acid meets base." {
		t.Errorf("unexpected explanation: %s", content.Explanation)
	}
	if content.RealWorldExample != "Antacids." {
		t.Errorf("unexpected example: %s", content.RealWorldExample)
	}
}

func TestParseContentErrors(t *testing.T) {
	if _, err := parseContent("no json here"); err == nil {
		t.Error("expected error when no JSON object is present")
	}
	if _, err := parseContent(`{"safety_tips": "only tips"}`); err == nil {
		t.Error("expected error when explanation is missing")
	}
	if _, err := parseContent(`{"explanation": broken}`); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestBuildPromptIncludesReactionData(t *testing.T) {
	prompt := buildPrompt(Request{
		Ingredients:   []string{"sodium", "water"},
		Temperature:   "room",
		Concentration: "dilute",
		ReactionType:  "single_displacement",
		Equation:      "2Na(s) + 2H₂O(l) → 2NaOH(aq) + H₂(g)",
		PH:            14,
		Symptoms:      []string{"vigorous_reaction"},
		History:       []string{"2Na(s) + 2H₂O(l) → 2NaOH(aq) + H₂(g)", "2H₂(g) + O₂(g) → 2H₂O(l)"},
	})

	for _, want := range []string{
		"sodium, water",
		"2Na(s) + 2H₂O(l) → 2NaOH(aq) + H₂(g)",
		"single_displacement",
		"Temperature = room, Concentration = dilute",
		"Step-by-step Reaction History",
		"Final pH: 14",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	if _, err := NewGeminiGenerator(); err == nil {
		t.Error("expected error when GOOGLE_API_KEY is unset")
	}

	t.Setenv("GOOGLE_API_KEY", "test-key")
	g, err := NewGeminiGenerator()
	if err != nil {
		t.Fatalf("NewGeminiGenerator failed: %v", err)
	}
	if g.model == "" {
		t.Error("expected a default model")
	}
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, Request) (Content, error) {
	return Content{}, errors.New("upstream down")
}

type cannedGenerator struct{ content Content }

func (g cannedGenerator) Generate(context.Context, Request) (Content, error) {
	return g.content, nil
}

func TestWithFallback(t *testing.T) {
	ctx := context.Background()
	req := Request{ReactionType: "neutralization"}

	// primary failure falls through to static content
	g := WithFallback(failingGenerator{}, NewStaticGenerator())
	content, err := g.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if content.Explanation == "" {
		t.Error("fallback produced empty content")
	}

	// a working primary wins
	canned := cannedGenerator{content: Content{Explanation: "primary"}}
	g = WithFallback(canned, NewStaticGenerator())
	content, err = g.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if content.Explanation != "primary" {
		t.Errorf("expected the primary generator's content, got %s", content.Explanation)
	}

	// nil primary goes straight to static
	g = WithFallback(nil, NewStaticGenerator())
	if _, err := g.Generate(ctx, req); err != nil {
		t.Errorf("Generate failed: %v", err)
	}
}
