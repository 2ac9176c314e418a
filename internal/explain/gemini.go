package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	geminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	geminiModel  = "gemini-2.0-flash"
)

// GeminiGenerator asks Google Gemini for tailored educational content.
type GeminiGenerator struct {
	apiKey     string
	httpClient *http.Client
	model      string
}

// NewGeminiGenerator creates a Gemini-backed generator.
// It reads the API key from the GOOGLE_API_KEY environment variable.
func NewGeminiGenerator() (*GeminiGenerator, error) {
	apiKey := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable not set")
	}

	return &GeminiGenerator{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		model: geminiModel,
	}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the model for content and parses its JSON reply.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (Content, error) {
	prompt := buildPrompt(req)

	apiReq := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	apiReq.GenerationConfig.Temperature = 0.7
	apiReq.GenerationConfig.MaxOutputTokens = 600

	body, err := json.Marshal(apiReq)
	if err != nil {
		return Content{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf(geminiAPIURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Content{}, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return Content{}, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Content{}, fmt.Errorf("reading response: %w", err)
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return Content{}, fmt.Errorf("unmarshaling response: %w", err)
	}

	if apiResp.Error != nil {
		return Content{}, fmt.Errorf("API error: %s", apiResp.Error.Message)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return Content{}, fmt.Errorf("empty response from API")
	}

	return parseContent(apiResp.Candidates[0].Content.Parts[0].Text)
}

// parseContent extracts the JSON object from the model's reply. Models
// sometimes wrap the JSON in extra prose or code fences.
func parseContent(text string) (Content, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Content{}, fmt.Errorf("no JSON object in response")
	}

	var content Content
	if err := json.Unmarshal([]byte(text[start:end+1]), &content); err != nil {
		return Content{}, fmt.Errorf("parsing content JSON: %w", err)
	}
	if content.Explanation == "" {
		return Content{}, fmt.Errorf("response missing explanation")
	}
	return content, nil
}

// buildPrompt creates the prompt for the model.
func buildPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("You are an expert chemistry education assistant. Provide comprehensive, detailed explanations suitable for high school and early college students.\n\n")

	sb.WriteString("REACTION DATA:\n")
	sb.WriteString(fmt.Sprintf("- Initial Ingredients: %s\n", strings.Join(req.Ingredients, ", ")))
	sb.WriteString(fmt.Sprintf("- Chemical Equation: %s\n", req.Equation))
	sb.WriteString(fmt.Sprintf("- Reaction Type: %s\n", req.ReactionType))
	sb.WriteString(fmt.Sprintf("- Conditions: Temperature = %s, Concentration = %s\n", req.Temperature, req.Concentration))
	if len(req.History) > 1 {
		sb.WriteString(fmt.Sprintf("- Step-by-step Reaction History: %s\n", strings.Join(req.History, " -> ")))
	}
	sb.WriteString(fmt.Sprintf("- Observable Effects: %s\n", strings.Join(req.Symptoms, ", ")))
	sb.WriteString(fmt.Sprintf("- Final pH: %g\n\n", req.PH))

	sb.WriteString("Explain this reaction with sufficient depth: what happens at the molecular level, why the reactants combine this way, the role of concentration and temperature, and what students should observe and why.\n\n")

	sb.WriteString("RESPOND WITH VALID JSON ONLY (no extra text before or after):\n")
	sb.WriteString(`{
  "explanation": "Comprehensive explanation (4-6 sentences). Start with WHAT happens, then WHY at the molecular/ionic level, then discuss conditions and observable changes.",
  "safety_tips": "Specific, practical safety precautions for these chemicals (2-3 sentences).",
  "concept": "The chemistry concept name and a detailed description (2-3 sentences).",
  "real_world_example": "A detailed practical application (2-3 sentences)."
}`)

	return sb.String()
}
