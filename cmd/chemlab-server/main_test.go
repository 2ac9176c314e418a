package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daniacca/chemlab/internal/chemlab"
	"github.com/daniacca/chemlab/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	// force the static explainer so tests never touch the network
	t.Setenv("GOOGLE_API_KEY", "")

	st := store.NewMemoryStore()
	if _, err := store.Seed(context.Background(), st); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	srv, err := NewServer(chemlab.DefaultRules(), st, NewLogger("error"))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestServer_HandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestServer_HandleListChemicals(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chemicals", nil)
	w := httptest.NewRecorder()
	srv.handleListChemicals(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var grouped map[string][]chemicalView
	if err := json.Unmarshal(w.Body.Bytes(), &grouped); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	// every category key is present even when empty
	for _, key := range []string{"liquids", "acids", "bases", "salts", "indicators", "solids", "gases", "ions"} {
		if _, ok := grouped[key]; !ok {
			t.Errorf("Expected category key %q in response", key)
		}
	}
	if len(grouped["acids"]) == 0 {
		t.Fatal("Expected seeded acids")
	}

	// formulas come back in display notation, sorted by name
	var foundHCl bool
	prev := ""
	for _, view := range grouped["acids"] {
		if view.Name < prev {
			t.Errorf("acids not sorted: %s after %s", view.Name, prev)
		}
		prev = view.Name
		if view.Name == "Hydrochloric acid" {
			foundHCl = true
			if view.Formula != "HCl" {
				t.Errorf("Expected display formula HCl, got %s", view.Formula)
			}
		}
	}
	if !foundHCl {
		t.Error("Expected hydrochloric acid among seeded acids")
	}
}

func TestServer_HandleReact(t *testing.T) {
	srv := newTestServer(t)

	body := `{"ingredients": ["hydrochloric acid", "sodium hydroxide"], "temperature": "room", "concentration": "dilute"}`
	req := httptest.NewRequest(http.MethodPost, "/api/react", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleReact(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result chemlab.ReactionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.ReactionType != "neutralization" {
		t.Errorf("Expected neutralization, got %s", result.ReactionType)
	}
	if len(result.VisualSteps) != 1 {
		t.Fatalf("Expected 1 visual step, got %d", len(result.VisualSteps))
	}
	if result.Equation != result.VisualSteps[0].Equation {
		t.Error("Top-level equation must mirror the first visual step")
	}
	if result.Explanation == "" || result.SafetyTips == "" {
		t.Error("Expected educational content in the response")
	}
}

func TestServer_HandleReactEventRuleID(t *testing.T) {
	srv := newTestServer(t)

	events := make(chan chemlab.ReactionEvent, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event chemlab.ReactionEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			t.Errorf("Failed to decode event: %v", err)
		}
		events <- event
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	body := `{"type": "webhook", "id": "capture", "config": {"url": "` + hook.URL + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/notifiers", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleNotifiersRoutes(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to register webhook: %d: %s", w.Code, w.Body.String())
	}

	body = `{"ingredients": ["hydrochloric acid", "sodium hydroxide"], "temperature": "room", "concentration": "dilute"}`
	req = httptest.NewRequest(http.MethodPost, "/api/react", strings.NewReader(body))
	w = httptest.NewRecorder()
	srv.handleReact(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	select {
	case event := <-events:
		if event.RuleID != "hcl-naoh-neutralization" {
			t.Errorf("Expected event rule_id hcl-naoh-neutralization, got %q", event.RuleID)
		}
		if event.Result.ReactionType != "neutralization" {
			t.Errorf("Expected neutralization in event payload, got %s", event.Result.ReactionType)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("No reaction event delivered to the webhook")
	}

	// rule_id belongs to the event envelope, not the API response
	if strings.Contains(w.Body.String(), "hcl-naoh-neutralization") {
		t.Error("Matched rule ID must not leak into the API response body")
	}
}

func TestServer_HandleReactMixture(t *testing.T) {
	srv := newTestServer(t)

	body := `{"ingredients": ["glitter", "water"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/react", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleReact(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result chemlab.ReactionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.ReactionType != "mixture" {
		t.Errorf("Expected mixture, got %s", result.ReactionType)
	}
	if result.Symptoms == nil || result.VisualSteps == nil {
		t.Error("Mixture payload must carry empty lists, not nulls")
	}
}

func TestServer_HandleReactBadRequests(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"empty ingredients", `{"ingredients": []}`},
		{"bad temperature", `{"ingredients": ["water"], "temperature": "boiling"}`},
		{"bad concentration", `{"ingredients": ["water"], "concentration": "syrupy"}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/react", strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		srv.handleReact(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", tc.name, w.Code)
		}
	}
}

func TestServer_HandleChemicalColor(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chemical-color/copper%20sulfate", nil)
	w := httptest.NewRecorder()
	srv.handleChemicalColor(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["color"] != "#0000FFAA" {
		t.Errorf("Expected copper sulfate blue, got %s", resp["color"])
	}
}

func TestServer_HandleAddChemical(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name": "Oxalic Acid", "formula": "C2H2O4", "molecular_weight": 90.03}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/chemicals", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleAddChemical(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message  string                 `json:"message"`
		Chemical chemlab.ChemicalRecord `json:"chemical"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	// category omitted, assigned heuristically from the name
	if resp.Chemical.Category != chemlab.CategoryAcid {
		t.Errorf("Expected heuristic acid category, got %s", resp.Chemical.Category)
	}

	// the new chemical is matchable immediately
	reactBody := `{"ingredients": ["oxalic acid", "sodium hydroxide"]}`
	req = httptest.NewRequest(http.MethodPost, "/api/react", strings.NewReader(reactBody))
	w = httptest.NewRecorder()
	srv.handleReact(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var result chemlab.ReactionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.ReactionType != "neutralization" {
		t.Errorf("Expected the new acid to neutralize, got %s", result.ReactionType)
	}

	// duplicate add conflicts
	req = httptest.NewRequest(http.MethodPost, "/api/admin/chemicals", strings.NewReader(body))
	w = httptest.NewRecorder()
	srv.handleAddChemical(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate, got %d", w.Code)
	}
}

func TestServer_HandleAddChemicalValidation(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{
		`{broken`,
		`{"name": "  "}`,
		`{"name": "Mystery", "category": "plasma"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/chemicals", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.handleAddChemical(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected status 400, got %d", body, w.Code)
		}
	}
}

func TestServer_HandleNotifiers(t *testing.T) {
	srv := newTestServer(t)

	// the websocket stream notifier is registered at startup
	req := httptest.NewRequest(http.MethodGet, "/notifiers", nil)
	w := httptest.NewRecorder()
	srv.handleNotifiersRoutes(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var listResp struct {
		Notifiers []map[string]string `json:"notifiers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(listResp.Notifiers) != 1 || listResp.Notifiers[0]["type"] != "websocket" {
		t.Errorf("Expected the builtin websocket notifier, got %v", listResp.Notifiers)
	}

	// register a webhook
	body := `{"type": "webhook", "id": "grader", "config": {"url": "http://localhost:9999/hook"}}`
	req = httptest.NewRequest(http.MethodPost, "/notifiers", strings.NewReader(body))
	w = httptest.NewRecorder()
	srv.handleNotifiersRoutes(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := srv.notifierMgr.GetNotifier("grader"); !ok {
		t.Error("webhook notifier not registered")
	}

	// unknown type rejected
	req = httptest.NewRequest(http.MethodPost, "/notifiers", strings.NewReader(`{"type": "carrier-pigeon", "id": "x"}`))
	w = httptest.NewRecorder()
	srv.handleNotifiersRoutes(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown type, got %d", w.Code)
	}

	// unregister
	req = httptest.NewRequest(http.MethodDelete, "/notifiers/grader", nil)
	w = httptest.NewRecorder()
	srv.handleNotifiersRoutes(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := srv.notifierMgr.GetNotifier("grader"); ok {
		t.Error("webhook notifier still registered after delete")
	}

	req = httptest.NewRequest(http.MethodDelete, "/notifiers/grader", nil)
	w = httptest.NewRecorder()
	srv.handleNotifiersRoutes(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown notifier, got %d", w.Code)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"verbose", LogLevelInfo},
	}
	for _, tc := range cases {
		if got := parseLogLevel(tc.in); got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
