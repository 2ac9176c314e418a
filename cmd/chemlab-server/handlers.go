package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/daniacca/chemlab/internal/chemlab"
	chemlabnotifiers "github.com/daniacca/chemlab/internal/chemlab/notifiers"
	"github.com/daniacca/chemlab/internal/explain"
	"github.com/daniacca/chemlab/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// categoryKey maps a category to its plural key in the chemicals listing.
func categoryKey(c chemlab.Category) string {
	if c == chemlab.CategoryGas {
		return "gases"
	}
	if c == chemlab.CategoryUnknown {
		return "others"
	}
	return string(c) + "s"
}

// chemicalView is one catalog entry as served by the chemicals API.
type chemicalView struct {
	Name            string  `json:"name"`
	Formula         string  `json:"formula"`
	MolecularWeight float64 `json:"molecular_weight,omitempty"`
	Category        string  `json:"category"`
	Color           string  `json:"color,omitempty"`
	IUPACName       string  `json:"iupac_name,omitempty"`
	SMILES          string  `json:"smiles,omitempty"`
	CID             int     `json:"cid,omitempty"`
}

// GET /api/chemicals
// Returns the catalog grouped by category, formulas in display notation.
func (s *Server) handleListChemicals(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	records := s.catalog.All()
	s.mu.RUnlock()

	grouped := make(map[string][]chemicalView)
	for _, cat := range chemlab.KnownCategories {
		grouped[categoryKey(cat)] = []chemicalView{}
	}
	for _, rec := range records {
		view := chemicalView{
			Name:            rec.Name,
			Formula:         chemlab.FormatFormula(rec.Formula, rec.Name),
			MolecularWeight: rec.MolecularWeight,
			Category:        string(rec.Category),
			Color:           rec.Color,
			IUPACName:       rec.IUPACName,
			SMILES:          rec.SMILES,
			CID:             rec.CID,
		}
		key := categoryKey(rec.Category)
		grouped[key] = append(grouped[key], view)
	}
	for _, views := range grouped {
		sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(grouped); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// POST /api/react
// Body: { "ingredients": [...], "temperature": "room", "concentration": "dilute" }
type reactRequest struct {
	Ingredients   []string `json:"ingredients"`
	Temperature   string   `json:"temperature"`
	Concentration string   `json:"concentration"`
}

func (s *Server) handleReact(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req reactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Ingredients) == 0 {
		http.Error(w, "please add some chemicals first", http.StatusBadRequest)
		return
	}

	temp, err := chemlab.ParseTemperature(req.Temperature)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conc, err := chemlab.ParseConcentration(req.Concentration)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := s.currentEngine().Predict(req.Ingredients, temp, conc)
	if err != nil {
		s.metrics.predictionError.Inc()
		s.logger.Errorf("Prediction failed: ingredients=%v error=%v", req.Ingredients, err)
		http.Error(w, "could not predict the reaction", http.StatusInternalServerError)
		return
	}
	s.metrics.predictLatency.Observe(time.Since(start).Seconds())
	s.metrics.predictions.WithLabelValues(result.ReactionType).Inc()

	history := make([]string, 0, len(result.VisualSteps))
	for _, phase := range result.VisualSteps {
		history = append(history, phase.Equation)
	}
	content, err := s.explainer.Generate(r.Context(), explain.Request{
		Ingredients:   req.Ingredients,
		Temperature:   string(temp),
		Concentration: string(conc),
		ReactionType:  result.ReactionType,
		Equation:      result.Equation,
		PH:            result.PH,
		Symptoms:      result.Symptoms,
		History:       history,
	})
	if err != nil {
		s.logger.Warnf("Explanation generation failed: %v", err)
	} else {
		result.Explanation = content.Explanation
		result.SafetyTips = content.SafetyTips
		result.Concept = content.Concept
		result.RealWorldExample = content.RealWorldExample
	}

	s.notifierMgr.Publish(chemlab.NewReactionEvent(req.Ingredients, temp, conc, result.RuleID, result))
	s.logger.Debugf("Reaction predicted: ingredients=%v type=%s", req.Ingredients, result.ReactionType)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// GET /api/chemical-color/{name}
// Returns the tint a chemical shows when first added to water.
func (s *Server) handleChemicalColor(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/chemical-color/")
	if name == "" {
		http.Error(w, "chemical name is required in path: /api/chemical-color/{name}", http.StatusBadRequest)
		return
	}

	color := s.currentEngine().InitialColor(name)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"color": color}); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// POST /api/admin/chemicals
// Body: { "name": "...", "formula": "...", "category": "...", ... }
// Category is optional; missing categories are assigned heuristically.
type addChemicalRequest struct {
	Name            string  `json:"name"`
	Formula         string  `json:"formula"`
	Category        string  `json:"category"`
	Color           string  `json:"color"`
	MolecularWeight float64 `json:"molecular_weight"`
	IUPACName       string  `json:"iupac_name"`
	SMILES          string  `json:"smiles"`
	CID             int     `json:"cid"`
}

func (s *Server) handleAddChemical(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req addChemicalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "chemical name is required", http.StatusBadRequest)
		return
	}

	category := chemlab.CategorizeHeuristic(req.Name, req.Formula)
	if req.Category != "" {
		parsed, err := chemlab.ParseCategory(req.Category)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		category = parsed
	}

	if _, err := s.store.GetChemical(r.Context(), req.Name); err == nil {
		http.Error(w, "chemical already exists", http.StatusConflict)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Errorf("Chemical lookup failed: name=%s error=%v", req.Name, err)
		http.Error(w, "cannot add chemical", http.StatusInternalServerError)
		return
	}

	rec := chemlab.ChemicalRecord{
		Name:            strings.TrimSpace(req.Name),
		Category:        category,
		Formula:         req.Formula,
		Color:           req.Color,
		MolecularWeight: req.MolecularWeight,
		IUPACName:       req.IUPACName,
		SMILES:          req.SMILES,
		CID:             req.CID,
	}
	if err := s.store.AddChemical(r.Context(), rec); err != nil {
		s.logger.Errorf("Failed to add chemical: name=%s error=%v", req.Name, err)
		http.Error(w, "cannot add chemical", http.StatusInternalServerError)
		return
	}

	if err := s.reloadCatalog(r.Context()); err != nil {
		s.logger.Errorf("Catalog reload failed after add: %v", err)
		http.Error(w, "chemical stored but catalog reload failed", http.StatusInternalServerError)
		return
	}

	s.metrics.chemicalsAdded.Inc()
	s.logger.Infof("Chemical added: name=%s category=%s", rec.Name, rec.Category)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"message":  "chemical added",
		"chemical": rec,
	}); err != nil {
		s.logger.Errorf("Cannot encode response: %v", err)
	}
}

// GET /ws
// Upgrades to a WebSocket carrying the live reaction event stream.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.wsNotifier.GetUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("WebSocket upgrade failed: %v", err)
		return
	}
	s.wsNotifier.RegisterClient(conn)
	s.logger.Debugf("WebSocket client connected: remote=%s", r.RemoteAddr)

	// Drain the read side so close frames are processed; events flow
	// out through the notifier's broadcaster.
	go func() {
		defer s.wsNotifier.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// handleNotifiersRoutes handles notifier management endpoints
func (s *Server) handleNotifiersRoutes(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/notifiers" && r.Method == http.MethodGet:
		s.handleListNotifiers(w, r)
	case r.URL.Path == "/notifiers" && r.Method == http.MethodPost:
		s.handleRegisterNotifier(w, r)
	case strings.HasPrefix(r.URL.Path, "/notifiers/") && r.Method == http.MethodDelete:
		s.handleUnregisterNotifier(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// GET /notifiers
// List all registered notifiers
func (s *Server) handleListNotifiers(w http.ResponseWriter, _ *http.Request) {
	notifierIDs := s.notifierMgr.ListNotifiers()

	notifierList := make([]map[string]string, 0, len(notifierIDs))
	for _, id := range notifierIDs {
		notifier, exists := s.notifierMgr.GetNotifier(id)
		if exists {
			notifierList = append(notifierList, map[string]string{
				"id":   id,
				"type": notifier.Type(),
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"notifiers": notifierList}); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// POST /notifiers
// Register a new notifier
// Body: { "type": "webhook", "id": "my-webhook", "config": { "url": "http://..." } }
type registerNotifierRequest struct {
	Type   string         `json:"type"`
	ID     string         `json:"id"`
	Config map[string]any `json:"config"`
}

func (s *Server) handleRegisterNotifier(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req registerNotifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.ID == "" {
		http.Error(w, "notifier ID is required", http.StatusBadRequest)
		return
	}

	var notifier chemlab.Notifier

	switch req.Type {
	case "webhook":
		url, ok := req.Config["url"].(string)
		if !ok || url == "" {
			http.Error(w, "webhook URL is required", http.StatusBadRequest)
			return
		}
		wh := chemlabnotifiers.NewWebhookNotifier(req.ID, url)

		// Set custom headers if provided
		if headers, ok := req.Config["headers"].(map[string]any); ok {
			for k, v := range headers {
				if vStr, ok := v.(string); ok {
					wh.SetHeader(k, vStr)
				}
			}
		}

		notifier = wh
	case "mqtt":
		broker, ok := req.Config["broker"].(string)
		if !ok || broker == "" {
			http.Error(w, "MQTT broker URL is required", http.StatusBadRequest)
			return
		}
		topic, _ := req.Config["topic"].(string)
		if topic == "" {
			topic = "chemlab/reactions"
		}
		mn, err := chemlabnotifiers.NewMQTTNotifier(req.ID, broker, "chemlab-server-"+req.ID, topic)
		if err != nil {
			http.Error(w, "cannot connect to MQTT broker: "+err.Error(), http.StatusBadGateway)
			return
		}
		notifier = mn
	default:
		http.Error(w, "unknown notifier type: "+req.Type, http.StatusBadRequest)
		return
	}

	if err := s.notifierMgr.RegisterNotifier(notifier); err != nil {
		_ = notifier.Close()
		http.Error(w, "cannot register notifier: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("notifier registered"))
}

// DELETE /notifiers/{id}
// Unregister a notifier
func (s *Server) handleUnregisterNotifier(w http.ResponseWriter, r *http.Request) {
	notifierID := strings.TrimPrefix(r.URL.Path, "/notifiers/")
	if notifierID == "" {
		http.Error(w, "notifier ID is required", http.StatusBadRequest)
		return
	}

	if err := s.notifierMgr.UnregisterNotifier(notifierID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("notifier unregistered"))
}
