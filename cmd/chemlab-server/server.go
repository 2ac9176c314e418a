package main

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/daniacca/chemlab/internal/chemlab"
	"github.com/daniacca/chemlab/internal/chemlab/notifiers"
	"github.com/daniacca/chemlab/internal/explain"
	"github.com/daniacca/chemlab/internal/store"
)

// chemlabLoggerAdapter adapts the server's Logger to the chemlab.Logger interface
type chemlabLoggerAdapter struct {
	logger *Logger
}

func (a *chemlabLoggerAdapter) Debugf(format string, v ...any) {
	a.logger.Debugf(format, v...)
}

func (a *chemlabLoggerAdapter) Infof(format string, v ...any) {
	a.logger.Infof(format, v...)
}

func (a *chemlabLoggerAdapter) Warnf(format string, v ...any) {
	a.logger.Warnf(format, v...)
}

func (a *chemlabLoggerAdapter) Errorf(format string, v ...any) {
	a.logger.Errorf(format, v...)
}

// Server is the HTTP server for the virtual chemistry lab.
type Server struct {
	// mu guards engine and catalog; both are swapped wholesale when an
	// admin write rebuilds the catalog.
	mu      sync.RWMutex
	engine  *chemlab.Engine
	catalog *chemlab.MemoryCatalog

	rules       *chemlab.RuleSet
	store       store.Store
	notifierMgr *chemlab.NotificationManager
	wsNotifier  *notifiers.WebSocketNotifier
	explainer   explain.Generator
	metrics     *serverMetrics
	registry    *prometheus.Registry
	logger      *Logger
}

// NewServer assembles a server over the given rule table and catalog store.
func NewServer(rules *chemlab.RuleSet, st store.Store, logger *Logger) (*Server, error) {
	coreLogger := &chemlabLoggerAdapter{logger: logger}

	catalog, err := store.LoadCatalog(context.Background(), st)
	if err != nil {
		return nil, err
	}

	engine := chemlab.NewEngine(catalog, rules)
	engine.SetLogger(coreLogger)

	registry := prometheus.NewRegistry()

	ws := notifiers.NewWebSocketNotifier("lab-stream")
	notifierMgr := chemlab.NewNotificationManagerWithLogger(coreLogger)
	if err := notifierMgr.RegisterNotifier(ws); err != nil {
		return nil, err
	}

	var explainer explain.Generator
	static := explain.NewStaticGenerator()
	if gemini, err := explain.NewGeminiGenerator(); err == nil {
		logger.Infof("Explanation generator: Gemini with static fallback")
		explainer = explain.WithFallback(gemini, static)
	} else {
		logger.Infof("Explanation generator: static content (%v)", err)
		explainer = static
	}

	return &Server{
		engine:      engine,
		catalog:     catalog,
		rules:       rules,
		store:       st,
		notifierMgr: notifierMgr,
		wsNotifier:  ws,
		explainer:   explainer,
		metrics:     newServerMetrics(registry),
		registry:    registry,
		logger:      logger,
	}, nil
}

// currentEngine returns the engine under the read lock.
func (s *Server) currentEngine() *chemlab.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// reloadCatalog rebuilds the catalog and engine from the store. Called
// after admin writes so new chemicals become matchable immediately.
func (s *Server) reloadCatalog(ctx context.Context) error {
	catalog, err := store.LoadCatalog(ctx, s.store)
	if err != nil {
		return err
	}
	engine := chemlab.NewEngine(catalog, s.rules)
	engine.SetLogger(&chemlabLoggerAdapter{logger: s.logger})

	s.mu.Lock()
	s.catalog = catalog
	s.engine = engine
	s.mu.Unlock()
	return nil
}

// Close releases the notification workers and the store.
func (s *Server) Close() error {
	if err := s.notifierMgr.Close(); err != nil {
		s.logger.Warnf("Error closing notifiers: %v", err)
	}
	return s.store.Close()
}
