package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	chemlabnotifiers "github.com/daniacca/chemlab/internal/chemlab/notifiers"
	"github.com/daniacca/chemlab/internal/store"
)

func openStore(cfg ServerConfig) (store.Store, error) {
	switch cfg.StoreKind {
	case "postgres":
		return store.NewPostgresStore(context.Background(), cfg.PostgresDSN)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewSQLiteStore(cfg.SQLitePath)
	}
}

func main() {
	cfg := loadServerConfig()
	logger := NewLogger(cfg.LogLevel)

	rules, err := loadRules(cfg.RulesFile)
	if err != nil {
		logger.Fatalf("Cannot load rules: %v", err)
	}
	logger.Infof("Rule table loaded: %d rules", rules.Len())

	st, err := openStore(cfg)
	if err != nil {
		logger.Fatalf("Cannot open store (%s): %v", cfg.StoreKind, err)
	}

	if cfg.Seed {
		added, err := store.Seed(context.Background(), st)
		if err != nil {
			logger.Fatalf("Cannot seed chemical library: %v", err)
		}
		if added > 0 {
			logger.Infof("Seeded chemical library: %d chemicals added", added)
		}
	}

	srv, err := NewServer(rules, st, logger)
	if err != nil {
		logger.Fatalf("Cannot create server: %v", err)
	}

	if cfg.MQTTBroker != "" {
		mn, err := chemlabnotifiers.NewMQTTNotifier("classroom", cfg.MQTTBroker, "chemlab-server", cfg.MQTTTopic)
		if err != nil {
			logger.Fatalf("Cannot connect to MQTT broker: %v", err)
		}
		if err := srv.notifierMgr.RegisterNotifier(mn); err != nil {
			logger.Fatalf("Cannot register MQTT notifier: %v", err)
		}
		logger.Infof("Publishing reaction events to MQTT: broker=%s topic=%s", cfg.MQTTBroker, cfg.MQTTTopic)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/api/chemicals", srv.handleListChemicals)
	mux.HandleFunc("/api/react", srv.handleReact)
	mux.HandleFunc("/api/chemical-color/", srv.handleChemicalColor)
	mux.HandleFunc("/api/admin/chemicals", srv.handleAddChemical)
	mux.HandleFunc("/notifiers", srv.handleNotifiersRoutes)
	mux.HandleFunc("/notifiers/", srv.handleNotifiersRoutes)
	mux.HandleFunc("/ws", srv.handleWebSocket)
	mux.Handle("/metrics", promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{}))

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	go func() {
		logger.Infof("chemlab-server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Infof("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warnf("HTTP shutdown error: %v", err)
	}
	if err := srv.Close(); err != nil {
		logger.Warnf("Server close error: %v", err)
	}
}
