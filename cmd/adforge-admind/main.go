package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adforge-dev/adforge-admin/internal/api"
	"github.com/adforge-dev/adforge-admin/internal/config"
	"github.com/adforge-dev/adforge-admin/internal/enrich"
	"github.com/adforge-dev/adforge-admin/internal/platform/logger"
	"github.com/adforge-dev/adforge-admin/internal/relay"
	"github.com/adforge-dev/adforge-admin/internal/store"
	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
	"github.com/adforge-dev/adforge-admin/internal/vault"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Parse()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	st, err := buildStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize store backend", "backend", cfg.StoreBackend, "error", err)
	}
	log.Info("Store backend ready", "backend", cfg.StoreBackend)

	generator := enrich.NewHTTPGenerator(cfg.PromptGeneratorURL, nil)
	dispatcher := enrich.NewDispatcher(generator, log, cfg.EnrichQueueSize)

	rel := relay.New(cfg.MarketingWebhookURL, log)
	if cfg.MarketingWebhookURL == "" {
		log.Warn("MARKETING_WEBHOOK_URL not set, prompt discovery deliveries will be skipped")
	}

	router := api.NewRouter(api.RouterConfig{
		Brands:       api.NewBrandHandler(st, log),
		Demographics: api.NewDemographicHandler(st, log, dispatcher),
		Legal:        api.NewLegalHandler(st, log),
		Track:        api.NewTrackHandler(rel, log),
		Log:          log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	// Graceful shutdown: stop accepting requests, then drain the enrichment
	// queue so in-flight persona prompts are not lost mid-generation.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutdown signal received, draining...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("HTTP server shutdown", "error", err)
		}
		dispatcher.Close()
		log.Info("Drain complete, exiting")
	}()

	if cfg.UseTLS {
		cert, err := vault.GenerateSelfSignedCert()
		if err != nil {
			log.Fatal("Failed to generate TLS certificate", "error", err)
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
		log.Info("Admin API listening with TLS", "port", cfg.HTTPPort)
		err = srv.ListenAndServeTLS("", "")
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTPS server failed", "error", err)
		}
		return
	}

	log.Info("Admin API listening", "port", cfg.HTTPPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("HTTP server failed", "error", err)
	}
}

func buildStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "", "demo":
		return store.NewDemoStore(taxonomy.DemoSnapshot()), nil
	case "file":
		return store.NewFileStore(cfg.DataDir)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("ADFORGE_POSTGRES_DSN is required for the postgres backend")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return store.NewPostgresStore(ctx, cfg.PostgresDSN)
	case "remote":
		if cfg.StoreAddr == "" {
			return nil, fmt.Errorf("ADFORGE_STORE_ADDR is required for the remote backend")
		}
		return store.ConnectRemote(cfg.StoreAddr)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
