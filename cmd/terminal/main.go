package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/posdesk/pos-engine/internal/application/use_cases"
	"github.com/posdesk/pos-engine/internal/config"
	"github.com/posdesk/pos-engine/internal/infrastructure/api"
	"github.com/posdesk/pos-engine/internal/infrastructure/monitoring"
	"github.com/posdesk/pos-engine/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Infow("starting POS terminal")

	creds := api.NewStaticCredentialStore(cfg.Auth.Token)

	// Set when any service answers 401: the credential is gone and the
	// operator has to log in again. The loop exits at the next prompt.
	var loggedOut atomic.Bool
	onUnauthorized := func() {
		loggedOut.Store(true)
		fmt.Println("! session expired, please sign in again")
	}

	timeout := cfg.HTTP.Timeout()
	catalogClient := api.NewCatalogClient(api.NewClient(cfg.Catalog.BaseURL, timeout, creds, onUnauthorized, log))
	cashClient := api.NewCashClient(api.NewClient(cfg.Cash.BaseURL, timeout, creds, onUnauthorized, log))

	gate := use_cases.NewCashSessionUseCase(cashClient, log)
	checkout := use_cases.NewCheckoutUseCase(gate, cashClient, log)

	term := newTerminal(gate, checkout, &loggedOut)
	search := use_cases.NewSearchUseCase(catalogClient, cfg.Search.Debounce(), term.searchHandlers(), log)
	term.search = search

	metricsServer := monitoring.NewMetricsServer(cfg.Metrics.Addr)
	go func() {
		if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Errorw("metrics server failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println()
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Stop(shutdownCtx); err != nil {
			log.Errorw("metrics server shutdown error", "error", err)
		}
		os.Exit(0)
	}()

	if err := gate.RefreshStatus(context.Background()); err != nil {
		fmt.Println("! could not fetch register status, assuming closed")
	}

	term.run(os.Stdin)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Stop(shutdownCtx); err != nil {
		log.Errorw("metrics server shutdown error", "error", err)
	}
	log.Infow("terminal stopped")
}
