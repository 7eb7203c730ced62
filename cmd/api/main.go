package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"doctama-backoffice/internal/config"
	"doctama-backoffice/internal/fetch"
	"doctama-backoffice/internal/gateway"
	"doctama-backoffice/internal/logger"
	"doctama-backoffice/internal/server"
	"doctama-backoffice/internal/service"
	"doctama-backoffice/internal/session"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	store, err := session.OpenStore(cfg.Session.DBPath)
	if err != nil {
		log.Fatal("open session store", zap.Error(err))
	}
	sessions := session.NewManager(store, log)
	if err := sessions.Load(); err != nil {
		log.Warn("restore session", zap.Error(err))
	}

	apiClient := gateway.New(cfg.API.URL, cfg.API.Timeout, sessions, log)
	uploader := gateway.NewUploader(apiClient, cfg.Upload.Dir, log)
	fetcher := fetch.NewFetcher(apiClient, log)

	svcs := server.Services{
		Auth:      service.NewAuthService(apiClient, sessions, log),
		Dashboard: service.NewDashboardService(fetcher, log),
		Customers: service.NewCustomerService(apiClient, log),
		Orders:    service.NewOrderService(apiClient, log),
		Catalog:   service.NewCatalogService(apiClient, log),
		Checkout:  service.NewCheckoutService(apiClient, uploader, log),
	}

	srv := server.NewServer(svcs, sessions, log)
	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info("starting HTTP server", zap.String("addr", serverAddr), zap.String("api", cfg.API.URL))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
