package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"repair-workshop-backend/config"
	"repair-workshop-backend/internal/advice"
	"repair-workshop-backend/internal/api"
	"repair-workshop-backend/internal/db"
	"repair-workshop-backend/internal/docs"
	"repair-workshop-backend/internal/notification"
	"repair-workshop-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "workshop-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	local, err := store.NewLocalStore(cfg.Database.LocalDir)
	if err != nil {
		logger.Fatalf("failed to open local store: %v", err)
	}

	// The facade probes the remote database exactly once; any failure
	// pins this session to the local store.
	facade := store.NewFacade(func(ctx context.Context) (*gorm.DB, error) {
		return db.Init(ctx, &cfg.Database)
	}, local)
	if err := facade.Initialize(ctx); err != nil {
		logger.Fatalf("failed to initialize data stores: %v", err)
	}
	logger.Printf("data store initialized, mode: %s", facade.Mode())

	webpushOptions := &webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}
	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		logger.Println("VAPID keys are not configured; device-ready notifications will fail to send")
	}

	pool := notification.NewWorkerPool(cfg.WorkerPool.Size, facade, webpushOptions)
	pool.Start(ctx)

	handler := api.NewHandler(
		facade,
		advice.NewClient(&cfg.Advice),
		docs.NewBuilder(cfg.Workshop),
		pool,
		webpushOptions,
	)

	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		CacheTTL:        time.Duration(cfg.Server.CacheTTLSeconds) * time.Second,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
