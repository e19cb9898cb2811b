package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwebster45206/poke-arena/internal/arena"
	"github.com/jwebster45206/poke-arena/internal/config"
	"github.com/jwebster45206/poke-arena/internal/handlers"
	"github.com/jwebster45206/poke-arena/internal/logger"
	"github.com/jwebster45206/poke-arena/internal/middleware"
	"github.com/jwebster45206/poke-arena/internal/services"
	"github.com/jwebster45206/poke-arena/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting PokeArena API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"model_name", cfg.ModelName,
		"session_ttl", cfg.SessionTTL)

	if cfg.GroqAPIKey == "" {
		log.Warn("GROQ_API_KEY is not set; requests must carry their own key", "header", handlers.APIKeyHeader)
	}

	llmService := services.NewGroqService(cfg.GroqBaseURL, cfg.ModelName, cfg.LLMTimeout, log)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	arenaService := arena.NewService(llmService, store, cfg.GroqAPIKey, log)

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, llmService, log))
	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/v1/environments", handlers.NewEnvironmentHandler(log))
	mux.Handle("/v1/profiles/validate", handlers.NewProfileHandler(log))

	sessionHandler := handlers.NewSessionHandler(arenaService, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	mux.Handle("/v1/battles", handlers.NewBattleHandler(arenaService, log))

	handler := middleware.Logger(mux)
	// Completion calls can take up to LLMTimeout, so writes get that much headroom.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
