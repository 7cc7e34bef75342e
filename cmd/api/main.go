package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"barangay-pet-registry/internal/adapters/storage/postgres"
	"barangay-pet-registry/internal/config"
	"barangay-pet-registry/internal/platform/logger"
	"barangay-pet-registry/internal/router"
)

func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	// DB explícita acá => falla rápido si el DSN está mal. Sin DSN, el
	// router cae a los repos in-memory.
	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
	}

	r := router.NewRouter(router.Options{
		DevMode:    cfg.DevMode,
		SessionTTL: cfg.SessionTTL,
		DB:         db,
		Log:        log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr, "dev_mode": cfg.DevMode})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
