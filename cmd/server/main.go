package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/league-skinset-finder/internal/api"
	"github.com/dom/league-skinset-finder/internal/cache"
	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/dom/league-skinset-finder/internal/refdata"
	"github.com/dom/league-skinset-finder/internal/repository/postgres"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/robfig/cron/v3"
)

const memoryCacheEntries = 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize result cache
	var resultCache cache.ResultCache
	if cfg.RedisAddr != "" {
		resultCache, err = cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		log.Printf("Using redis result cache at %s", cfg.RedisAddr)
	} else {
		resultCache = cache.NewMemoryCache(memoryCacheEntries)
	}
	defer resultCache.Close()

	// Initialize services
	services := service.NewServices(repos, resultCache, cfg)

	// Seed reference data on first start, then load the finder index
	dataset, err := loadReference(cfg.ReferenceDataPath)
	if err != nil {
		log.Fatalf("failed to load reference data: %v", err)
	}
	seeded, err := services.Skinset.SeedIfEmpty(ctx, dataset)
	if err != nil {
		log.Fatalf("failed to seed reference data: %v", err)
	}
	if !seeded {
		if err := services.Finder.Reload(ctx); err != nil {
			log.Fatalf("failed to load skinset index: %v", err)
		}
	}

	// Schedule Data Dragon sync
	scheduler := cron.New()
	if cfg.SyncSchedule != "" {
		if _, err := services.Champion.ScheduleSync(ctx, scheduler, cfg.SyncSchedule); err != nil {
			log.Fatalf("invalid sync schedule %q: %v", cfg.SyncSchedule, err)
		}
		scheduler.Start()
		log.Printf("Data Dragon sync scheduled: %s", cfg.SyncSchedule)
	}

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop scheduled jobs before the server so a running sync can finish
	<-scheduler.Stop().Done()
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func loadReference(path string) (*refdata.Dataset, error) {
	if path == "" {
		return refdata.Default()
	}
	return refdata.LoadFile(path)
}
