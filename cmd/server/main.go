package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yfcm/prayer-chain/internal/api"
	"github.com/yfcm/prayer-chain/internal/config"
	"github.com/yfcm/prayer-chain/internal/presence"
	"github.com/yfcm/prayer-chain/internal/repository/postgres"
	"github.com/yfcm/prayer-chain/internal/service"
	"github.com/yfcm/prayer-chain/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repos := postgres.NewRepositories(db)

	tracker := presence.NewTracker(cfg.PresenceTTL)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go tracker.Sweep(sweepCtx, cfg.HeartbeatInterval)

	hub := websocket.NewHub(tracker)
	tracker.OnChange(hub.BroadcastPresence)
	go hub.Run()

	services := service.NewServices(repos, cfg)

	router := api.NewRouter(services, tracker, hub, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	hub.Stop()
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
