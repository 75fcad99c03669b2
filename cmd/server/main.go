package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classpoll/internal/config"
	"classpoll/internal/service"
	"classpoll/internal/transport/rest"
	"classpoll/internal/transport/ws"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize the session core
	roster := service.NewRoster()
	history := service.NewHistoryLog()
	timer := service.NewCountdown()
	pollSvc := service.NewPollService(roster, history, timer)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	pollSvc.SetBroadcaster(wsHub)

	gateway := ws.NewGateway(pollSvc, wsHub, cfg.DefaultTimeLimit)

	// Create router with container
	container := &rest.Container{
		Config:      cfg,
		PollService: pollSvc,
		WSHub:       wsHub,
		Gateway:     gateway,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("Server running on %s", cfg.HTTPAddr)
		log.Printf("Allowed frontend origin: %s", cfg.FrontendURL)
		log.Println("Endpoints:")
		log.Println("  GET /health")
		log.Println("  GET /v1/polls/history")
		log.Println("  WS  /v1/ws")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
