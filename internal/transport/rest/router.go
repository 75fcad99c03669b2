package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"classpoll/internal/config"
	"classpoll/internal/service"
	"classpoll/internal/transport/ws"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	Config      *config.Config
	PollService *service.PollService
	WSHub       *ws.Hub
	Gateway     *ws.Gateway
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	wsHandler := ws.NewHandler(c.WSHub, c.Gateway, c.Config.FrontendURL)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config.FrontendURL))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Real-time channel; the client identifies its role with a join event
	v1.HandleFunc("/ws", wsHandler.ServeWS).Methods("GET")

	// Read query over the poll history, same data as the getPollHistory event
	v1.HandleFunc("/polls/history", handlePollHistory(c.PollService)).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func handlePollHistory(poll *service.PollService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(poll.History()); err != nil {
			log.Printf("Failed to encode poll history: %v", err)
		}
	}
}

func corsMiddleware(allowedOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowedOrigin == "" {
				allowedOrigin = "*"
			}

			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
