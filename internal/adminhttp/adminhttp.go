// Package adminhttp exposes an operator-facing HTTP surface alongside
// the game's WebSocket listener: a health check reporting DB
// reachability and active session count, wired with gorilla/mux the
// same way the rest of the corpus routes small JSON APIs.
package adminhttp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/towerclimb/server/internal/logger"
	"github.com/towerclimb/server/internal/persistence"
)

// SessionCounter is the subset of *session.Manager the health handler
// needs. Kept as an interface so this package never imports session
// and create a cycle (session would otherwise need adminhttp for
// nothing it actually uses).
type SessionCounter interface {
	ActiveSessionCount() int
}

// Server serves the admin HTTP endpoints on their own listener,
// separate from the WebSocket game port.
type Server struct {
	httpServer *http.Server
}

type healthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
	DatabaseOK     bool   `json:"database_ok"`
}

// New builds the admin router: /healthz reports liveness, database
// reachability, and the current player count.
func New(addr string, db *persistence.Database, sessions SessionCounter) *Server {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthHandler(db, sessions)).Methods(http.MethodGet)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func healthHandler(db *persistence.Database, sessions SessionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:         "ok",
			ActiveSessions: sessions.ActiveSessionCount(),
			DatabaseOK:     db.DB().Ping() == nil,
		}
		w.Header().Set("Content-Type", "application/json")
		if !resp.DatabaseOK {
			resp.Status = "degraded"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode health response", "error", err)
		}
	}
}

// ListenAndServe starts the admin HTTP server, blocking until it stops.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the admin HTTP server at once via http.Server.Close;
// in-flight requests are not drained.
func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}
