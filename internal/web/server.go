package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"badgagotchi/internal/sim"
)

// Server serves the pet page, the websocket stream and a small JSON API.
type Server struct {
	addr     string
	hub      *Hub
	sink     ActionSink
	upgrader websocket.Upgrader
}

// NewServer creates the web server. The hub must be running.
func NewServer(addr string, hub *Hub, sink ActionSink) *Server {
	return &Server{
		addr: addr,
		hub:  hub,
		sink: sink,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local daemon, local page.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWS)
	r.Get("/api/snapshot", s.handleSnapshot)
	r.Post("/api/action", s.handleAction)

	return r
}

// Run serves until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web frontend listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := newClient(s.hub, conn)
	s.hub.register <- c
	go c.writePump()
	go c.readPump()

	// Greet the new client with the current frame immediately.
	if payload, err := json.Marshal(s.sink.Snapshot()); err == nil {
		select {
		case c.send <- payload:
		default:
		}
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.sink.Snapshot()); err != nil {
		slog.Debug("snapshot encode failed", "err", err)
	}
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var press buttonPress
	if err := json.NewDecoder(r.Body).Decode(&press); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	action := sim.ParseAction(press.Action)
	if action == sim.ActionNone {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	accepted := s.sink.PushAction(action)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"accepted": accepted})
}
