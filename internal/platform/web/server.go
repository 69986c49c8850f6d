// Package web serves the leaderboard over HTTP: the JSON API the browser
// arcade used, plus a websocket feed that pushes a game's top list whenever
// a score for it is accepted.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-loop/internal/leaderboard"
)

// maxBody caps request bodies.
const maxBody = 64 << 10

// Server is the leaderboard HTTP service.
type Server struct {
	store  leaderboard.Store
	logger *log.Logger
	feed   *feed
	mux    *http.ServeMux
}

// New creates a server over store. A nil logger discards.
func New(store leaderboard.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store:  store,
		logger: logger,
		feed:   newFeed(logger),
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/save-name", s.saveName)
	s.mux.HandleFunc("POST /api/save-score", s.saveScore)
	s.mux.HandleFunc("GET /api/leaderboard", s.leaderboard)
	s.mux.HandleFunc("GET /api/leaderboard/live", s.live)
	return s
}

// Handler returns the routes wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.mux.ServeHTTP(w, r)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: cannot serve on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Stopping HTTP server")
	s.feed.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type reply struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, reply{Error: msg})
}

// storeError maps a store failure to 400 for bad input and 500 otherwise.
func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, leaderboard.ErrInvalid) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("store failed", "op", op, "err", err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON")
		return false
	}
	return true
}

func (s *Server) saveName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.store.SaveName(r.Context(), req.Name); err != nil {
		s.storeError(w, "save-name", err)
		return
	}
	writeJSON(w, http.StatusOK, reply{Success: true})
}

func (s *Server) saveScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Game  string `json:"game"`
		Name  string `json:"name"`
		Score *int   `json:"score"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Game == "" || req.Name == "" || req.Score == nil {
		writeError(w, http.StatusBadRequest, "game, name and score are required")
		return
	}

	e := leaderboard.Entry{Game: req.Game, Name: req.Name, Score: *req.Score}
	if err := s.store.Submit(r.Context(), e); err != nil {
		s.storeError(w, "save-score", err)
		return
	}
	if err := s.store.SaveName(r.Context(), leaderboard.PlayedNote(e)); err != nil {
		s.logger.Warn("name log failed", "name", e.Name, "err", err)
	}
	s.logger.Info("score saved", "game", e.Game, "name", e.Name, "score", e.Score)

	if s.feed.watching(e.Game) {
		if top, err := s.store.Top(r.Context(), e.Game, leaderboard.TopN); err == nil {
			s.feed.publish(e.Game, top)
		}
	}
	writeJSON(w, http.StatusOK, reply{Success: true})
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if game == "" {
		writeError(w, http.StatusBadRequest, "game is required")
		return
	}
	top, err := s.store.Top(r.Context(), game, leaderboard.TopN)
	if err != nil {
		s.storeError(w, "leaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}
