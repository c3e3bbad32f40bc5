// Package web serves blockfall to browsers: a static client, a WebSocket game
// session per connection and a small JSON API over the score store.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DBPath is the path to the scores database.
	DBPath string

	// Rules is the engine configuration every session plays with.
	Rules config.TetrisConfig

	// TickRate is the number of engine ticks per second.
	TickRate int

	// Seed fixes the random source of every session. Zero seeds from the clock.
	Seed int64
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:  ":8080",
		DBPath:   "~/.blockfall/scores.db",
		Rules:    config.DefaultTetrisConfig(),
		TickRate: 60,
	}
}

// Server hosts the browser client and its game sessions.
type Server struct {
	config ServerConfig
	store  *storage.Store
	logger *log.Logger
	http   *http.Server

	// base is cancelled on shutdown. Hijacked WebSocket connections are not
	// tracked by http.Server, so sessions watch it themselves.
	base     context.Context
	stop     context.CancelFunc
	mu       sync.Mutex
	closing  bool
	sessions sync.WaitGroup
}

// NewServer creates a web server. A database that cannot be opened only
// disables score saving.
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := newLogger()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	return newServer(cfg, store, logger), nil
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall-web",
	})
}

func newServer(cfg ServerConfig, store *storage.Store, logger *log.Logger) *Server {
	cfg.TickRate = max(cfg.TickRate, 1)
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}
	s.base, s.stop = context.WithCancel(context.Background())
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	static, _ := fs.Sub(staticFiles, "static")
	r.Handle("/*", http.FileServerFS(static))

	r.Get("/ws", s.handleSession)
	r.Route("/api", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		r.Get("/scores/{mode}", s.handleScores)
	})

	return r
}

// ListenAndServe starts the server and blocks until an interrupt arrives.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		s.closeStore()
		return err
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.endSessions(ctx)
	s.closeStore()
	return err
}

// trackSession registers a new game session. It returns false once the
// server is shutting down.
func (s *Server) trackSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions.Add(1)
	return true
}

// endSessions cancels live game sessions and waits for them to return.
func (s *Server) endSessions(ctx context.Context) {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()
	s.stop()

	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("game sessions still running at shutdown")
	}
}

func (s *Server) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

type modeResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HighScore int    `json:"high_score"`
}

func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	modes := registry.List()
	out := make([]modeResponse, 0, len(modes))
	for _, m := range modes {
		resp := modeResponse{ID: m.ID, Title: m.Title}
		if s.store != nil {
			if hs, err := s.store.HighScore(m.ID); err == nil {
				resp.HighScore = hs
			}
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

type scoreResponse struct {
	Rank      int       `json:"rank"`
	RunID     string    `json:"run_id"`
	Score     int       `json:"score"`
	Lines     int       `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	if !registry.Exists(mode) {
		writeError(w, http.StatusNotFound, "unknown mode")
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scores unavailable")
		return
	}

	entries, err := s.store.TopScores(mode, 10)
	if err != nil {
		s.logger.Error("top scores", "mode", mode, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load scores")
		return
	}

	out := make([]scoreResponse, 0, len(entries))
	for i, e := range entries {
		out = append(out, scoreResponse{
			Rank:      i + 1,
			RunID:     e.RunID,
			Score:     e.Score,
			Lines:     e.Lines,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
