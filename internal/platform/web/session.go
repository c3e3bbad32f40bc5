package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const writeTimeout = 3 * time.Second

// Result is the text message sent after the last frame of a finished game.
type Result struct {
	Mode  string `json:"mode"`
	RunID string `json:"run_id,omitempty"`
	Score uint32 `json:"score"`
	Lines uint32 `json:"lines"`
}

// session plays one game over one WebSocket connection.
//
// The read loop only records the latest held-key mask. Everything that
// touches the adapter runs on the tick loop.
type session struct {
	mode     string
	conn     *websocket.Conn
	bridge   *bridge.Bridge
	repeater *core.Repeater
	interval time.Duration
	store    *storage.Store
	logger   *log.Logger

	held atomic.Uint32
	buf  []byte
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if !s.trackSession() {
		writeError(w, http.StatusServiceUnavailable, "server shutting down")
		return
	}
	defer s.sessions.Done()

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "marathon"
	}

	b, err := registry.Open(mode, core.NewRandSource(s.config.Seed), s.config.Rules)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown mode")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("websocket accept", "error", err)
		return
	}

	sess := &session{
		mode:     mode,
		conn:     conn,
		bridge:   b,
		repeater: core.NewRepeater(s.config.Rules.Input.RepeatDelay),
		interval: time.Second / time.Duration(s.config.TickRate),
		store:    s.store,
		logger:   s.logger.With("session", uuid.NewString()[:8], "mode", mode),
		buf:      make([]byte, 0, FrameLen),
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	defer context.AfterFunc(s.base, cancel)()

	sess.logger.Info("session started", "remote", r.RemoteAddr)
	err = sess.run(ctx)
	if err != nil && !isClosed(err) {
		sess.logger.Warn("session error", "error", err)
	}
	sess.logger.Info("session ended", "score", b.Score(), "lines", b.ClearLines())
}

// run streams frames until the game ends or the client goes away.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.CloseNow()

	go s.readLoop(ctx, cancel)

	// First frame shows the spawned piece before any input
	s.bridge.Rendering()
	if err := s.send(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		held := bridge.KeysFromMask(uint8(s.held.Load()))
		s.bridge.TickKeys(s.repeater.Step(held))
		s.bridge.Rendering()
		if err := s.send(ctx); err != nil {
			return err
		}

		if s.bridge.IsGameOver() {
			return s.finish(ctx)
		}
	}
}

// readLoop records held-key masks sent by the client. The last byte of a
// binary message is the mask; text messages are ignored.
func (s *session) readLoop(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageBinary || len(data) == 0 {
			continue
		}
		s.held.Store(uint32(data[len(data)-1]))
	}
}

func (s *session) send(ctx context.Context) error {
	frame := s.bridge.Snapshot()
	s.buf = AppendFrame(s.buf[:0], &frame)

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return s.conn.Write(wctx, websocket.MessageBinary, s.buf)
}

// finish saves the score, reports it to the client and closes the connection.
func (s *session) finish(ctx context.Context) error {
	res := Result{
		Mode:  s.mode,
		Score: s.bridge.Score(),
		Lines: s.bridge.ClearLines(),
	}

	if s.store != nil {
		runID, err := s.store.SaveScore(s.mode, int(res.Score), int(res.Lines))
		if err != nil {
			s.logger.Warn("could not save score", "error", err)
		} else {
			res.RunID = runID
		}
	}

	msg, err := json.Marshal(res)
	if err != nil {
		return err
	}

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := s.conn.Write(wctx, websocket.MessageText, msg); err != nil {
		return err
	}
	return s.conn.Close(websocket.StatusNormalClosure, "game over")
}

func isClosed(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	status := websocket.CloseStatus(err)
	return status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway
}
