package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/config"
	_ "github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// echoEngine ends the game on the first tick that carries any key and
// scores the key mask it saw.
type echoEngine struct {
	board bridge.Board
	pv    bridge.Preview
	score uint32
	over  bool
}

func (e *echoEngine) Field() *bridge.Board     { return &e.board }
func (e *echoEngine) Next(int) *bridge.Preview { return &e.pv }
func (e *echoEngine) Hold() *bridge.Preview    { return &e.pv }
func (e *echoEngine) Score() uint32            { return e.score }
func (e *echoEngine) ClearLines() uint32       { return 2 }
func (e *echoEngine) IsGameOver() bool         { return e.over }
func (e *echoEngine) CanUseHold() bool         { return true }
func (e *echoEngine) IntervalRatio() float32   { return 1 }

func (e *echoEngine) Tick(k bridge.Keys) {
	if m := k.Mask(); m != 0 {
		e.score = uint32(m)
		e.over = true
	}
}

func init() {
	registry.Register("webtest-echo", "Echo", func(bridge.RandSource, config.TetrisConfig) bridge.Engine {
		return &echoEngine{}
	})
}

func newTestServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()
	_, ts, store := startTestServer(t)
	return ts, store
}

func startTestServer(t *testing.T) (*Server, *httptest.Server, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := DefaultServerConfig()
	cfg.TickRate = 500
	cfg.Seed = 1
	srv := newServer(cfg, store, log.New(io.Discard))

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return srv, ts, store
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func dial(t *testing.T, ts *httptest.Server, mode string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?mode=" + mode
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func TestHeartbeat(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIndexIsServed(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/", "/app.js"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEmpty(t, body, path)
	}
}

func TestModesEndpoint(t *testing.T) {
	ts, store := newTestServer(t)
	_, err := store.SaveScore("sprint", 900, 40)
	require.NoError(t, err)

	var modes []modeResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/modes", &modes))

	byID := map[string]modeResponse{}
	for _, m := range modes {
		byID[m.ID] = m
	}
	for _, id := range []string{"marathon", "sprint", "ultra"} {
		assert.Contains(t, byID, id)
	}
	assert.Equal(t, 900, byID["sprint"].HighScore)
	assert.Equal(t, 0, byID["marathon"].HighScore)
}

func TestScoresEndpoint(t *testing.T) {
	ts, store := newTestServer(t)
	for _, sc := range []int{100, 300, 200} {
		_, err := store.SaveScore("marathon", sc, sc/100)
		require.NoError(t, err)
	}

	var scores []scoreResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/scores/marathon", &scores))
	require.Len(t, scores, 3)
	assert.Equal(t, 300, scores[0].Score)
	assert.Equal(t, 1, scores[0].Rank)
	assert.Equal(t, 3, scores[0].Lines)
	assert.Equal(t, 100, scores[2].Score)

	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/scores/nope", nil))
}

func TestSessionUnknownMode(t *testing.T) {
	ts, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/ws?mode=nope", nil))
}

func TestSessionStreamsFrames(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts, "marathon")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Initial frame plus a few ticks
	for range 3 {
		typ, data, err := conn.Read(ctx)
		require.NoError(t, err)
		require.Equal(t, websocket.MessageBinary, typ)
		require.Len(t, data, FrameLen)

		f, err := DecodeFrame(data)
		require.NoError(t, err)
		assert.False(t, f.GameOver)
		assert.True(t, f.CanUseHold)
		assert.Equal(t, float32(1), f.IntervalRatio)

		for _, c := range f.Clear {
			assert.LessOrEqual(t, c, byte(1))
		}
		nonEmpty := 0
		for _, c := range f.Field {
			if c != 0 {
				nonEmpty++
			}
		}
		// Active piece plus its ghost
		assert.GreaterOrEqual(t, nonEmpty, 4)
	}
}

func TestSessionGameOverSavesScore(t *testing.T) {
	ts, store := newTestServer(t)
	conn := dial(t, ts, "webtest-echo")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	held := bridge.Keys{}
	held[bridge.KeyLeft] = true
	require.NoError(t, conn.Write(ctx, websocket.MessageBinary, []byte{held.Mask()}))

	var last bridge.Frame
	var res Result
	for {
		typ, data, err := conn.Read(ctx)
		require.NoError(t, err)
		if typ == websocket.MessageText {
			require.NoError(t, json.Unmarshal(data, &res))
			break
		}
		last, err = DecodeFrame(data)
		require.NoError(t, err)
	}

	assert.True(t, last.GameOver)
	assert.Equal(t, uint32(1), last.Score)
	assert.Equal(t, "webtest-echo", res.Mode)
	assert.Equal(t, uint32(1), res.Score)
	assert.Equal(t, uint32(2), res.Lines)
	_, err := uuid.Parse(res.RunID)
	require.NoError(t, err)

	_, _, err = conn.Read(ctx)
	assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))

	entry, err := store.ScoreByRun(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Score)
	assert.Equal(t, 2, entry.Lines)
}

func TestShutdownEndsLiveSessions(t *testing.T) {
	srv, ts, _ := startTestServer(t)
	conn := dial(t, ts, "marathon")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _, err := conn.Read(ctx)
	require.NoError(t, err, "session should be streaming before shutdown")

	require.NoError(t, srv.Shutdown())
	assert.Nil(t, srv.store, "store should be closed after sessions end")

	// Frames already in flight may still arrive, then the connection drops
	for {
		if _, _, err = conn.Read(ctx); err != nil {
			break
		}
	}
	assert.NoError(t, ctx.Err(), "session kept running after Shutdown")

	// New sessions are refused
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, ts.URL+"/ws?mode=marathon", nil))
}
