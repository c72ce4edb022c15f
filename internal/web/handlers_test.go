package web

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tic-tac-toe-history/internal/app"
	"github.com/jaminalder/tic-tac-toe-history/internal/logging"
)

func newTestServer(t *testing.T) (*app.Service, http.Handler) {
	t.Helper()
	s := app.NewService(logging.Discard())
	h := NewServer(s, logging.Discard(), Options{})
	return s, h
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestIndexPage(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Next player: X")
	assert.Contains(t, body, `sse-connect="/events"`)
	assert.Contains(t, body, "htmx.org@1.9.12/dist/ext/sse.js", "extension must match the pinned htmx version")
	assert.Contains(t, body, `id="game"`)
	assert.Contains(t, body, "You are at move #0")
	assert.Contains(t, body, "Sort moves descending")
	assert.Equal(t, 9, strings.Count(body, `hx-post="/play/`))
}

func TestPlayReturnsFragment(t *testing.T) {
	svc, h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/play/4")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="game"`), "expected fragment, got %q", body)
	assert.Contains(t, body, "Next player: O")
	assert.Contains(t, body, "You are at move #1 (X)")
	assert.Equal(t, 1, svc.Snapshot().View.CurrentMove)
}

func TestPlayOccupiedIsIgnored(t *testing.T) {
	svc, h := newTestServer(t)
	do(t, h, http.MethodPost, "/play/4")

	rr := do(t, h, http.MethodPost, "/play/4")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint64(1), svc.Snapshot().Version)
}

func TestPlayBadInput(t *testing.T) {
	svc, h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/play/abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/play/9")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint64(0), svc.Snapshot().Version)
}

func TestWinningCellsHighlighted(t *testing.T) {
	_, h := newTestServer(t)
	for _, c := range []string{"0", "3", "1", "4", "2"} {
		do(t, h, http.MethodPost, "/play/"+c)
	}

	rr := do(t, h, http.MethodGet, "/")

	body := rr.Body.String()
	assert.Contains(t, body, "Winner: X")
	assert.Equal(t, 3, strings.Count(body, "square square-winner"))
	assert.Contains(t, body, `class="status status-won"`)
}

func TestJump(t *testing.T) {
	svc, h := newTestServer(t)
	do(t, h, http.MethodPost, "/play/4")
	do(t, h, http.MethodPost, "/play/0")

	rr := do(t, h, http.MethodPost, "/jump/1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Go to move #2 - O at (1, 1)")
	assert.Equal(t, 1, svc.Snapshot().View.CurrentMove)

	rr = do(t, h, http.MethodPost, "/jump/5")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = do(t, h, http.MethodPost, "/jump/x")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 1, svc.Snapshot().View.CurrentMove)
}

func TestSortToggle(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, http.MethodPost, "/play/4")
	do(t, h, http.MethodPost, "/play/0")

	rr := do(t, h, http.MethodPost, "/sort")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Sort moves ascending")
	first := strings.Index(body, "You are at move #2")
	last := strings.Index(body, "Go to game start")
	require.True(t, first >= 0 && last >= 0)
	assert.Less(t, first, last, "descending list must start with the latest move")
}

func TestStateJSON(t *testing.T) {
	svc, h := newTestServer(t)
	do(t, h, http.MethodPost, "/play/4")

	rr := do(t, h, http.MethodGet, "/state")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var got struct {
		SessionID string `json:"sessionId"`
		Version   uint64 `json:"version"`
		View      struct {
			Status      string   `json:"status"`
			Outcome     string   `json:"outcome"`
			Board       []string `json:"board"`
			WinningLine []int    `json:"winningLine"`
			SortOrder   string   `json:"sortOrder"`
			Moves       []struct {
				Index     int    `json:"index"`
				Label     string `json:"label"`
				IsCurrent bool   `json:"isCurrent"`
			} `json:"moves"`
		} `json:"view"`
	}
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&got))
	assert.Equal(t, svc.SessionID(), got.SessionID)
	assert.Equal(t, uint64(1), got.Version)
	assert.Equal(t, "Next player: O", got.View.Status)
	assert.Equal(t, "in progress", got.View.Outcome)
	assert.Equal(t, "X", got.View.Board[4])
	assert.Empty(t, got.View.WinningLine)
	assert.Equal(t, "ascending", got.View.SortOrder)
	require.Len(t, got.View.Moves, 2)
	assert.True(t, got.View.Moves[1].IsCurrent)
	assert.Equal(t, "Go to move #1 - X at (2, 2)", got.View.Moves[1].Label)
}

func TestEventsEndpointSSEHeaders(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/events")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/event-stream"))
}

func TestEventsStream(t *testing.T) {
	// Given: a live server with a short heartbeat and an EventSource client
	svc := app.NewService(logging.Discard())
	srv := httptest.NewServer(NewServer(svc, logging.Discard(), Options{Heartbeat: 20 * time.Millisecond}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream"))

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	next := func() string {
		t.Helper()
		select {
		case l, ok := <-lines:
			require.True(t, ok, "stream closed")
			return l
		case <-ctx.Done():
			t.Fatalf("timed out reading stream")
			return ""
		}
	}

	// Then: heartbeats arrive while idle
	for next() != ": ping" {
	}

	// When: a move is played
	play, err := srv.Client().Post(srv.URL+"/play/4", "text/plain", nil)
	require.NoError(t, err)
	play.Body.Close()
	require.Equal(t, http.StatusOK, play.StatusCode)

	// Then: the rendered fragment is pushed as a game event
	for next() != "event: game" {
	}
	first := next()
	assert.True(t, strings.HasPrefix(first, "data: "), "got %q", first)
	var data strings.Builder
	for l := first; l != ""; l = next() {
		require.True(t, strings.HasPrefix(l, "data: "), "got %q", l)
		data.WriteString(strings.TrimPrefix(l, "data: "))
	}
	assert.Contains(t, data.String(), `<div id="game"`)
	assert.Contains(t, data.String(), "Next player: O")
}

func TestServiceBroadcastsFragments(t *testing.T) {
	svc, _ := newTestServer(t)
	ch, unsub := svc.Subscribe(t.Context())
	defer unsub()

	svc.Play(4)

	b := <-ch
	assert.True(t, bytes.HasPrefix(b, []byte(`<div id="game"`)))
	assert.Contains(t, string(b), "Next player: O")
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	writeEvent(&buf, "game", []byte("a\nb"))
	assert.Equal(t, "event: game\ndata: a\ndata: b\n\n", buf.String())
}
