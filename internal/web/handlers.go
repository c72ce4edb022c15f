package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaminalder/tic-tac-toe-history/internal/app"
	"github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *slog.Logger
	heartbeat time.Duration
}

func (h *handlers) renderGame(s app.Snapshot) []byte {
	return renderTemplate(h.tpl.game, "", gameData{Snapshot: s})
}

func (h *handlers) writeGame(w http.ResponseWriter, status int, s app.Snapshot) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(h.renderGame(s))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.page, "", gameData{Snapshot: h.svc.Snapshot()}))
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	if err := enc.Encode(stateResponse{SessionID: snap.SessionID, Version: snap.Version, View: snap.View}); err != nil {
		h.log.Error("encode state", "error", err)
	}
}

type stateResponse struct {
	SessionID string      `json:"sessionId"`
	Version   uint64      `json:"version"`
	View      domain.View `json:"view"`
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		http.Error(w, "cell must be a number", http.StatusBadRequest)
		return
	}
	// occupied cells, decided games and off-board cells are silently ignored
	snap, _ := h.svc.Play(cell)
	h.writeGame(w, http.StatusOK, snap)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	move, err := strconv.Atoi(chi.URLParam(r, "move"))
	if err != nil {
		http.Error(w, "move must be a number", http.StatusBadRequest)
		return
	}
	snap, err := h.svc.JumpTo(move)
	if err != nil {
		if errors.Is(err, domain.ErrMoveOutOfRange) {
			http.Error(w, fmt.Sprintf("no move #%d", move), http.StatusBadRequest)
			return
		}
		http.Error(w, "jump failed", http.StatusInternalServerError)
		return
	}
	h.writeGame(w, http.StatusOK, snap)
}

func (h *handlers) sort(w http.ResponseWriter, r *http.Request) {
	h.writeGame(w, http.StatusOK, h.svc.ToggleSortOrder())
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub := h.svc.Subscribe(ctx)
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "game", b)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event; multi-line payloads get one data line each.
func writeEvent(w io.Writer, name string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	start := 0
	for i, c := range payload {
		if c == '\n' {
			_, _ = fmt.Fprintf(w, "data: %s\n", payload[start:i])
			start = i + 1
		}
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", payload[start:])
}
