package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

// Snapshot is a consistent copy of the session's view taken under the lock.
type Snapshot struct {
	SessionID string
	View      domain.View
	Version   uint64
	Updated   time.Time
}

type subscriber struct {
	id        string
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service hosts the single game of this process and fans out renders to subscribers.
// The game itself is single-owner; the mutex serialises callers so every
// operation runs to completion before the next one starts.
type Service struct {
	mu      sync.Mutex
	id      string
	game    *domain.Game
	version uint64
	updated time.Time
	subs    map[*subscriber]struct{}
	render  func(Snapshot) []byte
	log     *slog.Logger
}

// NewService creates a service with a renderer that encodes nothing useful.
func NewService(logger *slog.Logger) *Service {
	return NewServiceWithRenderer(logger, nil)
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(logger *slog.Logger, renderer func(Snapshot) []byte) *Service {
	if renderer == nil {
		renderer = func(Snapshot) []byte { return nil }
	}
	id := uuid.NewString()
	return &Service{
		id:      id,
		game:    domain.New(),
		updated: time.Now(),
		subs:    make(map[*subscriber]struct{}),
		render:  renderer,
		log:     logger.With("component", "app", "session", id),
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(Snapshot) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		renderer = func(Snapshot) []byte { return nil }
	}
	s.render = renderer
}

// SessionID identifies this game for the lifetime of the process.
func (s *Service) SessionID() string { return s.id }

// Snapshot returns the current view.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Play applies a move at cell. Ignored plays are not errors; the returned
// flag reports whether the history changed.
func (s *Service) Play(cell int) (Snapshot, bool) {
	s.mu.Lock()
	before := s.game.Current()
	applied := s.game.Play(cell)
	if !applied {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.log.Debug("play ignored", "cell", cell, "reason", ignoreReason(before, cell))
		return snap, false
	}
	s.log.Debug("play", "cell", cell, "mark", s.game.Current()[cell].String(), "move", s.game.CurrentMove())
	return s.commitAndUnlock(), true
}

// JumpTo views history entry move.
func (s *Service) JumpTo(move int) (Snapshot, error) {
	s.mu.Lock()
	if err := s.game.JumpTo(move); err != nil {
		snap, n := s.snapshotLocked(), s.game.Len()
		s.mu.Unlock()
		s.log.Debug("jump rejected", "move", move, "len", n, "error", err)
		return snap, fmt.Errorf("jump to %d: %w", move, err)
	}
	s.log.Debug("jump", "move", move)
	return s.commitAndUnlock(), nil
}

// ToggleSortOrder flips the move list order.
func (s *Service) ToggleSortOrder() Snapshot {
	s.mu.Lock()
	s.game.ToggleSortOrder()
	s.log.Debug("sort toggled", "order", s.game.SortOrder().String())
	return s.commitAndUnlock()
}

// commitAndUnlock bumps the version, renders the new state and fans it out
// before releasing the lock. Sends never block; slow subscribers are dropped.
// Subscriber channels are only sent on and closed while s.mu is held.
func (s *Service) commitAndUnlock() Snapshot {
	s.version++
	s.updated = time.Now()
	snap := s.snapshotLocked()
	payload := s.render(snap)

	var dropped []string
	for sub := range s.subs {
		select {
		case sub.ch <- payload:
		default:
			delete(s.subs, sub)
			sub.close()
			dropped = append(dropped, sub.id)
		}
	}
	s.mu.Unlock()

	for _, id := range dropped {
		s.log.Warn("dropped slow subscriber", "subscriber", id)
	}
	return snap
}

// Subscribe registers a subscriber. The channel is closed when ctx is done,
// when unsubscribe is called, or when the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context) (<-chan []byte, func()) {
	sub := &subscriber{id: uuid.NewString(), ch: make(chan []byte, 1)}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	s.log.Debug("subscribed", "subscriber", sub.id)

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			delete(s.subs, sub)
			sub.close()
			s.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}

// Subscribers returns the number of live subscribers.
func (s *Service) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: s.id,
		View:      s.game.View(),
		Version:   s.version,
		Updated:   s.updated,
	}
}

func ignoreReason(b domain.Board, cell int) string {
	switch {
	case cell < 0 || cell >= domain.Size:
		return "out of range"
	case domain.Evaluate(b) != nil:
		return "game decided"
	case b[cell] != domain.Empty:
		return "occupied"
	default:
		return "unknown"
	}
}
