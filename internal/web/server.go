package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaminalder/tic-tac-toe-history/internal/app"
)

// Options tunes the HTTP layer.
type Options struct {
	Heartbeat time.Duration
}

// NewServer wires routes and returns an http.Handler. It also installs the
// fragment renderer on the service so subscribers receive ready-to-swap HTML.
func NewServer(s *app.Service, logger *slog.Logger, opts Options) http.Handler {
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 15 * time.Second
	}
	h := &handlers{
		svc:       s,
		tpl:       loadTemplates(),
		log:       logger.With("component", "web"),
		heartbeat: opts.Heartbeat,
	}
	s.SetRenderer(h.renderGame)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Get("/state", h.state)
	r.Get("/events", h.events)
	r.Post("/play/{cell}", h.play)
	r.Post("/jump/{move}", h.jump)
	r.Post("/sort", h.sort)
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
