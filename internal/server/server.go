package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/session"
)

// Handler serves the planner API over a single session. Requests are
// serialized because the session is not safe for concurrent use.
type Handler struct {
	mu      sync.Mutex
	session *session.Session
	logger  *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(sess *session.Session, logger *zap.Logger) *Handler {
	return &Handler{
		session: sess,
		logger:  logger,
	}
}

// HasUnsavedChanges reports the session's unsaved flag under the handler lock
func (h *Handler) HasUnsavedChanges() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session.ConfirmUnload()
}

// Routes creates and configures the router with all routes and middleware
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.GetState)

		r.Route("/selection", func(r chi.Router) {
			r.Put("/user", h.SelectUser)
			r.Put("/tool", h.SelectTool)
			r.Put("/view", h.SelectView)
			r.Post("/month/next", h.NextMonth)
			r.Post("/month/prev", h.PrevMonth)
		})

		r.Post("/days/click", h.ClickDay)

		r.Post("/users", h.AddUser)
		r.Delete("/users/{name}", h.RemoveUser)

		r.Get("/overlaps", h.GetOverlaps)
		r.Get("/totals", h.GetTotals)
		r.Get("/summary", h.GetSummary)
		r.Get("/calendar/{user}", h.GetCalendar)

		r.Post("/save", h.Save)
		r.Get("/export", h.Export)
		r.Post("/import", h.Import)
		r.Get("/unload", h.GetUnload)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			h.logger.Error("Failed to write health check response", zap.Error(err))
		}
	})

	return r
}

// requestLogger logs one line per request with zap
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
