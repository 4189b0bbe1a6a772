package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/config"
	"github.com/foxseedlab/focus-cockpit/internal/session"
	"github.com/foxseedlab/focus-cockpit/internal/store"
	"github.com/google/uuid"
)

// SessionService is the slice of the session manager the HTTP surface
// needs.
type SessionService interface {
	CreateSession(ctx context.Context, input session.CreateInput) session.Result
	CreateManualSession(ctx context.Context, input session.ManualCreateInput) session.Result
	UpdateSession(ctx context.Context, input session.UpdateInput) session.Result
	DeleteSession(ctx context.Context, rowIndex int, eventID string) session.Result
	LogSummary(ctx context.Context, input session.SummaryInput) session.Result
	RecentTaskNames(ctx context.Context) ([]string, error)
	TimelineWindow(ctx context.Context) ([]store.TimelineRow, error)
	TimelineICal(ctx context.Context) ([]byte, error)
	SaveState(ctx context.Context, userID string, blob []byte) (string, error)
	LoadState(ctx context.Context, userID string) ([]byte, error)
	SaveFeedback(ctx context.Context, comment string) (string, error)
}

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg *config.Config, svc SessionService) *Server {
	h := &handler{svc: svc}
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           withRequestLog(h.routes()),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (h *handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", h.createSession)
	mux.HandleFunc("POST /api/sessions/manual", h.createManualSession)
	mux.HandleFunc("PATCH /api/sessions/{rowIndex}", h.updateSession)
	mux.HandleFunc("DELETE /api/sessions/{rowIndex}", h.deleteSession)
	mux.HandleFunc("POST /api/summaries", h.logSummary)
	mux.HandleFunc("GET /api/tasks/recent", h.recentTaskNames)
	mux.HandleFunc("GET /api/timeline", h.timelineWindow)
	mux.HandleFunc("GET /api/timeline.ics", h.timelineICal)
	mux.HandleFunc("PUT /api/state", h.saveState)
	mux.HandleFunc("GET /api/state", h.loadState)
	mux.HandleFunc("POST /api/feedback", h.saveFeedback)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		slog.Info("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed_ms", time.Since(start).Milliseconds())
	})
}
