package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"maps"
	"net/http"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/internal/presentation/graph"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/aretw0/rewind/pkg/trileaf"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is reported by GET /info.
const APIVersion = "0.1.0"

// Server exposes a session registry over a JSON API.
type Server struct {
	Sessions *session.Manager
	logger   *slog.Logger
	metrics  http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler over the session registry.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{Sessions: sessions, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Get("/graph", s.GetGraph)
	r.Get("/graph/mermaid", s.GetGraphMermaid)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Get("/branches", s.GetBranches)
			r.Get("/mermaid", s.GetSessionMermaid)

			r.Post("/send", s.Send)
			r.Post("/override", s.Override)
			r.Post("/undo", s.move(func(i *rewind.Interpreter) bool { return i.Undo() }))
			r.Post("/redo", s.move(func(i *rewind.Interpreter) bool { return i.Redo() }))
			r.Post("/backward", s.move(func(i *rewind.Interpreter) bool { return i.Backward() }))
			r.Post("/pause", s.move(func(i *rewind.Interpreter) bool { return i.Pause() }))
			r.Post("/resume", s.move(func(i *rewind.Interpreter) bool { return i.Resume() }))
			r.Post("/clear-pause", s.move(func(i *rewind.Interpreter) bool { return i.ClearPaused() }))
		})
	})

	return r
}

// SessionResponse is the view of a session returned by every session endpoint.
type SessionResponse struct {
	ID       string          `json:"id"`
	Applied  *bool           `json:"applied,omitempty"`
	Status   string          `json:"status"`
	Snapshot domain.Snapshot `json:"snapshot"`
	CanUndo  bool            `json:"can_undo"`
	CanRedo  bool            `json:"can_redo"`
	Paused   bool            `json:"paused"`
	Done     bool            `json:"done"`
}

// SendRequest is the body of POST /sessions/{id}/send.
// Assign entries are written into the next context when the event is accepted.
type SendRequest struct {
	Event  domain.Event   `json:"event"`
	Assign domain.Context `json:"assign,omitempty"`
}

// OverrideRequest is the body of POST /sessions/{id}/override.
type OverrideRequest struct {
	Target  domain.StateID `json:"target"`
	Context domain.Context `json:"context,omitempty"`
}

// CreateRequest is the optional body of POST /sessions.
type CreateRequest struct {
	ID string `json:"id,omitempty"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "rewind-http",
		"version":     rewind.Version,
		"api_version": APIVersion,
		"machine":     s.Sessions.Machine().ID(),
	})
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sessions.Machine().Graph())
}

// GetGraphMermaid renders the machine graph without an overlay.
func (s *Server) GetGraphMermaid(w http.ResponseWriter, r *http.Request) {
	s.writeText(w, graph.GenerateMermaid(s.Sessions.Machine().Graph(), nil))
}

func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.Sessions.List()})
}

// CreateSession handles POST /sessions. An empty body gets a generated ID.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := body.ID
	var err error
	if id == "" {
		id, err = s.Sessions.Create(r.Context())
	} else {
		err = s.Sessions.CreateWithID(r.Context(), id)
	}
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.respond(w, r, id, http.StatusCreated)
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, chi.URLParam(r, "sessionID"), http.StatusOK)
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBranches returns the tri-leaf view of the session.
func (s *Server) GetBranches(w http.ResponseWriter, r *http.Request) {
	var vd trileaf.VisualData
	err := s.Sessions.WithLock(r.Context(), chi.URLParam(r, "sessionID"), func(_ context.Context, i *rewind.Interpreter) error {
		vd = trileaf.New(i).VisualData()
		return nil
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, vd)
}

// GetSessionMermaid renders the machine graph with the session's history overlay.
func (s *Server) GetSessionMermaid(w http.ResponseWriter, r *http.Request) {
	var out string
	err := s.Sessions.WithLock(r.Context(), chi.URLParam(r, "sessionID"), func(_ context.Context, i *rewind.Interpreter) error {
		out = graph.GenerateMermaid(i.Graph(), graph.OverlayFor(i.Current(), i.Paused()))
		return nil
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeText(w, out)
}

// Send handles POST /sessions/{id}/send.
func (s *Server) Send(w http.ResponseWriter, r *http.Request) {
	var body SendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Event.IsZero() {
		s.writeError(w, http.StatusBadRequest, "event is required")
		return
	}

	var update domain.UpdateFunc
	if len(body.Assign) > 0 {
		update = func(ctx domain.Context, _ domain.Event) domain.Context {
			maps.Copy(ctx, body.Assign)
			return ctx
		}
	}

	s.apply(w, r, func(i *rewind.Interpreter) bool {
		return i.SendWith(body.Event, update)
	})
}

// Override handles POST /sessions/{id}/override.
func (s *Server) Override(w http.ResponseWriter, r *http.Request) {
	var body OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Target == "" {
		s.writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	s.apply(w, r, func(i *rewind.Interpreter) bool {
		if body.Context != nil {
			return i.SetState(body.Target, body.Context)
		}
		return i.SetState(body.Target)
	})
}

func (s *Server) move(op func(*rewind.Interpreter) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.apply(w, r, op)
	}
}

// apply runs op under the session lock and reports whether it changed anything.
// A rejected operation is not an HTTP error.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, op func(*rewind.Interpreter) bool) {
	id := chi.URLParam(r, "sessionID")
	var resp SessionResponse
	err := s.Sessions.WithLock(r.Context(), id, func(_ context.Context, i *rewind.Interpreter) error {
		applied := op(i)
		resp = view(id, i)
		resp.Applied = &applied
		return nil
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, id string, status int) {
	var resp SessionResponse
	err := s.Sessions.WithLock(r.Context(), id, func(_ context.Context, i *rewind.Interpreter) error {
		resp = view(id, i)
		return nil
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, status, resp)
}

func view(id string, i *rewind.Interpreter) SessionResponse {
	return SessionResponse{
		ID:       id,
		Status:   i.Status().String(),
		Snapshot: i.Snapshot(),
		CanUndo:  i.CanUndo(),
		CanRedo:  i.CanRedo(),
		Paused:   i.IsPaused(),
		Done:     i.Done(),
	}
}

// -- Helpers --

func (s *Server) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSessionExists):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("request failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Error("write response", "err", err)
	}
}
