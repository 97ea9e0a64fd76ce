package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"bdcompass/internal/api"
	"bdcompass/internal/domain"
	"bdcompass/internal/ports"
	"bdcompass/internal/workers/analysisrunner"
)

const (
	defaultWaitTimeout = 30
	maxBodyBytes       = 8 << 20
)

type Server struct {
	analyses  ports.Analyses
	jobs      ports.JobRepository
	processor analysisrunner.RunProcessor
	log       *zap.Logger
}

// New builds the server. analyses, jobs and processor may be nil when no
// database is configured; the analysis routes are then not mounted.
func New(analyses ports.Analyses, jobs ports.JobRepository, processor analysisrunner.RunProcessor, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{analyses: analyses, jobs: jobs, processor: processor, log: log}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.getHealthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/routes", handle(s, api.Routes))
		r.Post("/score", handle(s, api.Score))
		r.Post("/outbound", handle(s, api.Outbound))
		r.Post("/followups", handle(s, api.FollowUps))
		r.Post("/digest", handle(s, api.Digest))

		if s.analyses != nil {
			r.Post("/accounts/{accountID}/analyses", s.postAnalysis)
			r.Get("/accounts/{accountID}/opportunities", s.getOpportunities)
			r.Get("/analyses/{id}", s.getAnalysis)
		}
	})
	return r
}

func (s *Server) getHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handle adapts a stateless request/response function to an HTTP handler.
func handle[Req, Resp any](s *Server, fn func(Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := decode(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		resp, err := fn(req)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) postAnalysis(w http.ResponseWriter, r *http.Request) {
	var wait *bool
	if err := runtime.BindQueryParameter("form", true, false, "wait", r.URL.Query(), &wait); err != nil {
		s.writeError(w, r, &runtimeError{code: http.StatusBadRequest, msg: "invalid wait: " + err.Error()})
		return
	}
	var timeout *int
	if err := runtime.BindQueryParameter("form", true, false, "timeout", r.URL.Query(), &timeout); err != nil {
		s.writeError(w, r, &runtimeError{code: http.StatusBadRequest, msg: "invalid timeout: " + err.Error()})
		return
	}

	ctx := r.Context()
	id, err := s.analyses.Enqueue(ctx, chi.URLParam(r, "accountID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if wait == nil || !*wait {
		s.writeJSON(w, http.StatusAccepted, map[string]string{"run_id": id})
		return
	}

	secs := defaultWaitTimeout
	if timeout != nil && *timeout > 0 {
		secs = *timeout
	}
	ctx2, cancel := context.WithTimeout(ctx, time.Duration(secs)*time.Second)
	defer cancel()
	if err := analysisrunner.ProcessInline(ctx2, s.jobs, s.processor, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := s.analyses.Status(ctx2, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	st, err := s.analyses.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) getOpportunities(w http.ResponseWriter, r *http.Request) {
	opps, err := s.analyses.Opportunities(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opps == nil {
		opps = []domain.ScoredOpportunity{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"opportunities": opps})
}

func decode(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return &runtimeError{code: http.StatusBadRequest, msg: "missing body"}
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return &runtimeError{code: http.StatusBadRequest, msg: "malformed json: " + err.Error()}
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := http.StatusInternalServerError, "internal error"
	var rt *runtimeError
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &rt):
		code, msg = rt.code, rt.msg
	case errors.As(err, &verr):
		code, msg = http.StatusBadRequest, verr.Error()
	case errors.Is(err, ports.ErrNotFound):
		code, msg = http.StatusNotFound, "not found"
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = http.StatusGatewayTimeout, "analysis timed out"
	default:
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}
	s.writeJSON(w, code, map[string]string{"error": msg})
}

type runtimeError struct {
	code int
	msg  string
}

func (e *runtimeError) Error() string { return e.msg }
