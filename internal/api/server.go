// Package api exposes the engine over HTTP. Every endpoint returns the same
// JSON envelope; engine errors map to status codes through their taxonomy.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/secfacts/internal/engine"
	"github.com/sells-group/secfacts/internal/model"
)

// Server routes HTTP requests to engine operations.
type Server struct {
	engine *engine.Engine
	router chi.Router
}

// NewServer builds the routed server over an engine.
func NewServer(eng *engine.Engine) *Server {
	s := &Server{engine: eng}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router; exposed for httptest.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("api: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("api: listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics", s.handleMetrics)
		r.Get("/ratios", s.handleRatios)

		r.Get("/companies/{query}", s.handleCompany)
		r.Get("/companies/{query}/metrics/{metric}", s.handleQuery)
		r.Get("/companies/{query}/ratios/{ratio}", s.handleRatio)
		r.Get("/companies/{query}/summary", s.handleSummary)

		r.Get("/compare", s.handleCompare)
		r.Get("/matrix", s.handleMatrix)
		r.Get("/screen", s.handleScreen)
	})

	return r
}

// requestID tags each request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("api: request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// envelope is the uniform response shape.
type envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *model.Error `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: write response", zap.Error(err))
	}
}

func writeResult(w http.ResponseWriter, data any, qerr *model.Error) {
	if qerr != nil {
		writeJSON(w, qerr.Code.HTTPStatus(), envelope{Error: qerr})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: data})
}

func intParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Data: map[string]string{"status": "ok"}})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Data: s.engine.Catalog().MetricIDs()})
}

func (s *Server) handleRatios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Data: s.engine.Catalog().RatioIDs()})
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	company, qerr := s.engine.Resolve(r.Context(), chi.URLParam(r, "query"))
	writeResult(w, company, qerr)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	periodType := engine.PeriodAnnual
	if r.URL.Query().Get("period") == "quarterly" {
		periodType = engine.PeriodQuarterly
	}
	result, qerr := s.engine.Query(r.Context(),
		chi.URLParam(r, "query"), chi.URLParam(r, "metric"),
		intParam(r, "periods"), intParam(r, "year"), periodType)
	writeResult(w, result, qerr)
}

func (s *Server) handleRatio(w http.ResponseWriter, r *http.Request) {
	result, qerr := s.engine.Ratio(r.Context(),
		chi.URLParam(r, "query"), chi.URLParam(r, "ratio"), intParam(r, "years"))
	writeResult(w, result, qerr)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, qerr := s.engine.Summary(r.Context(),
		chi.URLParam(r, "query"), intParam(r, "year"), intParam(r, "years"))
	writeResult(w, result, qerr)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	tickers := splitList(r.URL.Query().Get("tickers"))
	result, qerr := s.engine.Compare(r.Context(), tickers, r.URL.Query().Get("metric"), intParam(r, "years"))
	writeResult(w, result, qerr)
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	tickers := splitList(r.URL.Query().Get("tickers"))
	metrics := splitList(r.URL.Query().Get("metrics"))
	result, qerr := s.engine.Matrix(r.Context(), tickers, metrics, intParam(r, "year"))
	writeResult(w, result, qerr)
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	opts := engine.ScreenOptions{
		Ascending: r.URL.Query().Get("sort") == "asc",
		Limit:     intParam(r, "limit"),
	}
	if v := r.URL.Query().Get("min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.Min = &f
		}
	}
	if v := r.URL.Query().Get("max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.Max = &f
		}
	}
	result, qerr := s.engine.Screen(r.Context(), r.URL.Query().Get("metric"), r.URL.Query().Get("period"), opts)
	writeResult(w, result, qerr)
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
