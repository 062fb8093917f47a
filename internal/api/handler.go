package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nidhogg/memgraph/internal/graph"
	"github.com/nidhogg/memgraph/internal/schedule"
	"github.com/nidhogg/memgraph/internal/store"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	runner *schedule.Runner
	store  store.Store
	logger *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(runner *schedule.Runner, st store.Store, logger *zap.Logger) *Handler {
	return &Handler{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)
		r.Get("/graph", h.getGraph)
		r.Get("/graph/stats", h.getStats)
		r.Post("/regenerate", h.regenerate)
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getGraph serves the latest generated document. Before the first
// successful run there is nothing to serve.
func (h *Handler) getGraph(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.Latest(r.Context())
	if errors.Is(err, store.ErrNoGraph) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("load latest graph", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.Latest(r.Context())
	if errors.Is(err, store.ErrNoGraph) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("load latest graph", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statsResponse(g))
}

// regenerate runs a full generation. Fatal pipeline errors surface to the
// caller; the previously served graph is untouched.
func (h *Handler) regenerate(w http.ResponseWriter, r *http.Request) {
	g, err := h.runner.Run(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"nodes":   g.Metadata.NodeCount,
		"edges":   g.Metadata.EdgeCount,
		"run_id":  g.Metadata.RunID,
	})
}

func statsResponse(g *graph.Graph) map[string]interface{} {
	return map[string]interface{}{
		"metadata":   g.Metadata,
		"unresolved": g.Diagnostics.UnresolvedCount(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
