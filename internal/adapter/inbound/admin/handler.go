// Package admin exposes the operational HTTP endpoints served alongside the
// SSE transport: a health probe and a read-only listing of registered tools.
package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"sportsbridge/internal/usecase"
)

// Handlers struct holds dependencies for the HTTP handlers.
type Handlers struct {
	repository usecase.SpecRepository
	provider   string
	logger     *slog.Logger
}

// NewHandlers creates a new Handlers struct.
func NewHandlers(repo usecase.SpecRepository, provider string, logger *slog.Logger) *Handlers {
	return &Handlers{
		repository: repo,
		provider:   provider,
		logger:     logger.With("component", "admin_handler"),
	}
}

// RegisterRoutes sets up the HTTP routes for the admin endpoints.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /tools", h.handleListTools)
}

// handleHealth implements GET /healthz.
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":   "ok",
		"provider": h.provider,
	})
}

// toolSummary is the wire shape of one registered tool in the listing.
type toolSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}

// handleListTools implements GET /tools.
func (h *Handlers) handleListTools(w http.ResponseWriter, r *http.Request) {
	specs, err := h.repository.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list tool specs", slog.Any("error", err))
		http.Error(w, "Failed to list tools", http.StatusInternalServerError)
		return
	}

	summaries := make([]toolSummary, 0, len(specs))
	for _, spec := range specs {
		names := make([]string, 0, len(spec.Params))
		for _, p := range spec.Params {
			names = append(names, p.Name)
		}
		summaries = append(summaries, toolSummary{
			Name:        spec.Name,
			Description: spec.Description,
			Params:      names,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"provider": h.provider,
		"tools":    summaries,
	}); err != nil {
		h.logger.Warn("Failed to encode tool listing", slog.Any("error", err))
	}
}
