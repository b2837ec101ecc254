package http

import (
	"net/http"

	"github.com/go-chi/render"

	"healthcli/internal/health"
)

// RegistryHandler exposes the static metric registry.
type RegistryHandler struct {
	registry *health.Registry
}

// NewRegistryHandler creates a registry handler.
func NewRegistryHandler(registry *health.Registry) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

// metricInfo is the JSON shape of one metric definition.
type metricInfo struct {
	ID            string `json:"id"`
	SourcePattern string `json:"source_pattern"`
	OutputName    string `json:"output_name"`
}

// List handles GET /api/metrics/registry.
func (h *RegistryHandler) List(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.Definitions()
	metrics := make([]metricInfo, 0, len(defs))
	for _, def := range defs {
		metrics = append(metrics, metricInfo{
			ID:            def.ID,
			SourcePattern: def.SourcePattern,
			OutputName:    def.OutputName,
		})
	}
	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"metrics": metrics,
		"count":   len(metrics),
	})
}
