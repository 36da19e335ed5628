package api

import (
	"net/http"

	"github.com/netatlas/netatlas/internal/api/response"
	"github.com/netatlas/netatlas/internal/logging"
)

// HierarchyHandler handles GET /v1/hierarchy requests.
type HierarchyHandler struct {
	service *HierarchyService
	logger  *logging.Logger
}

// NewHierarchyHandler creates a new hierarchy handler.
func NewHierarchyHandler(service *HierarchyService, logger *logging.Logger) *HierarchyHandler {
	return &HierarchyHandler{
		service: service,
		logger:  logger,
	}
}

// Handle fetches the latest topology snapshot and returns the containment
// hierarchy. The optional scope query parameter selects a scanner-side slice
// of the estate.
func (h *HierarchyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")

	hierarchy, err := h.service.Hierarchy(r.Context(), scope)
	if err != nil {
		h.logger.Error("Failed to build hierarchy: %v", err)
		response.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch topology snapshot")
		return
	}

	_ = response.WriteSuccess(w, hierarchy)
}
