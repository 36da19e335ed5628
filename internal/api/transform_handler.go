package api

import (
	"net/http"

	"github.com/netatlas/netatlas/internal/api/response"
	"github.com/netatlas/netatlas/internal/ingest"
	"github.com/netatlas/netatlas/internal/logging"
)

// maxTransformBody bounds POST /v1/transform request bodies (16 MiB).
const maxTransformBody = 16 << 20

// TransformHandler handles POST /v1/transform requests.
type TransformHandler struct {
	service *HierarchyService
	logger  *logging.Logger
}

// NewTransformHandler creates a new transform handler.
func NewTransformHandler(service *HierarchyService, logger *logging.Logger) *TransformHandler {
	return &TransformHandler{
		service: service,
		logger:  logger,
	}
}

// Handle transforms a caller-supplied raw topology document into the
// containment hierarchy without touching the upstream scanner.
func (h *TransformHandler) Handle(w http.ResponseWriter, r *http.Request) {
	graph, err := ingest.DecodeGraph(http.MaxBytesReader(w, r.Body, maxTransformBody))
	if err != nil {
		h.logger.Warn("Rejected transform request: %v", err)
		response.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	hierarchy := h.service.TransformGraph(r.Context(), graph)
	_ = response.WriteSuccess(w, hierarchy)
}
