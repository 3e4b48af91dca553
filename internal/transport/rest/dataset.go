package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

type datasetSource interface {
	Dialogues(ctx context.Context) ([]domain.Dialogue, error)
	Schema(ctx context.Context) (json.RawMessage, error)
}

// DatasetHandler serves the read-only annotation inputs.
type DatasetHandler struct {
	src datasetSource
	log *slog.Logger
}

// NewDatasetHandler creates a DatasetHandler.
func NewDatasetHandler(src datasetSource, logger *slog.Logger) *DatasetHandler {
	return &DatasetHandler{src: src, log: logger.With("handler", "dataset")}
}

// Dialogues handles GET /api/dialogues.
func (h *DatasetHandler) Dialogues(w http.ResponseWriter, r *http.Request) {
	dialogues, err := h.src.Dialogues(r.Context())
	if err != nil {
		handleError(w, r, h.log, err, "", "")
		return
	}
	writeJSON(w, http.StatusOK, dialogues)
}

// CognitiveDimensions handles GET /api/cognitive_dimensions.
func (h *DatasetHandler) CognitiveDimensions(w http.ResponseWriter, r *http.Request) {
	schema, err := h.src.Schema(r.Context())
	if err != nil {
		handleError(w, r, h.log, err, "", "")
		return
	}
	writeJSON(w, http.StatusOK, schema)
}
