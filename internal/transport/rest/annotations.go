package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
	"github.com/heartmarshall/appraisal-annotator/internal/service/annotation"
)

type annotationService interface {
	Save(ctx context.Context, input annotation.SaveInput) error
	Get(ctx context.Context, username, entryID string) (domain.Lookup, error)
	List(ctx context.Context, username string) (map[string]domain.Document, error)
	Progress(ctx context.Context, username string) (domain.Progress, error)
}

// AnnotationHandler serves per-user annotation records.
type AnnotationHandler struct {
	svc          annotationService
	log          *slog.Logger
	maxBodyBytes int64
}

// NewAnnotationHandler creates an AnnotationHandler.
func NewAnnotationHandler(svc annotationService, logger *slog.Logger, maxBodyBytes int64) *AnnotationHandler {
	return &AnnotationHandler{svc: svc, log: logger.With("handler", "annotations"), maxBodyBytes: maxBodyBytes}
}

// Save handles POST /api/save_annotation. The body is stored as sent.
func (h *AnnotationHandler) Save(w http.ResponseWriter, r *http.Request) {
	var payload domain.Document
	if err := decodeBody(w, r, h.maxBodyBytes, &payload); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.svc.Save(r.Context(), annotation.SaveInput{Payload: payload}); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, "Annotation saved successfully", "")
}

// Get handles GET /api/annotation/{username}/{entry_id}.
func (h *AnnotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	lookup, err := h.svc.Get(r.Context(), r.PathValue("username"), r.PathValue("entry_id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lookup)
}

// List handles GET /api/annotations/{username}.
func (h *AnnotationHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.List(r.Context(), r.PathValue("username"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// Progress handles GET /api/progress/{username}.
func (h *AnnotationHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.svc.Progress(r.Context(), r.PathValue("username"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *AnnotationHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	handleError(w, r, h.log, err, "Annotation already exists", "Annotation not found")
}
