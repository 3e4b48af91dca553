package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
	"github.com/heartmarshall/appraisal-annotator/pkg/ctxutil"
)

const msgInvalidBody = "Invalid request body"

// statusResponse is the envelope for write endpoints and for every error.
type statusResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeSuccess(w http.ResponseWriter, message, username string) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: message, Username: username})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusResponse{Status: "error", Message: message})
}

// decodeBody reads a JSON request body of at most maxBytes into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBytes))
	dec.UseNumber()
	return dec.Decode(dst)
}

// handleError maps domain errors to the error envelope. conflictMsg and
// notFoundMsg name the resource for the two cases that need it.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, conflictMsg, notFoundMsg string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrAlreadyExists):
		// The browser client expects 400 rather than 409 here.
		writeError(w, http.StatusBadRequest, conflictMsg)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
			ctxutil.RequestIDAttr(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
