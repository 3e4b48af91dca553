package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/appraisal-annotator/internal/service/registry"
)

type registryService interface {
	List(ctx context.Context) ([]string, error)
	Register(ctx context.Context, input registry.RegisterInput) (string, error)
	Login(ctx context.Context, input registry.LoginInput) (string, error)
}

// UserHandler serves the annotator registry.
type UserHandler struct {
	svc          registryService
	log          *slog.Logger
	maxBodyBytes int64
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc registryService, logger *slog.Logger, maxBodyBytes int64) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "users"), maxBodyBytes: maxBodyBytes}
}

type usernameRequest struct {
	Username string `json:"username"`
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Register handles POST /api/register_user.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	username, err := h.svc.Register(r.Context(), registry.RegisterInput{Username: req.Username})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, "User registered successfully", username)
}

// Login handles POST /api/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	username, err := h.svc.Login(r.Context(), registry.LoginInput{Username: req.Username})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, "Login successful", username)
}

func (h *UserHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	handleError(w, r, h.log, err, "Username already exists", "Username not found")
}
