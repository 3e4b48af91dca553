package rest

import (
	"net/http"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Dataset     *DatasetHandler
	Users       *UserHandler
	Annotations *AnnotationHandler
	Frontend    *FrontendHandler
	Health      *HealthHandler
}

// NewRouter registers every route on a fresh ServeMux. Middleware is
// applied by the caller.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Frontend.Index)
	mux.HandleFunc("GET /static/", h.Frontend.Static)

	mux.HandleFunc("GET /api/dialogues", h.Dataset.Dialogues)
	mux.HandleFunc("GET /api/cognitive_dimensions", h.Dataset.CognitiveDimensions)

	mux.HandleFunc("GET /api/users", h.Users.List)
	mux.HandleFunc("POST /api/register_user", h.Users.Register)
	mux.HandleFunc("POST /api/login", h.Users.Login)

	mux.HandleFunc("POST /api/save_annotation", h.Annotations.Save)
	mux.HandleFunc("GET /api/annotation/{username}/{entry_id}", h.Annotations.Get)
	mux.HandleFunc("GET /api/annotations/{username}", h.Annotations.List)
	mux.HandleFunc("GET /api/progress/{username}", h.Annotations.Progress)

	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	return mux
}
