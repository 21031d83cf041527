package discount

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes discount HTTP endpoints.
type Handler struct{ resolver Resolver }

func NewHandler(resolver Resolver) *Handler { return &Handler{resolver: resolver} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/discount/{code}", h.validateCode) // GET /discount/{code}
}

func (h *Handler) validateCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.resolver.Validate(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, errorBody{Message: "Invalid discount code"})
			return
		}
		respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to validate discount code"})
		return
	}
	respond(w, http.StatusOK, code)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
