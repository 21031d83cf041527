package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/noir-essentials/storefront-backend/internal/modules/catalog"
)

// DefaultSessionKey is used when a client does not identify its session.
// Sessionless clients all share one cart, matching the original demo.
const DefaultSessionKey = "default"

// Handler exposes cart HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)                  // GET    /cart
		r.Post("/", h.addItem)                 // POST   /cart
		r.Delete("/", h.clearCart)             // DELETE /cart
		r.Put("/{productId}", h.updateItem)    // PUT    /cart/{productId}
		r.Delete("/{productId}", h.removeItem) // DELETE /cart/{productId}
	})
}

// sessionKey scopes the cart to the caller's session when one is
// provided. The demo client never sends the header.
func sessionKey(r *http.Request) string {
	if key := r.Header.Get("X-Session-ID"); key != "" {
		return key
	}
	return DefaultSessionKey
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Get(r.Context(), sessionKey(r))
	if err != nil {
		respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to fetch cart"})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errorBody{Message: "Invalid request body", Error: err.Error()})
		return
	}
	items, err := h.service.Add(r.Context(), sessionKey(r), req)
	if err != nil {
		h.writeError(w, err, "Failed to add item to cart")
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errorBody{Message: "Invalid request body", Error: err.Error()})
		return
	}
	items, err := h.service.Update(r.Context(), sessionKey(r), productID, req)
	if err != nil {
		h.writeError(w, err, "Failed to update cart item")
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	items, err := h.service.Remove(r.Context(), sessionKey(r), productID)
	if err != nil {
		h.writeError(w, err, "Failed to remove item from cart")
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), sessionKey(r)); err != nil {
		respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to clear cart"})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidProductID):
		respond(w, http.StatusBadRequest, errorBody{Message: "Invalid product ID"})
	case errors.Is(err, catalog.ErrNotFound):
		respond(w, http.StatusNotFound, errorBody{Message: "Product not found"})
	case errors.Is(err, ErrItemNotFound):
		respond(w, http.StatusNotFound, errorBody{Message: "Item not found in cart"})
	default:
		respond(w, http.StatusInternalServerError, errorBody{Message: fallback, Error: err.Error()})
	}
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
