package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service    Service
	sessionKey func(*http.Request) string
}

// NewHandler creates an order handler. sessionKey extracts the cart key
// used when a create request has no item override.
func NewHandler(service Service, sessionKey func(*http.Request) string) *Handler {
	return &Handler{service: service, sessionKey: sessionKey}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)            // POST /orders
		r.Get("/{id}", h.getOrder)            // GET  /orders/{id}
		r.Put("/{id}/status", h.updateStatus) // PUT  /orders/{id}/status
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errorBody{Message: "Invalid request body", Error: err.Error()})
		return
	}

	o, err := h.service.Create(r.Context(), h.sessionKey(r), req)
	if err != nil {
		var missing *MissingFieldsError
		switch {
		case errors.As(err, &missing):
			respond(w, http.StatusBadRequest, errorBody{Message: missing.Error()})
		case errors.Is(err, ErrEmptyCart):
			respond(w, http.StatusBadRequest, errorBody{Message: "Cart is empty. Please add items to your cart before checkout."})
		default:
			respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to create order", Error: err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, notFoundBody{
				Message: "Order not found. The order may have been cleared due to server restart.",
				OrderID: id,
			})
			return
		}
		respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to fetch order", Error: err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errorBody{Message: "Invalid request body", Error: err.Error()})
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownStatus):
			respond(w, http.StatusBadRequest, errorBody{Message: "Unknown order status", Error: err.Error()})
		case errors.Is(err, ErrNotFound):
			respond(w, http.StatusNotFound, errorBody{Message: "Order not found"})
		case errors.Is(err, ErrInvalidTransition):
			respond(w, http.StatusUnprocessableEntity, errorBody{Message: "Invalid status transition", Error: err.Error()})
		default:
			respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to update order status", Error: err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, o)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type notFoundBody struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
