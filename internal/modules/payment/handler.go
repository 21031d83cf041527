package payment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/noir-essentials/storefront-backend/internal/modules/order"
)

// Handler exposes payment HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/payment", func(r chi.Router) {
		r.Get("/account/{orderId}", h.getAccount) // GET  /payment/account/{orderId}
		r.Post("/confirm/{orderId}", h.confirm)   // POST /payment/confirm/{orderId}
		r.Post("/cancel/{orderId}", h.cancel)     // POST /payment/cancel/{orderId}
	})
}

// confirmRequest optionally carries the client's cached order snapshot,
// used to recreate the order when the ledger lost it.
type confirmRequest struct {
	OrderData *order.Order `json:"orderData"`
}

type confirmResponse struct {
	Success bool         `json:"success"`
	Order   *order.Order `json:"order"`
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.Account(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to fetch payment account"})
		return
	}
	respond(w, http.StatusOK, account)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	// The body is optional; an empty or malformed one just means no
	// fallback snapshot.
	var req confirmRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	o, err := h.service.Confirm(r.Context(), orderID, req.OrderData)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound), errors.Is(err, order.ErrInvalidSnapshot):
			respond(w, http.StatusNotFound, notFoundBody{
				Message: "Order not found. The order may have been cleared due to server restart. Please try creating a new order.",
				OrderID: orderID,
			})
		default:
			respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to confirm payment", Error: err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, confirmResponse{Success: true, Order: o})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Cancel(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		respond(w, http.StatusInternalServerError, errorBody{Message: "Failed to cancel payment", Error: err.Error()})
		return
	}
	respond(w, http.StatusOK, result)
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
