package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noir-essentials/storefront-backend/internal/modules/order"
)

func setupPaymentServer(t *testing.T) (*httptest.Server, order.Service) {
	t.Helper()
	svc, orders, _ := setupPaymentTest(t)
	router := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, orders
}

func TestAccountEndpoint(t *testing.T) {
	srv, _ := setupPaymentServer(t)

	resp, err := http.Get(srv.URL + "/payment/account/order-anything")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var account Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&account))
	assert.Equal(t, "Noir Essentials Escrow", account.AccountName)
	assert.Equal(t, "1234567890", account.AccountNumber)
	assert.Equal(t, "Access Bank", account.BankName)
}

func TestConfirmEndpoint_KnownOrder(t *testing.T) {
	srv, orders := setupPaymentServer(t)
	o := createOrder(t, orders)

	resp, err := http.Post(srv.URL+"/payment/confirm/"+o.ID, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool         `json:"success"`
		Order   *order.Order `json:"order"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, order.StatusProcessing, body.Order.Status)
}

func TestConfirmEndpoint_FallbackRecreation(t *testing.T) {
	srv, orders := setupPaymentServer(t)
	o := createOrder(t, orders)

	snapshot := *o
	snapshot.ID = "order-cached-copy"
	buf, err := json.Marshal(map[string]*order.Order{"orderData": &snapshot})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/payment/confirm/order-cached-copy", "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	recreated, err := orders.GetByID(context.Background(), "order-cached-copy")
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, recreated.Status)
}

func TestConfirmEndpoint_UnknownOrderNoFallback(t *testing.T) {
	srv, _ := setupPaymentServer(t)

	resp, err := http.Post(srv.URL+"/payment/confirm/order-gone", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "server restart")
}

func TestCancelEndpoint_UnknownOrderStillSucceeds(t *testing.T) {
	srv, _ := setupPaymentServer(t)

	resp, err := http.Post(srv.URL+"/payment/cancel/order-gone", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body CancelResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
}
