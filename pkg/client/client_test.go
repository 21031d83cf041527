package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noir-essentials/storefront-backend/internal/modules/cart"
	"github.com/noir-essentials/storefront-backend/internal/modules/catalog"
	"github.com/noir-essentials/storefront-backend/internal/modules/discount"
	"github.com/noir-essentials/storefront-backend/internal/modules/order"
	"github.com/noir-essentials/storefront-backend/internal/modules/payment"
)

// newTestServer wires the full API the same way cmd/api does.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	router := chi.NewRouter()

	catalogService := catalog.NewService(catalog.NewMemoryRepository(catalog.SeedProducts()))
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	cartService := cart.NewService(cart.NewMemoryRepository(), catalogService)
	cart.NewHandler(cartService).RegisterRoutes(router)

	resolver := discount.NewStaticResolver()
	discount.NewHandler(resolver).RegisterRoutes(router)

	sessionKey := func(r *http.Request) string {
		if key := r.Header.Get("X-Session-ID"); key != "" {
			return key
		}
		return cart.DefaultSessionKey
	}
	orderService := order.NewService(order.NewMemoryRepository(), cartService, resolver)
	order.NewHandler(orderService, sessionKey).RegisterRoutes(router)

	gateway := payment.NewBankTransferGateway("Noir Essentials Escrow", "1234567890", "Access Bank")
	payment.NewHandler(payment.NewService(gateway, orderService)).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FullCheckoutRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL, WithSessionID("roundtrip"))
	ctx := context.Background()

	products, err := c.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 4)

	items, err := c.AddToCart(ctx, "1", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = c.AddToCart(ctx, "1", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	code, err := c.ValidateDiscount(ctx, "save10")
	require.NoError(t, err)
	assert.Equal(t, float64(10), code.Discount)

	o, err := c.CreateOrder(ctx, order.ContactInfo{
		FullName:       "Ada Obi",
		Email:          "ada@example.com",
		Phone:          "+2348012345678",
		Address:        "12 Marina Road, Lagos",
		AccountDetails: "0123456789 GTBank",
	}, "SAVE10", items)
	require.NoError(t, err)
	assert.Equal(t, float64(228000), o.Subtotal) // 76000 x 3
	assert.Equal(t, float64(22800), o.Discount)
	assert.Equal(t, float64(205200), o.Total)
	assert.Equal(t, order.StatusPending, o.Status)

	account, err := c.GetPaymentAccount(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Access Bank", account.BankName)

	confirmed, err := c.ConfirmPayment(ctx, o.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, confirmed.Status)

	completed, err := c.UpdateOrderStatus(ctx, o.ID, order.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, completed.Status)

	require.NoError(t, c.ClearCart(ctx))
	items, err = c.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_NotFoundErrors(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.GetProduct(ctx, "999")
	assert.True(t, IsNotFound(err))

	_, err = c.GetOrder(ctx, "order-after-restart")
	require.True(t, IsNotFound(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "server restart")

	_, err = c.ValidateDiscount(ctx, "NOPE")
	assert.True(t, IsNotFound(err))
}

func TestClient_CancelPaymentIsLenient(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	err := c.CancelPayment(context.Background(), "order-long-gone")

	assert.NoError(t, err)
}
