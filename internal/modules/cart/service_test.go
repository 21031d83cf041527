package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noir-essentials/storefront-backend/internal/modules/catalog"
)

func setupCartTest(t *testing.T) Service {
	t.Helper()
	finder := catalog.NewService(catalog.NewMemoryRepository(catalog.SeedProducts()))
	return NewService(NewMemoryRepository(), finder)
}

func TestAdd_NewItem(t *testing.T) {
	svc := setupCartTest(t)

	items, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "1", Quantity: 2})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAdd_MergesQuantities(t *testing.T) {
	svc := setupCartTest(t)

	_, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "1", Quantity: 1})
	require.NoError(t, err)
	items, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "1", Quantity: 2})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAdd_CoercesQuantityToAtLeastOne(t *testing.T) {
	svc := setupCartTest(t)

	for _, qty := range []float64{0, -3, 0.4} {
		items, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "2", Quantity: qty})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, items[0].Quantity, 1)
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc := setupCartTest(t)

	_, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "999", Quantity: 1})

	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestAdd_EmptyProductID(t *testing.T) {
	svc := setupCartTest(t)

	_, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "  ", Quantity: 1})

	assert.ErrorIs(t, err, ErrInvalidProductID)
}

func TestUpdate_ReplacesQuantity(t *testing.T) {
	svc := setupCartTest(t)
	_, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "1", Quantity: 5})
	require.NoError(t, err)

	items, err := svc.Update(context.Background(), "s1", "1", UpdateItemRequest{Quantity: 2})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestUpdate_ZeroRemovesItem(t *testing.T) {
	svc := setupCartTest(t)
	_, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "1", Quantity: 1})
	require.NoError(t, err)

	items, err := svc.Update(context.Background(), "s1", "1", UpdateItemRequest{Quantity: 0})

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate_NegativeRemovesItem(t *testing.T) {
	svc := setupCartTest(t)
	_, err := svc.Add(context.Background(), "s1", AddItemRequest{ProductID: "1", Quantity: 2})
	require.NoError(t, err)

	items, err := svc.Update(context.Background(), "s1", "1", UpdateItemRequest{Quantity: -5})

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate_MissingItem(t *testing.T) {
	svc := setupCartTest(t)

	_, err := svc.Update(context.Background(), "s1", "1", UpdateItemRequest{Quantity: 2})

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemove_OnlyTargetItem(t *testing.T) {
	svc := setupCartTest(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "s1", AddItemRequest{ProductID: "1", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", AddItemRequest{ProductID: "2", Quantity: 3})
	require.NoError(t, err)

	items, err := svc.Remove(ctx, "s1", "1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].Product.ID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestRemove_AbsentItem(t *testing.T) {
	svc := setupCartTest(t)

	_, err := svc.Remove(context.Background(), "s1", "1")

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestClear_EmptiesCart(t *testing.T) {
	svc := setupCartTest(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "s1", AddItemRequest{ProductID: "1", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", AddItemRequest{ProductID: "2", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "s1"))

	items, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGet_SnapshotDoesNotAliasStore(t *testing.T) {
	svc := setupCartTest(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "s1", AddItemRequest{ProductID: "1", Quantity: 1})
	require.NoError(t, err)

	snapshot, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	snapshot[0].Quantity = 99

	fresh, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, fresh[0].Quantity)
}

func TestCarts_AreSessionScoped(t *testing.T) {
	svc := setupCartTest(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "alice", AddItemRequest{ProductID: "1", Quantity: 1})
	require.NoError(t, err)

	items, err := svc.Get(ctx, "bob")

	require.NoError(t, err)
	assert.Empty(t, items)
}
