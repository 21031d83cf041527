package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	svc := NewService(NewMemoryRepository(SeedProducts()))

	products, err := svc.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, "Addisyn Shoulder Bag", products[0].Name)
	assert.Equal(t, float64(76000), products[0].Price)
	assert.True(t, products[0].Store.Verified)
}

func TestGetProduct(t *testing.T) {
	svc := NewService(NewMemoryRepository(SeedProducts()))

	p, err := svc.GetProduct(context.Background(), "3")

	require.NoError(t, err)
	assert.Equal(t, "Apple Bundle - MacBook", p.Name)
	assert.Equal(t, float64(1359000), p.Price)
}

func TestGetProduct_Unknown(t *testing.T) {
	svc := NewService(NewMemoryRepository(SeedProducts()))

	_, err := svc.GetProduct(context.Background(), "does-not-exist")

	assert.ErrorIs(t, err, ErrNotFound)
}
