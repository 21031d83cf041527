package discount

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_KnownCode(t *testing.T) {
	r := NewStaticResolver()

	code, err := r.Validate(context.Background(), "SAVE10")

	require.NoError(t, err)
	assert.Equal(t, "SAVE10", code.Code)
	assert.Equal(t, float64(10), code.Discount)
	assert.True(t, code.Valid)
}

func TestValidate_CaseInsensitive(t *testing.T) {
	r := NewStaticResolver()

	code, err := r.Validate(context.Background(), "welcome20")

	require.NoError(t, err)
	assert.Equal(t, "WELCOME20", code.Code)
	assert.Equal(t, float64(20), code.Discount)
}

func TestValidate_UnknownCode(t *testing.T) {
	r := NewStaticResolver()

	_, err := r.Validate(context.Background(), "NOPE50")

	assert.ErrorIs(t, err, ErrNotFound)
}
