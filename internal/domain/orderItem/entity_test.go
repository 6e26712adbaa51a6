package orderitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	oi, err := New("row-1", "ord-1", "p1", "Tee", 2, "red", "M", 1000)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), oi.Subtotal())
	assert.Equal(t, "red", oi.Color)

	// variant-less rows are fine
	_, err = New("row-2", "ord-1", "p2", "Sticker", 1, "", "", 0)
	assert.NoError(t, err)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "ord-1", "p1", "Tee", 1, "", "", 100)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New("row-1", " ", "p1", "Tee", 1, "", "", 100)
	assert.ErrorIs(t, err, ErrInvalidOrderID)

	_, err = New("row-1", "ord-1", "", "Tee", 1, "", "", 100)
	assert.ErrorIs(t, err, ErrInvalidProductID)

	_, err = New("row-1", "ord-1", "p1", "Tee", 0, "", "", 100)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = New("row-1", "ord-1", "p1", "Tee", 1, "", "", -1)
	assert.ErrorIs(t, err, ErrInvalidUnitPrice)
}
