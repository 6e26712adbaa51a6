package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{
		"pending", "payment_uploaded", "confirmed", "shipped", "delivered", "cancelled",
	} {
		st, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, Status(raw), st)
	}

	_, err := ParseStatus("refunded")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestCanTransition_ForwardChain(t *testing.T) {
	chain := []Status{StatusPending, StatusPaymentUploaded, StatusConfirmed, StatusShipped, StatusDelivered}

	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, CanTransition(chain[i], chain[i+1]), "%s -> %s", chain[i], chain[i+1])
	}

	// skipping a step is not allowed
	assert.False(t, CanTransition(StatusPending, StatusConfirmed))
	assert.False(t, CanTransition(StatusPaymentUploaded, StatusShipped))
	assert.False(t, CanTransition(StatusConfirmed, StatusDelivered))

	// nor is going backwards
	assert.False(t, CanTransition(StatusShipped, StatusConfirmed))
	assert.False(t, CanTransition(StatusPaymentUploaded, StatusPending))
}

func TestCanTransition_CancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusPaymentUploaded, StatusConfirmed, StatusShipped} {
		assert.True(t, CanTransition(from, StatusCancelled), string(from))
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, from := range []Status{StatusDelivered, StatusCancelled} {
		require.True(t, from.Terminal())
		for _, to := range []Status{StatusPending, StatusPaymentUploaded, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}
