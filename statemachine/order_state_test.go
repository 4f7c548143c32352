package statemachine

import (
	"testing"

	"restaurant-orders-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	for _, from := range models.AllStatuses() {
		for _, to := range models.AllStatuses() {
			assert.NoError(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	err := CanTransition(models.StatusPending, "destroyed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	err = CanTransition("archived", models.StatusPaid)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseTarget(t *testing.T) {
	status, err := ParseTarget("ready")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, status)

	_, err = ParseTarget("destroyed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Contains(t, err.Error(), "pending, ready, paid")
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusReady, models.StatusPaid},
		ValidTransitionsFrom(models.StatusPending))
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusPending, models.StatusReady},
		ValidTransitionsFrom(models.StatusPaid))
	assert.Empty(t, ValidTransitionsFrom("destroyed"))
	assert.Len(t, GetAllTransitions(), 6)
}
