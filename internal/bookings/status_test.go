package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountingStatuses(t *testing.T) {
	counting := CountingStatuses()

	// Unresolved reconciliation cases must keep consuming inventory.
	assert.Contains(t, counting, StatusPending)
	assert.Contains(t, counting, StatusConfirmed)
	assert.Contains(t, counting, StatusNeedsReconciliation)
	assert.NotContains(t, counting, StatusCancelled)
}
