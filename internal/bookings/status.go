package bookings

// Status is the persisted lifecycle state of a booking
type Status string

const (
	// StatusPending: the row exists but the commit has not finished
	StatusPending Status = "pending"

	// StatusConfirmed: receipt stored, seats reserved, commit complete
	StatusConfirmed Status = "confirmed"

	// StatusCancelled: released by an admin; seats freed
	StatusCancelled Status = "cancelled"

	// StatusNeedsReconciliation: the commit failed after the row was
	// persisted. An operator has to inspect and resolve it by hand; the
	// system never retries on its own.
	StatusNeedsReconciliation Status = "needs_reconciliation"
)

// CountingStatuses lists the states whose bookings still consume seats and
// stock. Reconciliation cases count until an operator resolves them, so
// inventory errs toward underselling, never overselling. Repository queries
// filter on this list.
func CountingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusNeedsReconciliation}
}
