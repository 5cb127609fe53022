package domain

// OutcomeStatus describes how a single recipient invocation ended.
type OutcomeStatus string

const (
	// Delivered means the listener's receive callback returned without error.
	Delivered OutcomeStatus = "DELIVERED"
	// Failed means the callback returned an error or panicked. The failure is
	// captured per recipient and never aborts sibling deliveries.
	Failed OutcomeStatus = "FAILED"
	// Cancelled means caller-supplied cancellation fired before or during the
	// recipient invocation.
	Cancelled OutcomeStatus = "CANCELLED"
)

// Outcome is the per-recipient result of a delivery. A recipient that was not
// registered at resolution time produces no Outcome at all.
type Outcome struct {
	Recipient Identifier
	Status    OutcomeStatus
	// Err carries the listener failure when Status is Failed or Cancelled.
	Err error
}

// Succeeded reports whether the word reached the recipient.
func (o Outcome) Succeeded() bool {
	return o.Status == Delivered
}
