package domain

import "time"

// StatusCategory is the presentation bucket derived for one deadline column.
type StatusCategory string

const (
	StatusNone     StatusCategory = "none"
	StatusOK       StatusCategory = "ok"
	StatusWarning  StatusCategory = "warning"
	StatusBreached StatusCategory = "breached"
)

// DeadlineColumn identifies which of the two tracked deadlines a value
// belongs to.
type DeadlineColumn string

const (
	ColumnResponse   DeadlineColumn = "response"
	ColumnResolution DeadlineColumn = "resolution"
)

// DeadlinePair holds the two deadlines tracked per ticket. A nil deadline
// means no SLA applies for that column; it is distinct from a configuration
// error, which is surfaced to the caller instead.
type DeadlinePair struct {
	Response   *time.Time
	Resolution *time.Time
}

// EvaluatedTicket is the product of one ticket passing through the deadline
// engine and the status classifier. It lives for a single cycle.
type EvaluatedTicket struct {
	Snapshot         TicketSnapshot
	Deadlines        DeadlinePair
	ResponseStatus   StatusCategory
	ResolutionStatus StatusCategory
	// Err carries the configuration or input error that prevented
	// evaluation of this ticket, so one broken customer entry does not
	// take down the whole cycle.
	Err string
}

// EvaluationResult is the full output of one refresh cycle.
type EvaluationResult struct {
	CycleID     string
	EvaluatedAt time.Time
	FromCache   bool
	Tickets     []EvaluatedTicket
}

// BreachRecord captures a newly detected deadline breach for the audit log.
type BreachRecord struct {
	ID           string
	TicketID     int
	CustomerName string
	Category     string
	Column       DeadlineColumn
	Deadline     time.Time
	DetectedAt   time.Time
}
