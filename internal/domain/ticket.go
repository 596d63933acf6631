package domain

import "time"

// TicketSnapshot is a read-only view of one tracker issue as of a single
// evaluation cycle. Milestone timestamps are nil until the ticket reaches
// that lifecycle stage.
type TicketSnapshot struct {
	ID           int
	CustomerName string
	Author       string
	Category     string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	// EnteredInProgressAt is when the ticket first transitioned into the
	// in-progress tracker status; it closes the initial-response window.
	EnteredInProgressAt *time.Time
	// ResolvedAt is when the ticket first transitioned into the resolved
	// tracker status; it closes the resolution window.
	ResolvedAt *time.Time
	// ExternallyEstimatedDate is the tracker-side estimated date, used
	// verbatim as the resolution deadline for the estimate-driven category.
	ExternallyEstimatedDate *time.Time
}
