package events

import (
	"time"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// EventSLABreached fires once per ticket/column when a deadline is
	// first observed breached.
	EventSLABreached EventType = "sla_breached"
	// EventCycleCompleted fires after every evaluation cycle.
	EventCycleCompleted EventType = "cycle_completed"
)

// Event represents a domain event emitted by the evaluation service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SLABreachedPayload describes a newly detected breach.
type SLABreachedPayload struct {
	TicketID     int                   `json:"ticket_id"`
	CustomerName string                `json:"customer_name"`
	Category     string                `json:"category"`
	Column       domain.DeadlineColumn `json:"column"`
	Deadline     time.Time             `json:"deadline"`
}

// CycleCompletedPayload summarizes one refresh cycle.
type CycleCompletedPayload struct {
	CycleID   string `json:"cycle_id"`
	Tickets   int    `json:"tickets"`
	FromCache bool   `json:"from_cache"`
}
