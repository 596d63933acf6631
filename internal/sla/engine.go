package sla

import (
	"github.com/lcibils/monitor-neuratek/internal/domain"
	apperrors "github.com/lcibils/monitor-neuratek/pkg/util"
)

// DeadlineEngine composes the business calendar and the rule lookup to
// produce the two deadlines tracked per ticket. Tickets are independent of
// each other, so a batch may be computed concurrently as long as the shared
// customer configuration stays immutable.
type DeadlineEngine struct {
	calendar *BusinessCalendar
	// estimateCategory is the category whose resolution deadline comes
	// from the tracker-side estimated date instead of calendar arithmetic.
	estimateCategory string
}

// NewDeadlineEngine constructs the engine.
func NewDeadlineEngine(calendar *BusinessCalendar, estimateCategory string) *DeadlineEngine {
	return &DeadlineEngine{calendar: calendar, estimateCategory: estimateCategory}
}

// ComputeDeadlines derives the response and resolution deadlines for one
// ticket. Customers with service mode none yield an empty pair. Unknown
// categories or SLA types propagate as configuration errors; the engine
// never substitutes a default deadline.
func (e *DeadlineEngine) ComputeDeadlines(customer *domain.CustomerSLAConfig, ticket *domain.TicketSnapshot) (domain.DeadlinePair, error) {
	if err := validateMilestones(ticket); err != nil {
		return domain.DeadlinePair{}, err
	}

	if customer.ServiceMode == domain.ServiceModeNone {
		return domain.DeadlinePair{}, nil
	}

	var pair domain.DeadlinePair

	responseHours, err := ResolveHours(customer, ticket.Category, domain.SLAInitialResponse)
	if err != nil {
		return domain.DeadlinePair{}, err
	}
	response, err := e.calendar.Advance(customer, ticket.CreatedAt, responseHours)
	if err != nil {
		return domain.DeadlinePair{}, err
	}
	pair.Response = &response

	if ticket.Category == e.estimateCategory {
		// Pass-through: the tracker estimate is the deadline, when present.
		pair.Resolution = ticket.ExternallyEstimatedDate
		return pair, nil
	}

	resolutionHours, err := ResolveHours(customer, ticket.Category, domain.SLAEstimatedResolution)
	if err != nil {
		return domain.DeadlinePair{}, err
	}
	resolution, err := e.calendar.Advance(customer, ticket.CreatedAt, resolutionHours)
	if err != nil {
		return domain.DeadlinePair{}, err
	}
	pair.Resolution = &resolution

	return pair, nil
}

func validateMilestones(ticket *domain.TicketSnapshot) error {
	if ticket.EnteredInProgressAt != nil && ticket.EnteredInProgressAt.Before(ticket.CreatedAt) {
		return apperrors.NewInvalidInput("in-progress milestone precedes ticket creation", map[string]any{
			"ticket_id": ticket.ID,
		})
	}
	if ticket.ResolvedAt != nil && ticket.ResolvedAt.Before(ticket.CreatedAt) {
		return apperrors.NewInvalidInput("resolved milestone precedes ticket creation", map[string]any{
			"ticket_id": ticket.ID,
		})
	}
	return nil
}
