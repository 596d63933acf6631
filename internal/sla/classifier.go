package sla

import (
	"time"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

// warningWindow is the fixed early-warning horizon: a pending deadline less
// than one hour away classifies as warning instead of ok.
const warningWindow = time.Hour

// Classify derives the status category for one deadline column.
//
// With a milestone present the classification is retrospective: the stage
// already happened, so only the milestone versus the deadline matters. With
// no milestone the deadline is compared against now, with the one-hour
// warning window before breach. A nil deadline means no SLA applies.
func Classify(deadline, milestone *time.Time, now time.Time) domain.StatusCategory {
	if deadline == nil {
		return domain.StatusNone
	}
	if milestone != nil {
		if milestone.After(*deadline) {
			return domain.StatusBreached
		}
		return domain.StatusOK
	}
	if now.After(*deadline) {
		return domain.StatusBreached
	}
	if !deadline.Before(now.Add(warningWindow)) {
		return domain.StatusOK
	}
	return domain.StatusWarning
}
