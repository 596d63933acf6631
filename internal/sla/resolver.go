package sla

import (
	"github.com/lcibils/monitor-neuratek/internal/domain"
	apperrors "github.com/lcibils/monitor-neuratek/pkg/util"
)

// ResolveHours looks up the configured SLA hour count for a customer,
// category, and SLA type. Customers with service mode none get 0 hours; the
// engine still suppresses deadline emission for them rather than treating 0
// as "due now".
//
// Missing category and missing SLA type are reported as distinct
// configuration errors to keep diagnostics useful. Configured values are
// validated here rather than at load time, so a broken entry only surfaces
// when a ticket actually needs it.
func ResolveHours(customer *domain.CustomerSLAConfig, category string, slaType domain.SLAType) (int, error) {
	if customer.ServiceMode == domain.ServiceModeNone {
		return 0, nil
	}

	thresholds, ok := customer.Thresholds[category]
	if !ok {
		return 0, apperrors.NewConfigurationError("category not found in SLA configuration", map[string]any{
			"customer": customer.Name,
			"category": category,
		})
	}

	hours, ok := thresholds[slaType]
	if !ok {
		return 0, apperrors.NewConfigurationError("SLA type not found for category", map[string]any{
			"customer": customer.Name,
			"category": category,
			"sla_type": string(slaType),
		})
	}

	if hours < 0 {
		return 0, apperrors.NewConfigurationError("configured SLA hours must be non-negative", map[string]any{
			"customer": customer.Name,
			"category": category,
			"sla_type": string(slaType),
			"hours":    hours,
		})
	}

	return hours, nil
}
