package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/lcibils/monitor-neuratek/internal/api/dto"
	"github.com/lcibils/monitor-neuratek/internal/domain"
	"github.com/lcibils/monitor-neuratek/internal/service"
	"github.com/lcibils/monitor-neuratek/internal/view"
	apperrors "github.com/lcibils/monitor-neuratek/pkg/util"
)

// DashboardHandler serves the evaluated ticket view.
type DashboardHandler struct {
	evaluations *service.EvaluationService
	customers   map[string]*domain.CustomerSLAConfig
	styles      *view.Styles
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(evaluations *service.EvaluationService, customers map[string]*domain.CustomerSLAConfig, styles *view.Styles) *DashboardHandler {
	return &DashboardHandler{evaluations: evaluations, customers: customers, styles: styles}
}

// Dashboard GET /api/v1/dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	result := h.evaluations.Latest()
	if result == nil {
		return apperrors.NewNotFound("evaluation result", map[string]any{
			"reason": "no refresh cycle has completed yet",
		})
	}

	rows := make([]dto.DashboardRow, 0, len(result.Tickets))
	for i := range result.Tickets {
		rows = append(rows, h.row(&result.Tickets[i]))
	}

	return c.JSON(dto.DashboardResponse{
		CycleID:     result.CycleID,
		EvaluatedAt: result.EvaluatedAt,
		FromCache:   result.FromCache,
		Total:       len(rows),
		Rows:        rows,
	})
}

// Refresh POST /api/v1/refresh triggers an immediate evaluation cycle.
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.evaluations.RunCycle(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"cycle_id":   result.CycleID,
		"tickets":    len(result.Tickets),
		"from_cache": result.FromCache,
	}})
}

// Customers GET /api/v1/customers lists the configured SLA contracts.
func (h *DashboardHandler) Customers(c *fiber.Ctx) error {
	items := make([]dto.CustomerSummary, 0, len(h.customers))
	for _, customer := range h.customers {
		items = append(items, dto.CustomerSummary{
			Name:        customer.Name,
			ServiceMode: string(customer.ServiceMode),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return c.JSON(fiber.Map{"data": items})
}

func (h *DashboardHandler) row(ticket *domain.EvaluatedTicket) dto.DashboardRow {
	snap := &ticket.Snapshot
	return dto.DashboardRow{
		ID:                 snap.ID,
		Customer:           snap.CustomerName,
		Author:             snap.Author,
		Category:           snap.Category,
		Status:             snap.Status,
		ReceivedAt:         snap.CreatedAt,
		InProgressAt:       snap.EnteredInProgressAt,
		ResolvedAt:         snap.ResolvedAt,
		ResponseDeadline:   ticket.Deadlines.Response,
		ResolutionDeadline: ticket.Deadlines.Resolution,
		ResponseStatus:     string(ticket.ResponseStatus),
		ResolutionStatus:   string(ticket.ResolutionStatus),
		Styles: dto.CellStyles{
			Customer:   string(h.styles.Customer(snap.CustomerName)),
			Category:   string(h.styles.Category(snap.Category)),
			Status:     string(h.styles.Status(snap.Status)),
			Response:   string(h.styles.SLA(ticket.ResponseStatus)),
			Resolution: string(h.styles.SLA(ticket.ResolutionStatus)),
		},
		Error: ticket.Err,
	}
}
