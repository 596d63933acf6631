package dto

import "time"

// CellStyles carries the resolved presentation styles for one dashboard row.
// Empty strings mean no styling applies.
type CellStyles struct {
	Customer   string `json:"customer,omitempty"`
	Category   string `json:"category,omitempty"`
	Status     string `json:"status,omitempty"`
	Response   string `json:"response,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

// DashboardRow is one evaluated ticket as rendered by the monitoring view.
type DashboardRow struct {
	ID                 int        `json:"id"`
	Customer           string     `json:"customer"`
	Author             string     `json:"author"`
	Category           string     `json:"category"`
	Status             string     `json:"status"`
	ReceivedAt         time.Time  `json:"received_at"`
	InProgressAt       *time.Time `json:"in_progress_at,omitempty"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
	ResponseDeadline   *time.Time `json:"response_deadline,omitempty"`
	ResolutionDeadline *time.Time `json:"resolution_deadline,omitempty"`
	ResponseStatus     string     `json:"response_status"`
	ResolutionStatus   string     `json:"resolution_status"`
	Styles             CellStyles `json:"styles"`
	Error              string     `json:"error,omitempty"`
}

// DashboardResponse wraps a full evaluation cycle for the view.
type DashboardResponse struct {
	CycleID     string         `json:"cycle_id"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
	FromCache   bool           `json:"from_cache"`
	Total       int            `json:"total"`
	Rows        []DashboardRow `json:"rows"`
}

// CustomerSummary describes one configured customer.
type CustomerSummary struct {
	Name        string `json:"name"`
	ServiceMode string `json:"service_mode"`
}
