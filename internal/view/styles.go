// Package view maps evaluation results to the presentation hints the
// dashboard consumes. Styling stays entirely outside the SLA core: a missing
// style is an explicit empty sentinel, never a swallowed lookup failure.
package view

import (
	"github.com/lcibils/monitor-neuratek/internal/config"
	"github.com/lcibils/monitor-neuratek/internal/domain"
)

// Style is a CSS fragment attached to a dashboard cell.
type Style string

// NoStyle is the explicit "no styling applies" sentinel.
const NoStyle Style = ""

// Styles resolves display styles by name from the SLA configuration file.
type Styles struct {
	table      map[string]Style
	sla        map[string]Style
	status     map[string]Style
	categories map[string]Style
	customers  map[string]Style
}

// NewStyles builds the lookup tables from a loaded SLA file.
func NewStyles(file *config.SLAFile) *Styles {
	s := &Styles{
		table:      toStyleMap(file.General.TableStyles),
		sla:        toStyleMap(file.General.SLAStyles),
		status:     toStyleMap(file.General.StatusStyles),
		categories: make(map[string]Style, len(file.General.Categories)),
		customers:  make(map[string]Style, len(file.Customers)),
	}
	for _, c := range file.General.Categories {
		s.categories[c.Name] = Style(c.Style)
	}
	for _, c := range file.Customers {
		s.customers[c.Name] = Style(c.Style)
	}
	return s
}

// Table returns the style for table chrome elements ("header", "cell", ...).
func (s *Styles) Table(name string) Style {
	return s.table[name]
}

// SLA returns the style for a deadline status category.
func (s *Styles) SLA(category domain.StatusCategory) Style {
	return s.sla[string(category)]
}

// Status returns the style for a tracker status name.
func (s *Styles) Status(name string) Style {
	return s.status[name]
}

// Category returns the style for a ticket category.
func (s *Styles) Category(name string) Style {
	return s.categories[name]
}

// Customer returns the style for a customer name.
func (s *Styles) Customer(name string) Style {
	return s.customers[name]
}

func toStyleMap(raw map[string]string) map[string]Style {
	styles := make(map[string]Style, len(raw))
	for name, style := range raw {
		styles[name] = Style(style)
	}
	return styles
}
