package view

import (
	"testing"

	"github.com/lcibils/monitor-neuratek/internal/config"
	"github.com/lcibils/monitor-neuratek/internal/domain"
)

func TestStylesLookup(t *testing.T) {
	file := &config.SLAFile{
		General: config.GeneralSection{
			Categories: []config.NamedStyle{
				{Name: "incident", Style: "background-color:#fdd"},
			},
			SLAStyles: map[string]string{
				"ok":       "background-color:#cfc",
				"breached": "background-color:#fcc",
			},
			StatusStyles: map[string]string{"Resolved": "color:green"},
			TableStyles:  map[string]string{"header": "border:1px"},
		},
		Customers: []config.CustomerSection{
			{Name: "Acme", Style: "color:#225"},
		},
	}

	styles := NewStyles(file)

	if got := styles.SLA(domain.StatusOK); got != "background-color:#cfc" {
		t.Errorf("SLA(ok) = %q", got)
	}
	if got := styles.Category("incident"); got != "background-color:#fdd" {
		t.Errorf("Category(incident) = %q", got)
	}
	if got := styles.Customer("Acme"); got != "color:#225" {
		t.Errorf("Customer(Acme) = %q", got)
	}
	if got := styles.Status("Resolved"); got != "color:green" {
		t.Errorf("Status(Resolved) = %q", got)
	}
	if got := styles.Table("header"); got != "border:1px" {
		t.Errorf("Table(header) = %q", got)
	}
}

func TestStylesMissingEntriesReturnSentinel(t *testing.T) {
	styles := NewStyles(&config.SLAFile{})

	if got := styles.SLA(domain.StatusWarning); got != NoStyle {
		t.Errorf("missing SLA style = %q, want NoStyle", got)
	}
	if got := styles.Customer("Unknown"); got != NoStyle {
		t.Errorf("missing customer style = %q, want NoStyle", got)
	}
	if got := styles.Category(""); got != NoStyle {
		t.Errorf("missing category style = %q, want NoStyle", got)
	}
}
