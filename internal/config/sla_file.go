package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

// SLAFile is the on-disk SLA contract: the global category list, style
// tables for the dashboard, and one block per customer.
type SLAFile struct {
	General   GeneralSection    `yaml:"general"`
	Customers []CustomerSection `yaml:"customers"`
}

// GeneralSection holds settings shared by all customers.
type GeneralSection struct {
	Categories []NamedStyle `yaml:"categories"`
	// EstimateCategory is the category whose resolution deadline is the
	// tracker-provided estimated date rather than a calendar computation.
	EstimateCategory string            `yaml:"estimate_category"`
	TableStyles      map[string]string `yaml:"table_styles"`
	SLAStyles        map[string]string `yaml:"sla_styles"`
	StatusStyles     map[string]string `yaml:"status_styles"`
}

// NamedStyle pairs a display name with its CSS fragment.
type NamedStyle struct {
	Name  string `yaml:"name"`
	Style string `yaml:"style"`
}

// CustomerSection is one customer's SLA block.
type CustomerSection struct {
	Name          string              `yaml:"name"`
	Style         string              `yaml:"style"`
	ServiceMode   string              `yaml:"service_mode"`
	BusinessHours *BusinessHoursBlock `yaml:"business_hours"`
	CustomHolidays []string           `yaml:"custom_holidays"`
	// SLA maps category name -> SLA type -> hours.
	SLA map[string]map[string]int `yaml:"sla"`
}

// BusinessHoursBlock mirrors the YAML shape of a daily service window.
type BusinessHoursBlock struct {
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	WeekMask string `yaml:"week_mask"`
}

// LoadSLAFile parses and structurally validates the SLA configuration file.
// Business-hours windows and threshold values are deliberately left to
// resolution-time validation in the SLA core, so one malformed customer does
// not prevent the monitor from starting.
func LoadSLAFile(path string) (*SLAFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read SLA config: %w", err)
	}

	var file SLAFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse SLA config: %w", err)
	}

	if len(file.General.Categories) == 0 {
		return nil, fmt.Errorf("SLA config: general.categories must not be empty")
	}

	seen := make(map[string]struct{}, len(file.Customers))
	for _, c := range file.Customers {
		if c.Name == "" {
			return nil, fmt.Errorf("SLA config: customer with empty name")
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("SLA config: duplicate customer %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if !domain.ServiceMode(c.ServiceMode).Valid() {
			return nil, fmt.Errorf("SLA config: customer %q has unknown service_mode %q", c.Name, c.ServiceMode)
		}
	}

	return &file, nil
}

// CategoryNames lists the configured category names in file order.
func (f *SLAFile) CategoryNames() []string {
	names := make([]string, 0, len(f.General.Categories))
	for _, c := range f.General.Categories {
		names = append(names, c.Name)
	}
	return names
}

// CustomerConfigs converts the customer blocks into the immutable domain
// form shared across evaluation cycles.
func (f *SLAFile) CustomerConfigs() map[string]*domain.CustomerSLAConfig {
	customers := make(map[string]*domain.CustomerSLAConfig, len(f.Customers))
	for _, c := range f.Customers {
		cfg := &domain.CustomerSLAConfig{
			Name:           c.Name,
			ServiceMode:    domain.ServiceMode(c.ServiceMode),
			CustomHolidays: c.CustomHolidays,
		}
		if c.BusinessHours != nil {
			cfg.BusinessHours = &domain.BusinessHours{
				Start:    c.BusinessHours.Start,
				End:      c.BusinessHours.End,
				WeekMask: c.BusinessHours.WeekMask,
			}
		}
		if len(c.SLA) > 0 {
			cfg.Thresholds = make(map[string]map[domain.SLAType]int, len(c.SLA))
			for category, byType := range c.SLA {
				thresholds := make(map[domain.SLAType]int, len(byType))
				for slaType, hours := range byType {
					thresholds[domain.SLAType(slaType)] = hours
				}
				cfg.Thresholds[category] = thresholds
			}
		}
		customers[c.Name] = cfg
	}
	return customers
}
