package domain

// ServiceMode selects the deadline arithmetic that applies to a customer.
type ServiceMode string

const (
	// ServiceModeNone disables SLA tracking; no deadlines are emitted.
	ServiceModeNone ServiceMode = "none"
	// ServiceModeFull adds wall-clock hours with no calendar awareness.
	ServiceModeFull ServiceMode = "full"
	// ServiceModePartial adds business hours, skipping off-hours, disabled
	// weekdays, and holidays.
	ServiceModePartial ServiceMode = "partial"
)

// Valid reports whether m is a recognized service mode.
func (m ServiceMode) Valid() bool {
	switch m {
	case ServiceModeNone, ServiceModeFull, ServiceModePartial:
		return true
	}
	return false
}

// SLAType names the deadline being computed for a ticket.
type SLAType string

const (
	SLAInitialResponse     SLAType = "initial_response"
	SLAEstimatedResolution SLAType = "estimated_resolution"
)

// BusinessHours describes a customer's daily service window. Start and End
// use the "15:04" clock format; WeekMask lists enabled weekdays as
// space-separated three-letter names ("Mon Tue Wed Thu Fri"). Values are kept
// in their configured form and validated when the calendar first uses them.
type BusinessHours struct {
	Start    string
	End      string
	WeekMask string
}

// CustomerSLAConfig is the per-customer SLA contract loaded from the SLA
// configuration file. It is immutable after load and shared across
// evaluation cycles.
type CustomerSLAConfig struct {
	Name           string
	ServiceMode    ServiceMode
	BusinessHours  *BusinessHours
	CustomHolidays []string // calendar dates, "2006-01-02"
	// Thresholds maps category name -> SLA type -> configured hour count.
	Thresholds map[string]map[SLAType]int
}
