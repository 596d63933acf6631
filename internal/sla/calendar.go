package sla

import (
	"fmt"
	"strings"
	"time"

	"github.com/lcibils/monitor-neuratek/internal/domain"
	apperrors "github.com/lcibils/monitor-neuratek/pkg/util"
)

const clockLayout = "15:04"

var weekdayNames = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// BusinessCalendar advances timestamps by whole business hours under a
// customer's calendar configuration. It has no side effects: the same
// customer, start, and hour count always produce the same result.
type BusinessCalendar struct {
	holidays *HolidayCalendar
}

// NewBusinessCalendar builds a calendar backed by the given holiday provider.
func NewBusinessCalendar(holidays *HolidayCalendar) *BusinessCalendar {
	return &BusinessCalendar{holidays: holidays}
}

// Advance returns start moved forward by hours business hours.
//
// Mode full adds plain wall-clock hours. Mode partial consumes only hours
// inside the customer's daily window, on enabled weekdays that are neither
// country holidays nor customer custom holidays; landing exactly on the
// daily close rolls the result to the next opening, which keeps split
// additions associative. Mode none is a caller error: the engine suppresses
// deadlines for such customers before reaching the calendar.
func (c *BusinessCalendar) Advance(customer *domain.CustomerSLAConfig, start time.Time, hours int) (time.Time, error) {
	if hours < 0 {
		return time.Time{}, apperrors.NewInvalidInput("hours to add must be non-negative", map[string]any{
			"hours": hours,
		})
	}

	switch customer.ServiceMode {
	case domain.ServiceModeFull:
		return start.Add(time.Duration(hours) * time.Hour), nil
	case domain.ServiceModePartial:
		window, err := newBusinessWindow(customer)
		if err != nil {
			return time.Time{}, err
		}
		return c.advancePartial(window, start, hours), nil
	case domain.ServiceModeNone:
		return time.Time{}, apperrors.NewInvalidInput("calendar advance called for service mode none", map[string]any{
			"customer": customer.Name,
		})
	default:
		return time.Time{}, apperrors.NewConfigurationError("unknown service mode", map[string]any{
			"customer":     customer.Name,
			"service_mode": string(customer.ServiceMode),
		})
	}
}

func (c *BusinessCalendar) advancePartial(w *businessWindow, start time.Time, hours int) time.Time {
	remaining := time.Duration(hours) * time.Hour
	cur := start
	for {
		if !c.workingDay(w, cur) {
			cur = w.openOn(nextDay(cur))
			continue
		}
		open, close := w.openOn(cur), w.closeOn(cur)
		if cur.Before(open) {
			cur = open
		}
		if !cur.Before(close) {
			cur = w.openOn(nextDay(cur))
			continue
		}
		available := close.Sub(cur)
		if remaining < available {
			return cur.Add(remaining)
		}
		remaining -= available
		cur = w.openOn(nextDay(cur))
	}
}

// workingDay checks the weekday mask and both holiday sets against the
// actual calendar date being walked, so multi-year advancements stay
// correct.
func (c *BusinessCalendar) workingDay(w *businessWindow, t time.Time) bool {
	if !w.weekdays[t.Weekday()] {
		return false
	}
	if c.holidays.IsHoliday(t) {
		return false
	}
	_, custom := w.custom[t.Format(dateLayout)]
	return !custom
}

// businessWindow is the parsed form of a customer's BusinessHours block plus
// its custom holiday set.
type businessWindow struct {
	startHour, startMin int
	endHour, endMin     int
	weekdays            [7]bool
	custom              map[string]struct{}
}

func newBusinessWindow(customer *domain.CustomerSLAConfig) (*businessWindow, error) {
	bh := customer.BusinessHours
	if bh == nil {
		return nil, apperrors.NewConfigurationError("business hours required for partial service mode", map[string]any{
			"customer": customer.Name,
		})
	}

	start, err := time.Parse(clockLayout, bh.Start)
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid business hours start", map[string]any{
			"customer": customer.Name,
			"start":    bh.Start,
		})
	}
	end, err := time.Parse(clockLayout, bh.End)
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid business hours end", map[string]any{
			"customer": customer.Name,
			"end":      bh.End,
		})
	}
	if !start.Before(end) {
		return nil, apperrors.NewConfigurationError("business hours start must precede end", map[string]any{
			"customer": customer.Name,
			"start":    bh.Start,
			"end":      bh.End,
		})
	}

	w := &businessWindow{
		startHour: start.Hour(),
		startMin:  start.Minute(),
		endHour:   end.Hour(),
		endMin:    end.Minute(),
		custom:    make(map[string]struct{}, len(customer.CustomHolidays)),
	}

	mask := strings.Fields(bh.WeekMask)
	if len(mask) == 0 {
		return nil, apperrors.NewConfigurationError("week mask required for partial service mode", map[string]any{
			"customer": customer.Name,
		})
	}
	for _, token := range mask {
		day, ok := weekdayNames[token]
		if !ok {
			return nil, apperrors.NewConfigurationError(fmt.Sprintf("unknown weekday %q in week mask", token), map[string]any{
				"customer":  customer.Name,
				"week_mask": bh.WeekMask,
			})
		}
		w.weekdays[day] = true
	}

	for _, raw := range customer.CustomHolidays {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, apperrors.NewConfigurationError("invalid custom holiday date", map[string]any{
				"customer": customer.Name,
				"date":     raw,
			})
		}
		w.custom[d.Format(dateLayout)] = struct{}{}
	}

	return w, nil
}

func (w *businessWindow) openOn(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), w.startHour, w.startMin, 0, 0, t.Location())
}

func (w *businessWindow) closeOn(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), w.endHour, w.endMin, 0, 0, t.Location())
}

func nextDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}
