package sla

import (
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// HolidayCalendar resolves country-wide public holidays per calendar year.
// Years are computed on first use and cached, so an advancement that walks
// past the precomputed range still sees correct holidays. The mutex ensures
// a year is computed at most once and readers never observe a partial set.
type HolidayCalendar struct {
	mu    sync.Mutex
	years map[int]map[string]struct{}
}

// NewHolidayCalendar returns a calendar preloaded with the current and next
// year, matching the window the monitor normally touches.
func NewHolidayCalendar(now time.Time) *HolidayCalendar {
	c := &HolidayCalendar{years: make(map[int]map[string]struct{})}
	c.yearSet(now.Year())
	c.yearSet(now.Year() + 1)
	return c
}

// IsHoliday reports whether the calendar date of t is a public holiday.
func (c *HolidayCalendar) IsHoliday(t time.Time) bool {
	set := c.yearSet(t.Year())
	_, ok := set[t.Format(dateLayout)]
	return ok
}

func (c *HolidayCalendar) yearSet(year int) map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.years[year]; ok {
		return set
	}
	set := make(map[string]struct{})
	for _, d := range uruguayHolidays(year) {
		set[d.Format(dateLayout)] = struct{}{}
	}
	c.years[year] = set
	return set
}

// uruguayHolidays lists the Uruguayan public holidays for one year: the
// fixed national dates, the Easter-derived days (Carnival Monday/Tuesday and
// Tourism Week Thursday/Friday), and the three civic dates that law moves to
// the nearest Monday.
func uruguayHolidays(year int) []time.Time {
	easter := easterSunday(year)

	days := []time.Time{
		date(year, time.January, 1),   // Año Nuevo
		date(year, time.January, 6),   // Día de los Niños
		easter.AddDate(0, 0, -48),     // Lunes de Carnaval
		easter.AddDate(0, 0, -47),     // Martes de Carnaval
		easter.AddDate(0, 0, -3),      // Jueves de Semana de Turismo
		easter.AddDate(0, 0, -2),      // Viernes de Semana de Turismo
		date(year, time.May, 1),       // Día de los Trabajadores
		date(year, time.June, 19),     // Natalicio de Artigas
		date(year, time.July, 18),     // Jura de la Constitución
		date(year, time.August, 25),   // Declaratoria de la Independencia
		date(year, time.November, 2),  // Día de los Difuntos
		date(year, time.December, 25), // Navidad
	}

	// Ley 16.805: these observances shift to the nearest Monday.
	days = append(days,
		nearestMonday(date(year, time.April, 19)),  // Desembarco de los 33 Orientales
		nearestMonday(date(year, time.May, 18)),    // Batalla de Las Piedras
		nearestMonday(date(year, time.October, 12)), // Día de la Raza
	)
	return days
}

// nearestMonday applies the Uruguayan movable-holiday rule: Tuesday and
// Wednesday observances move back to Monday, Thursday and Friday move
// forward; weekend and Monday dates stay put.
func nearestMonday(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Tuesday:
		return d.AddDate(0, 0, -1)
	case time.Wednesday:
		return d.AddDate(0, 0, -2)
	case time.Thursday:
		return d.AddDate(0, 0, 4)
	case time.Friday:
		return d.AddDate(0, 0, 3)
	}
	return d
}

// easterSunday computes Easter for the Gregorian calendar using the
// anonymous algorithm (Meeus/Jones/Butcher).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
