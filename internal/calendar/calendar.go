// Package calendar resolves the labor calendar that applies to a court
// office and counts the business days inside reporting windows. Weekends
// are always non-working; the remaining non-working days depend on the
// office type, since some specialties work through holy week and the
// judicial year-end recess.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/rama-judicial/escalafon/internal/offices"
)

// ErrInvalidRange indicates a counting window whose start falls after its end.
var ErrInvalidRange = errors.New("invalid date range")

// NonWorkingSet holds non-working days indexed by "year-month" key and
// day of month. Weekends are implicit and never stored.
type NonWorkingSet map[string]map[int]bool

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%d-%d", year, int(month))
}

// Contains reports whether the date is listed as non-working. Weekends are
// not consulted here; use IsBusinessDay for the full check.
func (s NonWorkingSet) Contains(d time.Time) bool {
	days, ok := s[monthKey(d.Year(), d.Month())]
	if !ok {
		return false
	}
	return days[d.Day()]
}

// Merge returns the union of the given sets. The inputs are not modified.
func Merge(sets ...NonWorkingSet) NonWorkingSet {
	out := make(NonWorkingSet)
	for _, set := range sets {
		for key, days := range set {
			dst, ok := out[key]
			if !ok {
				dst = make(map[int]bool, len(days))
				out[key] = dst
			}
			for day := range days {
				dst[day] = true
			}
		}
	}
	return out
}

// Resolve returns the non-working set for an office type. Sentence
// execution and promiscuous family offices observe only national holidays
// and judiciary closures. Municipal penal-family offices additionally rest
// during holy week. Every other office, including offices with no type
// assigned, also observes the year-end judicial recess.
func Resolve(t *offices.OfficeType) NonWorkingSet {
	if t != nil {
		switch {
		case t.Specialty == offices.SpecialtyEjecucionPenas,
			t.Specialty == offices.SpecialtyFamiliaPromiscuo:
			return Merge(baseHolidays, justiceClosures)
		case t.Category == offices.CategoryMunicipal && t.Specialty.PenalFamily():
			return Merge(baseHolidays, justiceClosures, holyWeek)
		}
	}
	return Merge(baseHolidays, justiceClosures, holyWeek, judicialRecess)
}

// IsBusinessDay reports whether the date is a working day under the set.
func IsBusinessDay(set NonWorkingSet, d time.Time) bool {
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return false
	}
	return !set.Contains(d)
}

// CountBusinessDays counts working days in the inclusive window [from, to].
func CountBusinessDays(set NonWorkingSet, from, to time.Time) (int, error) {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	if from.After(to) {
		return 0, fmt.Errorf("%w: %s after %s", ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(set, d) {
			count++
		}
	}
	return count, nil
}
