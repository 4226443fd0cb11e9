package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/rama-judicial/escalafon/internal/offices"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func officeType(s offices.Specialty, c offices.Category) *offices.OfficeType {
	return &offices.OfficeType{Specialty: s, Category: c}
}

func TestCountBusinessDaysPlainWeek(t *testing.T) {
	set := Resolve(officeType(offices.SpecialtyCivil, offices.CategoryCircuito))

	count, err := CountBusinessDays(set, date(2024, time.June, 17), date(2024, time.June, 21))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 business days, got %d", count)
	}
}

func TestCountBusinessDaysSkipsWeekends(t *testing.T) {
	set := make(NonWorkingSet)

	// Friday through Monday spans a weekend.
	count, err := CountBusinessDays(set, date(2024, time.June, 14), date(2024, time.June, 17))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 business days, got %d", count)
	}
}

func TestCountBusinessDaysSkipsHolidays(t *testing.T) {
	set := Resolve(officeType(offices.SpecialtyCivil, offices.CategoryCircuito))

	// June 3 2024 is an observed Monday holiday.
	count, err := CountBusinessDays(set, date(2024, time.June, 3), date(2024, time.June, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 business days, got %d", count)
	}
}

func TestCountBusinessDaysInvalidRange(t *testing.T) {
	set := make(NonWorkingSet)

	_, err := CountBusinessDays(set, date(2024, time.March, 10), date(2024, time.March, 1))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestResolveCascade(t *testing.T) {
	tests := []struct {
		name string
		t    *offices.OfficeType
		from time.Time
		to   time.Time
		want int
	}{
		{
			// Sentence execution offices work through the January recess.
			name: "ejecucion works january recess",
			t:    officeType(offices.SpecialtyEjecucionPenas, offices.CategoryCircuito),
			from: date(2024, time.January, 1),
			to:   date(2024, time.January, 12),
			want: 8,
		},
		{
			// Full-calendar offices rest during the January recess.
			name: "circuit civil rests january recess",
			t:    officeType(offices.SpecialtyCivil, offices.CategoryCircuito),
			from: date(2024, time.January, 1),
			to:   date(2024, time.January, 12),
			want: 2,
		},
		{
			// Untyped offices fall back to the full calendar.
			name: "nil type uses full calendar",
			t:    nil,
			from: date(2024, time.January, 1),
			to:   date(2024, time.January, 12),
			want: 2,
		},
		{
			// Municipal penal offices rest the whole holy week.
			name: "municipal penal rests holy week",
			t:    officeType(offices.SpecialtyPenal, offices.CategoryMunicipal),
			from: date(2024, time.March, 25),
			to:   date(2024, time.March, 29),
			want: 0,
		},
		{
			// Sentence execution offices work Tuesday and Wednesday of holy week.
			name: "ejecucion works early holy week",
			t:    officeType(offices.SpecialtyEjecucionPenas, offices.CategoryCircuito),
			from: date(2024, time.March, 25),
			to:   date(2024, time.March, 29),
			want: 2,
		},
		{
			name: "promiscuous family matches ejecucion calendar",
			t:    officeType(offices.SpecialtyFamiliaPromiscuo, offices.CategoryMunicipal),
			from: date(2024, time.January, 1),
			to:   date(2024, time.January, 12),
			want: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Resolve(tt.t)

			count, err := CountBusinessDays(set, tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if count != tt.want {
				t.Errorf("expected %d business days, got %d", tt.want, count)
			}
		})
	}
}

func TestMergeUnion(t *testing.T) {
	a := NonWorkingSet{"2024-3": {1: true}}
	b := NonWorkingSet{"2024-3": {4: true}, "2024-4": {2: true}}

	merged := Merge(a, b)

	for _, d := range []time.Time{
		date(2024, time.March, 1),
		date(2024, time.March, 4),
		date(2024, time.April, 2),
	} {
		if !merged.Contains(d) {
			t.Errorf("expected %s in merged set", d.Format(time.DateOnly))
		}
	}

	if len(a["2024-3"]) != 1 {
		t.Error("merge modified its input")
	}
}

func TestContainsIgnoresUnknownMonths(t *testing.T) {
	set := Resolve(nil)

	if set.Contains(date(2030, time.January, 1)) {
		t.Error("expected unknown year to report no listed days")
	}
}
