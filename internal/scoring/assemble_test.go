package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/rama-judicial/escalafon/internal/calendar"
	"github.com/rama-judicial/escalafon/internal/offices"
	"github.com/rama-judicial/escalafon/internal/records"
)

func circuitPenal() *offices.OfficeType {
	return &offices.OfficeType{
		Specialty: offices.SpecialtyPenal,
		Category:  offices.CategoryCircuito,
	}
}

func guaranteesType() *offices.OfficeType {
	return &offices.OfficeType{
		Specialty: offices.SpecialtyControlGarantias,
		Category:  offices.CategoryMunicipal,
	}
}

func TestComputeOfficeGradeWithHearingsBonus(t *testing.T) {
	in := OfficeInput{
		OfficialID: officialA,
		Type:       circuitPenal(),
		Calendar:   make(calendar.NonWorkingSet),
		Records: []records.Record{
			// June 3 to June 28 2024 spans 20 weekdays.
			statRow(officialA, records.ClassOral, day(time.June, 3), day(time.June, 28), 10, 10, 20, 0),
		},
		Hearings: HearingTotals{
			Scheduled:          10,
			Attended:           8,
			PostponedExternal:  1,
			PostponedJustified: 1,
		},
	}

	res, err := ComputeOfficeGrade(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.OfficeLaborDays != 20 {
		t.Errorf("expected 20 office labor days, got %d", res.OfficeLaborDays)
	}
	if res.LaborDaysWorked != 20 {
		t.Errorf("expected 20 days worked, got %d", res.LaborDaysWorked)
	}
	if !closeTo(res.HearingsScore, 5) {
		t.Errorf("expected full hearings bonus, got %v", res.HearingsScore)
	}
	// Oral score 40 plus the bonus is the only applicable term.
	if !closeTo(res.EfficiencyScore, 45) {
		t.Errorf("expected efficiency 45, got %v", res.EfficiencyScore)
	}
}

func TestComputeOfficeGradeGuaranteesSkipsHearings(t *testing.T) {
	in := OfficeInput{
		OfficialID: officialA,
		Type:       guaranteesType(),
		Calendar:   make(calendar.NonWorkingSet),
		Records: []records.Record{
			statRow(officialA, records.ClassGarantias, day(time.June, 3), day(time.June, 28), 10, 10, 20, 0),
		},
		Hearings: HearingTotals{Scheduled: 10, Attended: 10},
	}

	res, err := ComputeOfficeGrade(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.HearingsScore != 0 {
		t.Errorf("expected no hearings bonus for guarantees office, got %v", res.HearingsScore)
	}
	// Guarantees track carries the full 45 points on its own.
	if !closeTo(res.EfficiencyScore, 45) {
		t.Errorf("expected efficiency 45, got %v", res.EfficiencyScore)
	}
}

func TestComputeOfficeGradeEfficiencyAveragesTracks(t *testing.T) {
	in := OfficeInput{
		OfficialID: officialA,
		Type:       circuitPenal(),
		Calendar:   make(calendar.NonWorkingSet),
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.June, 3), day(time.June, 28), 0, 20, 10, 0),
			withLoad(statRow(officialA, records.ClassEscrito, day(time.June, 3), day(time.June, 28), 0, 10, 10, 0), 5),
		},
	}

	res, err := ComputeOfficeGrade(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Oral scores 10/20*40 = 20, written 10/10*45 = 45, mean 32.5.
	if !closeTo(res.EfficiencyScore, 32.5) {
		t.Errorf("expected efficiency 32.5, got %v", res.EfficiencyScore)
	}
}

func TestComputeOfficeGradeTutelaWindowNotDoubleCounted(t *testing.T) {
	tutela := statRow(officialA, records.ClassTutelas, day(time.June, 10), day(time.June, 14), 0, 3, 2, 0)
	tutela.Category = "Movimiento de Tutelas"

	in := OfficeInput{
		OfficialID: officialA,
		Type:       circuitPenal(),
		Calendar:   make(calendar.NonWorkingSet),
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.June, 3), day(time.June, 28), 10, 10, 20, 0),
			tutela,
		},
	}

	res, err := ComputeOfficeGrade(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The tutela window sits inside the oral one; those days already count.
	if res.OfficeLaborDays != 20 {
		t.Errorf("expected 20 office labor days, got %d", res.OfficeLaborDays)
	}
	if res.LaborDaysWorked != 20 {
		t.Errorf("expected 20 days worked, got %d", res.LaborDaysWorked)
	}
}

func TestEngagedDaysMergesOverlappingWindows(t *testing.T) {
	set := make(calendar.NonWorkingSet)
	recs := []records.Record{
		statRow(officialA, records.ClassOral, day(time.June, 10), day(time.June, 14), 0, 0, 0, 0),
		statRow(officialA, records.ClassOral, day(time.June, 3), day(time.June, 28), 0, 0, 0, 0),
		statRow(officialA, records.ClassOral, day(time.July, 1), day(time.July, 5), 0, 0, 0, 0),
	}

	days, err := engagedDays(set, recs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// June 3 to 28 holds 20 weekdays and absorbs the overlapped week; the
	// July window adds its own 5.
	if days != 25 {
		t.Errorf("expected 25 days, got %d", days)
	}
}

func TestComputeOfficeGradeDeductibleLeaveReducesWorkedDays(t *testing.T) {
	in := OfficeInput{
		OfficialID: officialA,
		Type:       circuitPenal(),
		Calendar:   make(calendar.NonWorkingSet),
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.June, 3), day(time.June, 28), 10, 10, 20, 0),
		},
		DeductibleLeaveDays: 5,
	}

	res, err := ComputeOfficeGrade(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.LaborDaysWorked != 15 {
		t.Errorf("expected 15 days worked, got %d", res.LaborDaysWorked)
	}
}

func TestComputeOfficeGradeNegativeWorkedDays(t *testing.T) {
	in := OfficeInput{
		OfficialID: officialA,
		Type:       circuitPenal(),
		Calendar:   make(calendar.NonWorkingSet),
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.June, 3), day(time.June, 28), 10, 10, 20, 0),
		},
		DeductibleLeaveDays: 25,
	}

	_, err := ComputeOfficeGrade(in)
	if !errors.Is(err, ErrNegativeWorkedDays) {
		t.Errorf("expected ErrNegativeWorkedDays, got %v", err)
	}
}

func TestComputeOfficeGradeNoRecords(t *testing.T) {
	res, err := ComputeOfficeGrade(OfficeInput{
		OfficialID: officialA,
		Calendar:   make(calendar.NonWorkingSet),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.OfficeLaborDays != 0 || res.EfficiencyScore != 0 {
		t.Errorf("expected zero result, got %+v", res)
	}
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []OfficeScore
		want   float64
	}{
		{
			name:   "single office",
			scores: []OfficeScore{{Efficiency: 38, DaysWorked: 200}},
			want:   38,
		},
		{
			name: "weighted by days worked",
			scores: []OfficeScore{
				{Efficiency: 45, DaysWorked: 100},
				{Efficiency: 30, DaysWorked: 50},
			},
			want: 40,
		},
		{
			name:   "no days worked",
			scores: []OfficeScore{{Efficiency: 45, DaysWorked: 0}},
			want:   0,
		},
		{
			name:   "empty",
			scores: nil,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedScore(tt.scores)
			if !closeTo(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func withLoad(r records.Record, load int) records.Record {
	r.EffectiveLoad = load
	return r
}
