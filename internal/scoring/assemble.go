package scoring

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/internal/calendar"
	"github.com/rama-judicial/escalafon/internal/offices"
	"github.com/rama-judicial/escalafon/internal/records"
)

// ErrNegativeWorkedDays indicates deductible leave exceeding the days the
// official's reporting windows cover. The inputs are inconsistent and the
// grade cannot be assembled.
var ErrNegativeWorkedDays = errors.New("deductible leave exceeds reported labor days")

// Points available per subfactor. Guarantees offices carry the hearings
// bonus inside the oral ceiling since they score no hearings.
const (
	OralMaxPoints       = 40.0
	GuaranteesMaxPoints = 45.0
	WrittenMaxPoints    = 45.0
	HearingsMaxPoints   = 5.0
)

// HearingTotals is the summed hearing statistics for an official at an
// office over the grading period.
type HearingTotals struct {
	Scheduled            int
	Attended             int
	PostponedExternal    int
	PostponedJustified   int
	PostponedUnjustified int
}

// Add accumulates another row into the totals.
func (t *HearingTotals) Add(scheduled, attended, external, justified, unjustified int) {
	t.Scheduled += scheduled
	t.Attended += attended
	t.PostponedExternal += external
	t.PostponedJustified += justified
	t.PostponedUnjustified += unjustified
}

// OfficeInput carries everything needed to assemble one official's grade at
// one office. Records holds every official's rows at the office for the
// period, before reclassification.
type OfficeInput struct {
	OfficialID          uuid.UUID
	Type                *offices.OfficeType
	MaxCapacity         int
	Calendar            calendar.NonWorkingSet
	Records             []records.Record
	Hearings            HearingTotals
	DeductibleLeaveDays int
}

// OfficeResult is the assembled grade for one official at one office.
type OfficeResult struct {
	OfficeLaborDays int
	LaborDaysWorked int
	HearingsScore   float64
	EfficiencyScore float64
	Subfactors      []SubfactorResult
	Consolidated    []ConsolidatedRecord
}

// ComputeOfficeGrade assembles the office grade: reclassifies rows, counts
// the office window and the official's worked days over the governing
// track's reporting windows, scores the three subfactors with tutelas
// folded into the office's governing track, applies the hearings bonus,
// and averages the applicable subfactor terms into the efficiency score.
func ComputeOfficeGrade(in OfficeInput) (*OfficeResult, error) {
	recs := records.Reclassify(in.Records)
	if len(recs) == 0 {
		return &OfficeResult{}, nil
	}

	start, end := window(recs)
	officeDays, err := calendar.CountBusinessDays(in.Calendar, start, end)
	if err != nil {
		return nil, err
	}

	own := ownRecords(recs, in.OfficialID)
	consolidated, err := Consolidate(in.Calendar, own)
	if err != nil {
		return nil, err
	}

	split := records.Split(recs)
	guarantees := in.Type != nil && in.Type.Specialty.Guarantees()
	target := foldTarget(split, guarantees)

	// Worked days come from the governing track plus tutelas, so a
	// secondary-track row reported over the same span cannot count the
	// same days twice.
	engaged := append(
		ownRecords(split[target], in.OfficialID),
		ownRecords(split[records.ClassTutelas], in.OfficialID)...,
	)
	if len(engaged) == 0 {
		engaged = own
	}

	days, err := engagedDays(in.Calendar, engaged)
	if err != nil {
		return nil, err
	}

	worked := days - in.DeductibleLeaveDays
	if worked < 0 {
		return nil, ErrNegativeWorkedDays
	}

	oralMax := OralMaxPoints
	if guarantees {
		oralMax = GuaranteesMaxPoints
	}

	subfactors := []SubfactorResult{
		ComputeSubfactor(SubfactorInput{
			Class:             records.ClassOral,
			OfficialID:        in.OfficialID,
			OfficeLaborDays:   officeDays,
			OfficialLaborDays: worked,
			MaxPoints:         oralMax,
			MaxCapacity:       in.MaxCapacity,
			CapCapacity:       true,
			FoldTutelas:       target == records.ClassOral,
			Records:           split[records.ClassOral],
			Tutelas:           split[records.ClassTutelas],
		}),
		ComputeSubfactor(SubfactorInput{
			Class:             records.ClassGarantias,
			OfficialID:        in.OfficialID,
			OfficeLaborDays:   officeDays,
			OfficialLaborDays: worked,
			MaxPoints:         GuaranteesMaxPoints,
			FoldTutelas:       target == records.ClassGarantias,
			Records:           split[records.ClassGarantias],
			Tutelas:           split[records.ClassTutelas],
		}),
		ComputeSubfactor(SubfactorInput{
			Class:             records.ClassEscrito,
			OfficialID:        in.OfficialID,
			OfficeLaborDays:   officeDays,
			OfficialLaborDays: worked,
			MaxPoints:         WrittenMaxPoints,
			FoldTutelas:       target == records.ClassEscrito,
			Records:           split[records.ClassEscrito],
			Tutelas:           split[records.ClassTutelas],
		}),
	}

	hearingsScore := 0.0
	if !guarantees && in.Hearings.Scheduled > 0 {
		held := in.Hearings.Attended + in.Hearings.PostponedExternal + in.Hearings.PostponedJustified
		hearingsScore = float64(held) / float64(in.Hearings.Scheduled) * HearingsMaxPoints
	}

	var terms []float64
	for _, sf := range subfactors {
		if len(ownRecords(split[sf.Class], in.OfficialID)) == 0 {
			continue
		}
		term := sf.Score
		if sf.Class == records.ClassOral {
			term += hearingsScore
		}
		terms = append(terms, term)
	}

	efficiency := 0.0
	if len(terms) > 0 {
		for _, t := range terms {
			efficiency += t
		}
		efficiency /= float64(len(terms))
	}

	return &OfficeResult{
		OfficeLaborDays: officeDays,
		LaborDaysWorked: worked,
		HearingsScore:   hearingsScore,
		EfficiencyScore: efficiency,
		Subfactors:      subfactors,
		Consolidated:    consolidated,
	}, nil
}

// engagedDays counts business days over the union of the rows' reporting
// windows. Overlapping windows are merged first so a day reported under
// two categories counts once.
func engagedDays(set calendar.NonWorkingSet, recs []records.Record) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	sorted := make([]records.Record, len(recs))
	copy(sorted, recs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].From.Before(sorted[j].From)
	})

	total := 0
	start, end := sorted[0].From, sorted[0].To
	for _, r := range sorted[1:] {
		if !r.From.After(end) {
			if r.To.After(end) {
				end = r.To
			}
			continue
		}

		days, err := calendar.CountBusinessDays(set, start, end)
		if err != nil {
			return 0, err
		}
		total += days
		start, end = r.From, r.To
	}

	days, err := calendar.CountBusinessDays(set, start, end)
	if err != nil {
		return 0, err
	}
	return total + days, nil
}

// foldTarget picks the track that absorbs tutela load: guarantees offices
// fold into their own track, offices with written throughput fold into the
// written track, everyone else folds into oral.
func foldTarget(split map[records.Class][]records.Record, guarantees bool) records.Class {
	if guarantees {
		return records.ClassGarantias
	}
	for _, r := range split[records.ClassEscrito] {
		if r.EffectiveLoad > 0 {
			return records.ClassEscrito
		}
	}
	return records.ClassOral
}

// OfficeScore pairs an office efficiency score with the days the official
// worked there, for period-level weighting.
type OfficeScore struct {
	Efficiency float64
	DaysWorked int
}

// WeightedScore averages office efficiency scores weighted by days worked.
// Returns 0 when no days were worked anywhere.
func WeightedScore(scores []OfficeScore) float64 {
	var sum, weight float64
	for _, s := range scores {
		sum += s.Efficiency * float64(s.DaysWorked)
		weight += float64(s.DaysWorked)
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}
