package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/internal/records"
)

var (
	officialA = uuid.New()
	officialB = uuid.New()
)

func statRow(official uuid.UUID, class records.Class, from, to time.Time, inv, income, outflow, settlements int) records.Record {
	return records.Record{
		ID:               uuid.New(),
		OfficialID:       official,
		Class:            class,
		Category:         "Procesos Ordinarios",
		From:             from,
		To:               to,
		InitialInventory: inv,
		Income:           income,
		Outflow:          outflow,
		Settlements:      settlements,
	}
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeSubfactorSingleOfficial(t *testing.T) {
	in := SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   227,
		OfficialLaborDays: 227,
		MaxPoints:         OralMaxPoints,
		CapCapacity:       true,
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.January, 1), day(time.November, 30), 50, 100, 120, 0),
		},
	}

	res := ComputeSubfactor(in)

	if !closeTo(res.OfficeBaseLoad, 150) {
		t.Errorf("expected office base load 150, got %v", res.OfficeBaseLoad)
	}
	if !closeTo(res.OfficialBaseLoad, 150) {
		t.Errorf("expected official base load 150, got %v", res.OfficialBaseLoad)
	}
	if !closeTo(res.MinimalLoad, 150) {
		t.Errorf("expected minimal load 150, got %v", res.MinimalLoad)
	}
	if !closeTo(res.Score, 32) {
		t.Errorf("expected score 32, got %v", res.Score)
	}
}

func TestComputeSubfactorScoreCappedAtMaxPoints(t *testing.T) {
	in := SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         OralMaxPoints,
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.January, 1), day(time.June, 30), 10, 20, 500, 0),
		},
	}

	res := ComputeSubfactor(in)

	if !closeTo(res.Score, OralMaxPoints) {
		t.Errorf("expected score capped at %v, got %v", OralMaxPoints, res.Score)
	}
}

func TestComputeSubfactorNoOwnRecords(t *testing.T) {
	in := SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         OralMaxPoints,
		Records: []records.Record{
			statRow(officialB, records.ClassOral, day(time.January, 1), day(time.June, 30), 10, 20, 30, 0),
		},
	}

	res := ComputeSubfactor(in)

	if res.Score != 0 || res.OfficeBaseLoad != 0 {
		t.Errorf("expected zero result, got %+v", res)
	}
}

func TestComputeSubfactorZeroOfficeDays(t *testing.T) {
	in := SubfactorInput{
		Class:      records.ClassOral,
		OfficialID: officialA,
		MaxPoints:  OralMaxPoints,
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.January, 1), day(time.June, 30), 10, 20, 30, 0),
		},
	}

	res := ComputeSubfactor(in)

	if res.Score != 0 {
		t.Errorf("expected zero score with no office labor days, got %v", res.Score)
	}
}

func TestComputeSubfactorQ4IncomeExcluded(t *testing.T) {
	recs := []records.Record{
		statRow(officialA, records.ClassOral, day(time.January, 1), day(time.September, 30), 50, 100, 80, 0),
		statRow(officialA, records.ClassOral, day(time.October, 1), day(time.December, 31), 0, 60, 10, 0),
	}

	oral := ComputeSubfactor(SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         OralMaxPoints,
		Records:           recs,
	})

	if !closeTo(oral.OfficeBaseLoad, 150) {
		t.Errorf("expected Q4 income excluded from oral base, got %v", oral.OfficeBaseLoad)
	}

	for i := range recs {
		recs[i].Class = records.ClassGarantias
	}

	garantias := ComputeSubfactor(SubfactorInput{
		Class:             records.ClassGarantias,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         GuaranteesMaxPoints,
		Records:           recs,
	})

	if !closeTo(garantias.OfficeBaseLoad, 210) {
		t.Errorf("expected Q4 income kept in guarantees base, got %v", garantias.OfficeBaseLoad)
	}
}

func TestComputeSubfactorSharedOffice(t *testing.T) {
	in := SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 100,
		MaxPoints:         OralMaxPoints,
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.January, 1), day(time.June, 30), 100, 200, 90, 0),
			statRow(officialB, records.ClassOral, day(time.February, 1), day(time.June, 30), 40, 30, 50, 0),
		},
	}

	res := ComputeSubfactor(in)

	// Base counts the window-start inventory plus all income; the
	// colleague's outflow reduces only the official base.
	if !closeTo(res.OfficeBaseLoad, 330) {
		t.Errorf("expected office base load 330, got %v", res.OfficeBaseLoad)
	}
	if !closeTo(res.OfficialBaseLoad, 280) {
		t.Errorf("expected official base load 280, got %v", res.OfficialBaseLoad)
	}
	if !closeTo(res.ProportionalLoad, 165) {
		t.Errorf("expected proportional load 165, got %v", res.ProportionalLoad)
	}
	if !closeTo(res.Score, 90.0/165.0*OralMaxPoints) {
		t.Errorf("unexpected score %v", res.Score)
	}
}

func TestComputeSubfactorCapacityCap(t *testing.T) {
	in := SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         OralMaxPoints,
		MaxCapacity:       300,
		CapCapacity:       true,
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.January, 1), day(time.June, 30), 500, 500, 150, 0),
		},
	}

	res := ComputeSubfactor(in)

	if !closeTo(res.MinimalLoad, 300) {
		t.Errorf("expected capacity to bound minimal load at 300, got %v", res.MinimalLoad)
	}
	if !closeTo(res.Score, 20) {
		t.Errorf("expected score 20, got %v", res.Score)
	}
}

func TestComputeSubfactorCapacityIgnoredWithoutCap(t *testing.T) {
	in := SubfactorInput{
		Class:             records.ClassEscrito,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         WrittenMaxPoints,
		MaxCapacity:       300,
		Records: []records.Record{
			statRow(officialA, records.ClassEscrito, day(time.January, 1), day(time.June, 30), 500, 500, 150, 0),
		},
	}

	res := ComputeSubfactor(in)

	if !closeTo(res.MinimalLoad, 1000) {
		t.Errorf("expected minimal load 1000 without capacity cap, got %v", res.MinimalLoad)
	}
}

func TestComputeSubfactorTutelaFolding(t *testing.T) {
	tutela := func(official uuid.UUID, from time.Time, inv, income, outflow, settlements, finalInv int) records.Record {
		r := statRow(official, records.ClassTutelas, from, from.AddDate(0, 1, 0), inv, income, outflow, settlements)
		r.Category = "Movimiento de Tutelas"
		r.FinalInventory = finalInv
		return r
	}

	in := SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         OralMaxPoints,
		FoldTutelas:       true,
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.January, 1), day(time.June, 30), 50, 100, 60, 5),
		},
		Tutelas: []records.Record{
			tutela(officialA, day(time.January, 1), 5, 10, 8, 1, 0),
			tutela(officialB, day(time.March, 1), 0, 2, 4, 0, 0),
		},
	}

	res := ComputeSubfactor(in)

	// Base gains tutela start inventory and income; own tutela outflow and
	// settlements join the official outflow, the colleague's reduces the
	// official base.
	if !closeTo(res.OfficeBaseLoad, 150+17) {
		t.Errorf("expected office base load 167, got %v", res.OfficeBaseLoad)
	}
	if !closeTo(res.Outflow, 65+9) {
		t.Errorf("expected outflow 74, got %v", res.Outflow)
	}
	if !closeTo(res.OfficialBaseLoad, 167-4) {
		t.Errorf("expected official base load 163, got %v", res.OfficialBaseLoad)
	}
}

func TestComputeSubfactorTutelaLateStartNoInventory(t *testing.T) {
	tutela := statRow(officialA, records.ClassTutelas, day(time.March, 1), day(time.April, 1), 5, 10, 0, 0)
	tutela.Category = "Movimiento de Tutelas"

	in := SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         OralMaxPoints,
		FoldTutelas:       true,
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.January, 1), day(time.June, 30), 50, 100, 60, 0),
		},
		Tutelas: []records.Record{tutela},
	}

	res := ComputeSubfactor(in)

	// The tutela series opens after the grading window starts, so only its
	// income joins the base.
	if !closeTo(res.OfficeBaseLoad, 160) {
		t.Errorf("expected office base load 160, got %v", res.OfficeBaseLoad)
	}
}

func TestComputeSubfactorTutelaQ4FinalInventory(t *testing.T) {
	tutela := func(from time.Time, inv, income, finalInv int) records.Record {
		r := statRow(officialA, records.ClassTutelas, from, from.AddDate(0, 1, 0), inv, income, 0, 0)
		r.Category = "Movimiento de Tutelas"
		r.FinalInventory = finalInv
		return r
	}

	in := SubfactorInput{
		Class:             records.ClassOral,
		OfficialID:        officialA,
		OfficeLaborDays:   200,
		OfficialLaborDays: 200,
		MaxPoints:         OralMaxPoints,
		FoldTutelas:       true,
		Records: []records.Record{
			statRow(officialA, records.ClassOral, day(time.January, 1), day(time.December, 31), 0, 0, 0, 0),
		},
		Tutelas: []records.Record{
			tutela(day(time.January, 1), 5, 10, 0),
			tutela(day(time.November, 1), 0, 3, 6),
		},
	}

	res := ComputeSubfactor(in)

	// Last tutela report lands in Q4, so its unresolved final inventory
	// leaves the base: 5 + 10 + 3 - 6.
	if !closeTo(res.OfficeBaseLoad, 12) {
		t.Errorf("expected office base load 12, got %v", res.OfficeBaseLoad)
	}
}
