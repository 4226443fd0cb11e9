// Package scoring implements the grading arithmetic: subfactor scores from
// caseload statistics, consolidation of reporting windows, office grade
// assembly, and the weighted average across offices. Everything here is
// pure computation; persistence lives in the grades package.
package scoring

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/internal/records"
)

// SubfactorInput carries everything needed to score one subfactor for one
// official. Records holds every official's rows for the subfactor's class;
// Tutelas holds every official's tutela rows and is only consulted when
// FoldTutelas is set.
type SubfactorInput struct {
	Class             records.Class
	OfficialID        uuid.UUID
	OfficeLaborDays   int
	OfficialLaborDays int
	MaxPoints         float64
	MaxCapacity       int
	CapCapacity       bool
	FoldTutelas       bool
	Records           []records.Record
	Tutelas           []records.Record
}

// SubfactorResult is the scored outcome of one subfactor, with the
// intermediate loads kept for review.
type SubfactorResult struct {
	Class            records.Class `json:"class"`
	Score            float64       `json:"score"`
	MaxPoints        float64       `json:"max_points"`
	OfficeBaseLoad   float64       `json:"office_base_load"`
	OfficialBaseLoad float64       `json:"official_base_load"`
	ProportionalLoad float64       `json:"proportional_load"`
	MinimalLoad      float64       `json:"minimal_load"`
	Outflow          float64       `json:"outflow"`
}

// ComputeSubfactor scores one subfactor. The official's own rows define the
// grading window; office-wide rows reported inside that window build the
// base load. The score is the official's outflow against the smallest of
// the official base load, the proportional load, and the capacity load,
// scaled to MaxPoints.
func ComputeSubfactor(in SubfactorInput) SubfactorResult {
	res := SubfactorResult{Class: in.Class, MaxPoints: in.MaxPoints}

	own := ownRecords(in.Records, in.OfficialID)
	if len(own) == 0 {
		return res
	}

	winStart, winEnd := window(own)
	recs := withinWindow(in.Records, winStart, winEnd)

	// Fourth quarter income has no resolution horizon inside the period,
	// so it is excluded from the base everywhere except guarantees.
	excludeQ4 := in.Class != records.ClassGarantias

	var officeBase float64
	for _, r := range recs {
		if r.From.Equal(winStart) {
			officeBase += float64(r.InitialInventory)
		}
		if excludeQ4 && fourthQuarter(r.From) {
			continue
		}
		officeBase += float64(r.Income)
	}

	var officialOutflow, othersOutflow float64
	for _, r := range recs {
		if r.OfficialID == in.OfficialID {
			officialOutflow += float64(r.Outflow + r.Settlements)
		} else if !fourthQuarter(r.From) {
			othersOutflow += float64(r.Outflow)
		}
	}

	if in.FoldTutelas {
		tuts := withinWindow(in.Tutelas, winStart, winEnd)
		officeBase += tutelaBase(tuts, in.OfficialID, winStart)

		for _, t := range tuts {
			if t.OfficialID == in.OfficialID {
				officialOutflow += float64(t.Outflow + t.Settlements)
			} else if !fourthQuarter(t.From) {
				othersOutflow += float64(t.Outflow)
			}
		}
	}

	res.OfficeBaseLoad = officeBase
	res.OfficialBaseLoad = officeBase - othersOutflow
	res.Outflow = officialOutflow

	if in.OfficeLaborDays == 0 {
		return res
	}

	ratio := float64(in.OfficialLaborDays) / float64(in.OfficeLaborDays)
	res.ProportionalLoad = officeBase * ratio

	minimal := math.Min(res.OfficialBaseLoad, res.ProportionalLoad)
	if in.CapCapacity && in.MaxCapacity > 0 {
		minimal = math.Min(minimal, float64(in.MaxCapacity)*ratio)
	}
	res.MinimalLoad = minimal

	if minimal <= 0 {
		return res
	}

	res.Score = math.Min(officialOutflow/minimal*in.MaxPoints, in.MaxPoints)
	return res
}

// tutelaBase folds office-wide tutela load into the base. Start inventory
// counts only for tutela rows opening the grading window itself; a series
// that begins later carries no inventory into the base. When the last
// tutela report lands in the fourth quarter, the official's unresolved
// final inventory at that report is removed, since those cases cannot
// close inside the period.
func tutelaBase(tuts []records.Record, officialID uuid.UUID, winStart time.Time) float64 {
	if len(tuts) == 0 {
		return 0
	}

	tutEnd := tuts[0].From
	for _, t := range tuts[1:] {
		if t.From.After(tutEnd) {
			tutEnd = t.From
		}
	}

	var base float64
	for _, t := range tuts {
		if t.From.Equal(winStart) {
			base += float64(t.InitialInventory)
		}
		base += float64(t.Income)
	}

	if fourthQuarter(tutEnd) {
		for _, t := range tuts {
			if t.OfficialID == officialID && t.From.Equal(tutEnd) {
				base -= float64(t.FinalInventory)
			}
		}
	}

	return base
}

func ownRecords(recs []records.Record, officialID uuid.UUID) []records.Record {
	out := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if r.OfficialID == officialID {
			out = append(out, r)
		}
	}
	return out
}

func window(recs []records.Record) (time.Time, time.Time) {
	start := recs[0].From
	end := recs[0].To
	for _, r := range recs[1:] {
		if r.From.Before(start) {
			start = r.From
		}
		if r.To.After(end) {
			end = r.To
		}
	}
	return start, end
}

func withinWindow(recs []records.Record, start, end time.Time) []records.Record {
	out := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if !r.From.Before(start) && !r.From.After(end) {
			out = append(out, r)
		}
	}
	return out
}

func fourthQuarter(d time.Time) bool {
	return d.Month() >= time.October
}
