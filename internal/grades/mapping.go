package grades

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/query"
	"github.com/rama-judicial/escalafon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "period_grades", "g").
	Project("id", "ID").
	Project("official_id", "OfficialID").
	Project("period", "Period").
	Project("state", "State").
	Project("weighted_score", "WeightedScore").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "Period", Descending: true},
	{Field: "CreatedAt", Descending: true},
}

// Filters contains optional filtering criteria for grade queries.
// Nil fields are ignored.
type Filters struct {
	OfficialID *uuid.UUID `json:"official_id,omitempty"`
	Period     *int       `json:"period,omitempty"`
	State      *State     `json:"state,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("OfficialID", f.OfficialID).
		WhereEquals("State", f.State)

	if f.Period != nil {
		b.WhereEquals("Period", *f.Period)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("official_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.OfficialID = &id
		}
	}
	if v := values.Get("period"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			f.Period = &p
		}
	}
	if v := values.Get("state"); v != "" {
		s := State(v)
		if s.Valid() {
			f.State = &s
		}
	}

	return f
}

func scanGrade(s repository.Scanner) (PeriodGrade, error) {
	var g PeriodGrade
	err := s.Scan(
		&g.ID,
		&g.OfficialID,
		&g.Period,
		&g.State,
		&g.WeightedScore,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

func scanOfficeGrade(s repository.Scanner) (OfficeGrade, error) {
	var o OfficeGrade
	err := s.Scan(
		&o.ID,
		&o.GradeID,
		&o.OfficeID,
		&o.OfficeLaborDays,
		&o.LaborDaysWorked,
		&o.DiscountedDays,
		&o.HearingsScore,
		&o.EfficiencyScore,
	)
	return o, err
}

func scanSubfactor(s repository.Scanner) (SubfactorRow, error) {
	var r SubfactorRow
	err := s.Scan(
		&r.ID,
		&r.OfficeGradeID,
		&r.Class,
		&r.Score,
		&r.MaxPoints,
		&r.OfficeBaseLoad,
		&r.OfficialBaseLoad,
		&r.ProportionalLoad,
		&r.MinimalLoad,
		&r.Outflow,
	)
	return r, err
}

func scanConsolidated(s repository.Scanner) (ConsolidatedRow, error) {
	var r ConsolidatedRow
	err := s.Scan(
		&r.ID,
		&r.OfficeGradeID,
		&r.Category,
		&r.From,
		&r.To,
		&r.LaborDays,
		&r.InitialInventory,
		&r.Income,
		&r.EffectiveLoad,
		&r.Outflow,
		&r.Settlements,
		&r.FinalInventory,
		&r.Remaining,
	)
	return r, err
}

func scanNote(s repository.Scanner) (ReviewNote, error) {
	var n ReviewNote
	err := s.Scan(
		&n.ID,
		&n.GradeID,
		&n.Author,
		&n.Notes,
		&n.ResultingState,
		&n.CreatedAt,
	)
	return n, err
}
