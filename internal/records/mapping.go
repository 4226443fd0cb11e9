package records

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/query"
	"github.com/rama-judicial/escalafon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "performance_records", "r").
	Project("id", "ID").
	Project("office_id", "OfficeID").
	Project("official_id", "OfficialID").
	Project("period", "Period").
	Project("class", "Class").
	Project("category", "Category").
	Project("from_date", "From").
	Project("to_date", "To").
	Project("initial_inventory", "InitialInventory").
	Project("income", "Income").
	Project("effective_load", "EffectiveLoad").
	Project("outflow", "Outflow").
	Project("settlements", "Settlements").
	Project("final_inventory", "FinalInventory").
	Project("remaining", "Remaining")

var defaultSort = []query.SortField{
	{Field: "From"},
	{Field: "Category"},
}

// Filters contains optional filtering criteria for record queries.
// Nil fields are ignored.
type Filters struct {
	OfficeID   *uuid.UUID `json:"office_id,omitempty"`
	OfficialID *uuid.UUID `json:"official_id,omitempty"`
	Class      *Class     `json:"class,omitempty"`
	Category   *string    `json:"category,omitempty"`
	Period     *int       `json:"period,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("OfficeID", f.OfficeID).
		WhereEquals("OfficialID", f.OfficialID).
		WhereEquals("Class", f.Class).
		WhereContains("Category", f.Category)

	if f.Period != nil {
		b.WhereEquals("Period", *f.Period)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("office_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.OfficeID = &id
		}
	}
	if v := values.Get("official_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.OfficialID = &id
		}
	}
	if v := values.Get("class"); v != "" {
		c := Class(v)
		if c.Valid() {
			f.Class = &c
		}
	}
	if v := values.Get("category"); v != "" {
		f.Category = &v
	}
	if v := values.Get("period"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			f.Period = &p
		}
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.OfficeID,
		&r.OfficialID,
		&r.Period,
		&r.Class,
		&r.Category,
		&r.From,
		&r.To,
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
