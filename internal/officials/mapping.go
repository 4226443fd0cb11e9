package officials

import (
	"net/url"

	"github.com/rama-judicial/escalafon/pkg/query"
	"github.com/rama-judicial/escalafon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "officials", "f").
	Project("id", "ID").
	Project("name", "Name").
	Project("document_id", "DocumentID")

var leaveProjection = query.
	NewProjectionMap("public", "leave_periods", "l").
	Project("id", "ID").
	Project("official_id", "OfficialID").
	Project("office_id", "OfficeID").
	Project("leave_type", "Type").
	Project("from_date", "From").
	Project("to_date", "To").
	Project("discounted_days", "DiscountedDays").
	Project("deductible_days", "DeductibleDays").
	Project("notes", "Notes")

var defaultSort = query.SortField{Field: "Name"}

// Filters contains optional filtering criteria for official queries.
// Nil fields are ignored.
type Filters struct {
	Name       *string `json:"name,omitempty"`
	DocumentID *string `json:"document_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("DocumentID", f.DocumentID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("name"); v != "" {
		f.Name = &v
	}
	if v := values.Get("document_id"); v != "" {
		f.DocumentID = &v
	}

	return f
}

func scanOfficial(s repository.Scanner) (Official, error) {
	var o Official
	err := s.Scan(
		&o.ID,
		&o.Name,
		&o.DocumentID,
	)
	return o, err
}

func scanLeave(s repository.Scanner) (LeavePeriod, error) {
	var l LeavePeriod
	err := s.Scan(
		&l.ID,
		&l.OfficialID,
		&l.OfficeID,
		&l.Type,
		&l.From,
		&l.To,
		&l.DiscountedDays,
		&l.DeductibleDays,
		&l.Notes,
	)
	return l, err
}
