package hearings

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/query"
	"github.com/rama-judicial/escalafon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "hearing_records", "h").
	Project("id", "ID").
	Project("office_id", "OfficeID").
	Project("official_id", "OfficialID").
	Project("period", "Period").
	Project("from_date", "From").
	Project("to_date", "To").
	Project("scheduled", "Scheduled").
	Project("attended", "Attended").
	Project("postponed_external", "PostponedExternal").
	Project("postponed_justified", "PostponedJustified").
	Project("postponed_unjustified", "PostponedUnjustified")

var defaultSort = query.SortField{Field: "From"}

// Filters contains optional filtering criteria for hearing queries.
// Nil fields are ignored.
type Filters struct {
	OfficeID   *uuid.UUID `json:"office_id,omitempty"`
	OfficialID *uuid.UUID `json:"official_id,omitempty"`
	Period     *int       `json:"period,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("OfficeID", f.OfficeID).
		WhereEquals("OfficialID", f.OfficialID)

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
	if v := values.Get("period"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			f.Period = &p
		}
	}

	return f
}

func scanHearing(s repository.Scanner) (Record, error) {
	var h Record
	err := s.Scan(
		&h.ID,
		&h.OfficeID,
		&h.OfficialID,
		&h.Period,
		&h.From,
		&h.To,
		&h.Scheduled,
		&h.Attended,
		&h.PostponedExternal,
		&h.PostponedJustified,
		&h.PostponedUnjustified,
	)
	return h, err
}
