package offices

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/query"
	"github.com/rama-judicial/escalafon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "offices", "o").
	Project("id", "ID").
	Project("code", "Code").
	Project("name", "Name").
	Project("office_type_id", "OfficeTypeID").
	Project("municipality", "Municipality").
	Project("district", "District")

var typeProjection = query.
	NewProjectionMap("public", "office_types", "t").
	Project("id", "ID").
	Project("specialty", "Specialty").
	Project("category", "Category")

var defaultSort = query.SortField{Field: "Code"}

// Filters contains optional filtering criteria for office queries.
// Nil fields are ignored.
type Filters struct {
	Code         *string    `json:"code,omitempty"`
	Name         *string    `json:"name,omitempty"`
	OfficeTypeID *uuid.UUID `json:"office_type_id,omitempty"`
	Municipality *string    `json:"municipality,omitempty"`
	District     *string    `json:"district,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Code", f.Code).
		WhereContains("Name", f.Name).
		WhereEquals("OfficeTypeID", f.OfficeTypeID).
		WhereContains("Municipality", f.Municipality).
		WhereContains("District", f.District)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("code"); v != "" {
		f.Code = &v
	}
	if v := values.Get("name"); v != "" {
		f.Name = &v
	}
	if v := values.Get("office_type_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.OfficeTypeID = &id
		}
	}
	if v := values.Get("municipality"); v != "" {
		f.Municipality = &v
	}
	if v := values.Get("district"); v != "" {
		f.District = &v
	}

	return f
}

func scanOffice(s repository.Scanner) (Office, error) {
	var o Office
	err := s.Scan(
		&o.ID,
		&o.Code,
		&o.Name,
		&o.OfficeTypeID,
		&o.Municipality,
		&o.District,
	)
	return o, err
}

func scanOfficeType(s repository.Scanner) (OfficeType, error) {
	var t OfficeType
	err := s.Scan(
		&t.ID,
		&t.Specialty,
		&t.Category,
	)
	return t, err
}
