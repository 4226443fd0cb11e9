// Package offices implements the court office domain: office reference data,
// office types (specialty and category), and yearly response capacities.
package offices

import (
	"github.com/google/uuid"
)

// Specialty identifies the procedural specialty of a court office.
type Specialty string

const (
	SpecialtyPenal                 Specialty = "penal"
	SpecialtyPenalAdolescentes     Specialty = "penal-adolescentes"
	SpecialtyControlGarantias      Specialty = "control-garantias"
	SpecialtyGarantiasAdolescentes Specialty = "garantias-adolescentes"
	SpecialtyEjecucionPenas        Specialty = "ejecucion-penas"
	SpecialtyFamilia               Specialty = "familia"
	SpecialtyFamiliaPromiscuo      Specialty = "familia-promiscuo"
	SpecialtyPromiscuo             Specialty = "promiscuo"
	SpecialtyCivil                 Specialty = "civil"
	SpecialtyLaboral               Specialty = "laboral"
)

// Guarantees reports whether the specialty is a pretrial-guarantees variant.
// Guarantees offices have no hearings bonus and a higher oral ceiling.
func (s Specialty) Guarantees() bool {
	return s == SpecialtyControlGarantias || s == SpecialtyGarantiasAdolescentes
}

// PenalFamily reports whether the specialty belongs to the penal-family group
// used by the municipal labor-calendar variant.
func (s Specialty) PenalFamily() bool {
	switch s {
	case SpecialtyPenal, SpecialtyPenalAdolescentes, SpecialtyFamilia, SpecialtyPromiscuo:
		return true
	}
	return false
}

// Valid reports whether the specialty is a known value.
func (s Specialty) Valid() bool {
	switch s {
	case SpecialtyPenal, SpecialtyPenalAdolescentes, SpecialtyControlGarantias,
		SpecialtyGarantiasAdolescentes, SpecialtyEjecucionPenas, SpecialtyFamilia,
		SpecialtyFamiliaPromiscuo, SpecialtyPromiscuo, SpecialtyCivil, SpecialtyLaboral:
		return true
	}
	return false
}

// Category identifies the territorial category of a court office.
type Category string

const (
	CategoryMunicipal Category = "municipal"
	CategoryCircuito  Category = "circuito"
)

// Valid reports whether the category is a known value.
func (c Category) Valid() bool {
	return c == CategoryMunicipal || c == CategoryCircuito
}

// OfficeType pairs a specialty with a category. The pair selects the labor
// calendar variant and the yearly response capacity used by oral scoring.
type OfficeType struct {
	ID        uuid.UUID `json:"id"`
	Specialty Specialty `json:"specialty"`
	Category  Category  `json:"category"`
}

// Capacity is the maximum yearly response capacity for an office type in a period.
type Capacity struct {
	OfficeTypeID uuid.UUID `json:"office_type_id"`
	Period       int       `json:"period"`
	MaxCapacity  int       `json:"max_capacity"`
}

// Office is a court unit producing caseload statistics. Reference data,
// edited through the admin surface.
type Office struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	OfficeTypeID *uuid.UUID `json:"office_type_id"`
	Municipality string     `json:"municipality"`
	District     string     `json:"district"`
}

// CreateCommand carries the data needed to register a new office.
type CreateCommand struct {
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	OfficeTypeID *uuid.UUID `json:"office_type_id"`
	Municipality string     `json:"municipality"`
	District     string     `json:"district"`
}

// Validate checks required fields on a create command.
func (c CreateCommand) Validate() error {
	if c.Code == "" || c.Name == "" {
		return ErrInvalid
	}
	return nil
}

// CreateTypeCommand carries the data needed to register a new office type.
type CreateTypeCommand struct {
	Specialty Specialty `json:"specialty"`
	Category  Category  `json:"category"`
}

// Validate checks that specialty and category are known values.
func (c CreateTypeCommand) Validate() error {
	if !c.Specialty.Valid() || !c.Category.Valid() {
		return ErrInvalid
	}
	return nil
}
