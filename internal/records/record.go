// Package records implements caseload statistics: the reported inventory,
// income, and outflow rows that feed subfactor scoring, plus the
// reclassification pre-pass that routes rows to their scoring track.
package records

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Class identifies the scoring track a statistics row belongs to.
type Class string

const (
	ClassOral      Class = "oral"
	ClassGarantias Class = "garantias"
	ClassEscrito   Class = "escrito"
	ClassTutelas   Class = "tutelas"
)

// Valid reports whether the class is a known value.
func (c Class) Valid() bool {
	switch c {
	case ClassOral, ClassGarantias, ClassEscrito, ClassTutelas:
		return true
	}
	return false
}

// Record is a reported caseload statistics row for an official at an office
// over a reporting window. Numeric fields are case counts.
type Record struct {
	ID               uuid.UUID `json:"id"`
	OfficeID         uuid.UUID `json:"office_id"`
	OfficialID       uuid.UUID `json:"official_id"`
	Period           int       `json:"period"`
	Class            Class     `json:"class"`
	Category         string    `json:"category"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	InitialInventory int       `json:"initial_inventory"`
	Income           int       `json:"income"`
	EffectiveLoad    int       `json:"effective_load"`
	Outflow          int       `json:"outflow"`
	Settlements      int       `json:"settlements"`
	FinalInventory   int       `json:"final_inventory"`
	Remaining        int       `json:"remaining"`
}

// CreateCommand carries the data needed to register a statistics row.
type CreateCommand struct {
	OfficeID         uuid.UUID `json:"office_id"`
	OfficialID       uuid.UUID `json:"official_id"`
	Class            Class     `json:"class"`
	Category         string    `json:"category"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	InitialInventory int       `json:"initial_inventory"`
	Income           int       `json:"income"`
	EffectiveLoad    int       `json:"effective_load"`
	Outflow          int       `json:"outflow"`
	Settlements      int       `json:"settlements"`
	FinalInventory   int       `json:"final_inventory"`
	Remaining        int       `json:"remaining"`
}

// Validate checks field constraints on a create command.
func (c CreateCommand) Validate() error {
	if c.OfficeID == uuid.Nil || c.OfficialID == uuid.Nil {
		return ErrInvalid
	}
	if !c.Class.Valid() || c.Category == "" {
		return ErrInvalid
	}
	if c.To.Before(c.From) {
		return ErrInvalid
	}
	if c.InitialInventory < 0 || c.Income < 0 || c.EffectiveLoad < 0 ||
		c.Outflow < 0 || c.Settlements < 0 || c.FinalInventory < 0 || c.Remaining < 0 {
		return ErrInvalid
	}
	return nil
}

// GradeGuard gates record mutations on the state of the affected grade and
// triggers recomputation once the mutation lands.
type GradeGuard interface {
	EnsureMutable(ctx context.Context, officialID uuid.UUID, period int) error
	Recompute(ctx context.Context, officialID uuid.UUID, period int) error
}
