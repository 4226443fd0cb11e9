// Package hearings implements reported hearing statistics: scheduled
// hearings against their attended and postponed outcomes, feeding the
// hearings bonus on the oral subfactor.
package hearings

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is a reported hearing statistics row for an official at an office
// over a reporting window. Outcome counts must account for every scheduled
// hearing.
type Record struct {
	ID                   uuid.UUID `json:"id"`
	OfficeID             uuid.UUID `json:"office_id"`
	OfficialID           uuid.UUID `json:"official_id"`
	Period               int       `json:"period"`
	From                 time.Time `json:"from"`
	To                   time.Time `json:"to"`
	Scheduled            int       `json:"scheduled"`
	Attended             int       `json:"attended"`
	PostponedExternal    int       `json:"postponed_external"`
	PostponedJustified   int       `json:"postponed_justified"`
	PostponedUnjustified int       `json:"postponed_unjustified"`
}

// CreateCommand carries the data needed to register a hearing statistics row.
type CreateCommand struct {
	OfficeID             uuid.UUID `json:"office_id"`
	OfficialID           uuid.UUID `json:"official_id"`
	From                 time.Time `json:"from"`
	To                   time.Time `json:"to"`
	Scheduled            int       `json:"scheduled"`
	Attended             int       `json:"attended"`
	PostponedExternal    int       `json:"postponed_external"`
	PostponedJustified   int       `json:"postponed_justified"`
	PostponedUnjustified int       `json:"postponed_unjustified"`
}

// Validate checks field constraints on a create command. Outcomes must sum
// to the scheduled count.
func (c CreateCommand) Validate() error {
	if c.OfficeID == uuid.Nil || c.OfficialID == uuid.Nil {
		return ErrInvalid
	}
	if c.To.Before(c.From) {
		return ErrInvalid
	}
	if c.Scheduled < 0 || c.Attended < 0 || c.PostponedExternal < 0 ||
		c.PostponedJustified < 0 || c.PostponedUnjustified < 0 {
		return ErrInvalid
	}
	if c.Attended+c.PostponedExternal+c.PostponedJustified+c.PostponedUnjustified != c.Scheduled {
		return ErrUnbalanced
	}
	return nil
}

// GradeGuard gates hearing mutations on the state of the affected grade and
// triggers recomputation once the mutation lands.
type GradeGuard interface {
	EnsureMutable(ctx context.Context, officialID uuid.UUID, period int) error
	Recompute(ctx context.Context, officialID uuid.UUID, period int) error
}
