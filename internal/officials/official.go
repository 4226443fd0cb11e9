// Package officials implements judicial official reference data and the
// leave periods that discount labor days from their grading windows.
package officials

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Official is a judicial officer subject to periodic performance grading.
type Official struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DocumentID string    `json:"document_id"`
}

// LeaveType identifies the administrative reason for a leave period.
type LeaveType string

const (
	LeaveVacation   LeaveType = "vacation"
	LeaveSickness   LeaveType = "sickness"
	LeavePermission LeaveType = "permission"
	LeaveCommission LeaveType = "commission"
	LeaveSuspension LeaveType = "suspension"
)

// Valid reports whether the leave type is a known value.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveVacation, LeaveSickness, LeavePermission, LeaveCommission, LeaveSuspension:
		return true
	}
	return false
}

// LeavePeriod is a span during which an official did not serve an office.
// DiscountedDays reduce the expected office labor days during grade review.
// DeductibleDays reduce the days actually worked during scoring.
type LeavePeriod struct {
	ID             uuid.UUID `json:"id"`
	OfficialID     uuid.UUID `json:"official_id"`
	OfficeID       uuid.UUID `json:"office_id"`
	Type           LeaveType `json:"type"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	DiscountedDays int       `json:"discounted_days"`
	DeductibleDays int       `json:"deductible_days"`
	Notes          string    `json:"notes"`
}

// Period returns the grading period the leave belongs to.
func (l LeavePeriod) Period() int {
	return l.From.Year()
}

// CreateCommand carries the data needed to register a new official.
type CreateCommand struct {
	Name       string `json:"name"`
	DocumentID string `json:"document_id"`
}

// Validate checks required fields on a create command.
func (c CreateCommand) Validate() error {
	if c.Name == "" || c.DocumentID == "" {
		return ErrInvalid
	}
	return nil
}

// LeaveCommand carries the data needed to register a leave period.
type LeaveCommand struct {
	OfficialID     uuid.UUID `json:"official_id"`
	OfficeID       uuid.UUID `json:"office_id"`
	Type           LeaveType `json:"type"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	DiscountedDays int       `json:"discounted_days"`
	DeductibleDays int       `json:"deductible_days"`
	Notes          string    `json:"notes"`
}

// Validate checks field constraints on a leave command.
func (c LeaveCommand) Validate() error {
	if c.OfficialID == uuid.Nil || c.OfficeID == uuid.Nil {
		return ErrInvalid
	}
	if !c.Type.Valid() {
		return ErrInvalid
	}
	if c.To.Before(c.From) {
		return ErrInvalid
	}
	if c.DiscountedDays < 0 || c.DeductibleDays < 0 {
		return ErrInvalid
	}
	return nil
}

// GradeGuard gates leave mutations on the state of the affected grade and
// triggers recomputation once the mutation lands.
type GradeGuard interface {
	EnsureMutable(ctx context.Context, officialID uuid.UUID, period int) error
	Recompute(ctx context.Context, officialID uuid.UUID, period int) error
}
