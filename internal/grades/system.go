package grades

import (
	"context"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/middleware"
	"github.com/rama-judicial/escalafon/pkg/pagination"
)

// System defines the public contract for grading operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[PeriodGrade], error)

	// Find returns a grade with its office breakdowns, subfactors,
	// consolidated rows, and review notes.
	Find(ctx context.Context, id uuid.UUID) (*PeriodGrade, error)

	// FindForOfficial resolves a grade by its natural key.
	FindForOfficial(ctx context.Context, officialID uuid.UUID, period int) (*PeriodGrade, error)

	// Recompute rebuilds the grade for an official and period from current
	// statistics. Creates the grade in draft when none exists; fails with
	// ErrImmutable when the existing grade's inputs are frozen.
	Recompute(ctx context.Context, officialID uuid.UUID, period int) (*PeriodGrade, error)

	// RecomputeOffice rebuilds the grade of every official with statistics
	// at the office for the period.
	RecomputeOffice(ctx context.Context, officeID uuid.UUID, period int) error

	// Transition applies a workflow action on behalf of the caller,
	// appending a review note. Archiving also publishes the consolidated
	// export to blob storage.
	Transition(ctx context.Context, id uuid.UUID, action Action, actor middleware.Identity, notes string) (*PeriodGrade, error)

	// ExportCSV renders the grade's consolidated export.
	ExportCSV(ctx context.Context, id uuid.UUID) ([]byte, error)

	// EnsureMutable fails with ErrImmutable when the grade for the official
	// and period exists and its inputs are frozen. A missing grade is mutable.
	EnsureMutable(ctx context.Context, officialID uuid.UUID, period int) error
}
