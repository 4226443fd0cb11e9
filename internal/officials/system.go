package officials

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/pagination"
)

// System defines the public contract for official domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Official], error)

	Find(ctx context.Context, id uuid.UUID) (*Official, error)
	Create(ctx context.Context, cmd CreateCommand) (*Official, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ListLeave returns the official's leave periods, optionally restricted
	// to a grading period. Period 0 means no restriction.
	ListLeave(ctx context.Context, officialID uuid.UUID, period int) ([]LeavePeriod, error)

	// LeaveInWindow returns leave periods for the official and office that
	// overlap the given window.
	LeaveInWindow(
		ctx context.Context,
		officialID, officeID uuid.UUID,
		from, to time.Time,
	) ([]LeavePeriod, error)

	CreateLeave(ctx context.Context, cmd LeaveCommand) (*LeavePeriod, error)
	UpdateLeave(ctx context.Context, id uuid.UUID, cmd LeaveCommand) (*LeavePeriod, error)
	DeleteLeave(ctx context.Context, id uuid.UUID) error
}
