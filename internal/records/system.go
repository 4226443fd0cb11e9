package records

import (
	"context"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/pagination"
)

// System defines the public contract for statistics record operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	Create(ctx context.Context, cmd CreateCommand) (*Record, error)
	Update(ctx context.Context, id uuid.UUID, cmd CreateCommand) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ForOffice returns every row reported for the office in the period,
	// across all officials.
	ForOffice(ctx context.Context, officeID uuid.UUID, period int) ([]Record, error)
}
