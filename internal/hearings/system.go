package hearings

import (
	"context"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/pagination"
)

// System defines the public contract for hearing statistics operations.
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

	// ForOfficial returns the official's hearing rows at an office for a period.
	ForOfficial(ctx context.Context, officialID, officeID uuid.UUID, period int) ([]Record, error)
}
