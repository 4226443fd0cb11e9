package offices

import (
	"context"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/pagination"
)

// System defines the public contract for office domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Office], error)

	Find(ctx context.Context, id uuid.UUID) (*Office, error)
	Create(ctx context.Context, cmd CreateCommand) (*Office, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindType resolves an office type by id. Returns ErrTypeNotFound when missing.
	FindType(ctx context.Context, id uuid.UUID) (*OfficeType, error)
	ListTypes(ctx context.Context) ([]OfficeType, error)
	CreateType(ctx context.Context, cmd CreateTypeCommand) (*OfficeType, error)

	// Capacity returns the yearly response capacity for an office type and period.
	// Returns ErrMissingCapacity when no capacity is configured.
	Capacity(ctx context.Context, officeTypeID uuid.UUID, period int) (int, error)
	SetCapacity(ctx context.Context, officeTypeID uuid.UUID, period, maxCapacity int) error
}
