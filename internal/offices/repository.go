package offices

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/pagination"
	"github.com/rama-judicial/escalafon/pkg/query"
	"github.com/rama-judicial/escalafon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an office repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "offices"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Office], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Code", "Name", "Municipality")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count offices: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanOffice)
	if err != nil {
		return nil, fmt.Errorf("query offices: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Office, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOffice)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Office, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.OfficeTypeID != nil {
		if _, err := r.FindType(ctx, *cmd.OfficeTypeID); err != nil {
			return nil, err
		}
	}

	q := `
		INSERT INTO offices(id, code, name, office_type_id, municipality, district)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, code, name, office_type_id, municipality, district`

	args := []any{uuid.New(), cmd.Code, cmd.Name, cmd.OfficeTypeID, cmd.Municipality, cmd.District}

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Office, error) {
		return repository.QueryOne(ctx, tx, q, args, scanOffice)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("office created", "id", o.ID, "code", o.Code)
	return &o, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM offices WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("office deleted", "id", id)
	return nil
}

func (r *repo) FindType(ctx context.Context, id uuid.UUID) (*OfficeType, error) {
	q, args := query.NewBuilder(typeProjection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanOfficeType)
	if err != nil {
		return nil, repository.MapError(err, ErrTypeNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) ListTypes(ctx context.Context) ([]OfficeType, error) {
	q, args := query.NewBuilder(
		typeProjection,
		query.SortField{Field: "Specialty"},
		query.SortField{Field: "Category"},
	).Build()

	types, err := repository.QueryMany(ctx, r.db, q, args, scanOfficeType)
	if err != nil {
		return nil, fmt.Errorf("query office types: %w", err)
	}
	return types, nil
}

func (r *repo) CreateType(ctx context.Context, cmd CreateTypeCommand) (*OfficeType, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO office_types(id, specialty, category)
		VALUES ($1, $2, $3)
		RETURNING id, specialty, category`

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (OfficeType, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), cmd.Specialty, cmd.Category}, scanOfficeType)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrTypeNotFound, ErrDuplicate)
	}

	r.logger.Info("office type created", "id", t.ID, "specialty", t.Specialty, "category", t.Category)
	return &t, nil
}

func (r *repo) Capacity(ctx context.Context, officeTypeID uuid.UUID, period int) (int, error) {
	var capacity int
	err := r.db.QueryRowContext(
		ctx,
		"SELECT max_capacity FROM office_type_capacities WHERE office_type_id = $1 AND period = $2",
		officeTypeID, period,
	).Scan(&capacity)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("%w: period %d", ErrMissingCapacity, period)
		}
		return 0, fmt.Errorf("query capacity: %w", err)
	}
	return capacity, nil
}

func (r *repo) SetCapacity(ctx context.Context, officeTypeID uuid.UUID, period, maxCapacity int) error {
	if period <= 0 || maxCapacity < 0 {
		return ErrInvalid
	}

	if _, err := r.FindType(ctx, officeTypeID); err != nil {
		return err
	}

	q := `
		INSERT INTO office_type_capacities(office_type_id, period, max_capacity)
		VALUES ($1, $2, $3)
		ON CONFLICT (office_type_id, period) DO UPDATE SET max_capacity = EXCLUDED.max_capacity`

	if _, err := r.db.ExecContext(ctx, q, officeTypeID, period, maxCapacity); err != nil {
		return fmt.Errorf("set capacity: %w", err)
	}

	r.logger.Info("capacity set", "office_type", officeTypeID, "period", period, "max_capacity", maxCapacity)
	return nil
}
