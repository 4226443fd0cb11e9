package records

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

const insertColumns = `
	id, office_id, official_id, class, category, from_date, to_date,
	initial_inventory, income, effective_load, outflow, settlements, final_inventory, remaining`

const returnColumns = `
	id, office_id, official_id, period, class, category, from_date, to_date,
	initial_inventory, income, effective_load, outflow, settlements, final_inventory, remaining`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	guard      GradeGuard
}

// New creates a statistics record repository implementing the System
// interface. Mutations are gated and followed by recomputation through guard.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, guard GradeGuard) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "records"),
		pagination: pagination,
		guard:      guard,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Category")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	period := cmd.From.Year()
	if err := r.ensureMutable(ctx, cmd.OfficialID, period); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO performance_records(%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s`, insertColumns, returnColumns)

	args := []any{
		uuid.New(), cmd.OfficeID, cmd.OfficialID, cmd.Class, cmd.Category,
		cmd.From, cmd.To, cmd.InitialInventory, cmd.Income, cmd.EffectiveLoad,
		cmd.Outflow, cmd.Settlements, cmd.FinalInventory, cmd.Remaining,
	}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRecord)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recompute(ctx, cmd.OfficialID, period)

	r.logger.Info("record created",
		"id", rec.ID,
		"official", rec.OfficialID,
		"class", rec.Class,
		"category", rec.Category,
	)
	return &rec, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd CreateCommand) (*Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.ensureMutable(ctx, existing.OfficialID, existing.Period); err != nil {
		return nil, err
	}

	period := cmd.From.Year()
	if cmd.OfficialID != existing.OfficialID || period != existing.Period {
		if err := r.ensureMutable(ctx, cmd.OfficialID, period); err != nil {
			return nil, err
		}
	}

	q := fmt.Sprintf(`
		UPDATE performance_records SET
			office_id = $2, official_id = $3, class = $4, category = $5,
			from_date = $6, to_date = $7, initial_inventory = $8, income = $9,
			effective_load = $10, outflow = $11, settlements = $12,
			final_inventory = $13, remaining = $14
		WHERE id = $1
		RETURNING %s`, returnColumns)

	args := []any{
		id, cmd.OfficeID, cmd.OfficialID, cmd.Class, cmd.Category,
		cmd.From, cmd.To, cmd.InitialInventory, cmd.Income, cmd.EffectiveLoad,
		cmd.Outflow, cmd.Settlements, cmd.FinalInventory, cmd.Remaining,
	}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRecord)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recompute(ctx, existing.OfficialID, existing.Period)
	if rec.OfficialID != existing.OfficialID || rec.Period != existing.Period {
		r.recompute(ctx, rec.OfficialID, rec.Period)
	}

	r.logger.Info("record updated",
		"id", rec.ID,
		"official", rec.OfficialID,
		"class", rec.Class,
		"category", rec.Category,
	)
	return &rec, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := r.ensureMutable(ctx, rec.OfficialID, rec.Period); err != nil {
		return err
	}

	if err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM performance_records WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recompute(ctx, rec.OfficialID, rec.Period)

	r.logger.Info("record deleted", "id", id, "official", rec.OfficialID)
	return nil
}

func (r *repo) ForOffice(ctx context.Context, officeID uuid.UUID, period int) ([]Record, error) {
	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("OfficeID", officeID).
		WhereEquals("Period", period)

	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query office records: %w", err)
	}
	return items, nil
}

func (r *repo) ensureMutable(ctx context.Context, officialID uuid.UUID, period int) error {
	if r.guard == nil {
		return nil
	}
	if err := r.guard.EnsureMutable(ctx, officialID, period); err != nil {
		return fmt.Errorf("%w: %w", ErrGradeLocked, err)
	}
	return nil
}

func (r *repo) recompute(ctx context.Context, officialID uuid.UUID, period int) {
	if r.guard == nil {
		return
	}
	if err := r.guard.Recompute(ctx, officialID, period); err != nil {
		r.logger.Warn("grade recomputation failed", "official", officialID, "period", period, "error", err)
	}
}
