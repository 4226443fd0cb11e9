package officials

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/pagination"
	"github.com/rama-judicial/escalafon/pkg/query"
	"github.com/rama-judicial/escalafon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	guard      GradeGuard
}

// New creates an official repository implementing the System interface.
// Leave mutations are gated and followed by recomputation through guard.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, guard GradeGuard) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "officials"),
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
) (*pagination.PageResult[Official], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "DocumentID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count officials: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanOfficial)
	if err != nil {
		return nil, fmt.Errorf("query officials: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Official, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOfficial)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Official, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO officials(id, name, document_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, document_id`

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Official, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), cmd.Name, cmd.DocumentID}, scanOfficial)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("official created", "id", o.ID, "document_id", o.DocumentID)
	return &o, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM officials WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("official deleted", "id", id)
	return nil
}

func (r *repo) ListLeave(ctx context.Context, officialID uuid.UUID, period int) ([]LeavePeriod, error) {
	qb := query.
		NewBuilder(leaveProjection, query.SortField{Field: "From"}).
		WhereEquals("OfficialID", officialID)

	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanLeave)
	if err != nil {
		return nil, fmt.Errorf("query leave periods: %w", err)
	}

	if period == 0 {
		return items, nil
	}

	filtered := make([]LeavePeriod, 0, len(items))
	for _, l := range items {
		if l.Period() == period {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

func (r *repo) LeaveInWindow(
	ctx context.Context,
	officialID, officeID uuid.UUID,
	from, to time.Time,
) ([]LeavePeriod, error) {
	q := `
		SELECT l.id, l.official_id, l.office_id, l.leave_type, l.from_date, l.to_date,
			l.discounted_days, l.deductible_days, l.notes
		FROM leave_periods l
		WHERE l.official_id = $1 AND l.office_id = $2
			AND l.from_date <= $4 AND l.to_date >= $3
		ORDER BY l.from_date ASC`

	items, err := repository.QueryMany(ctx, r.db, q, []any{officialID, officeID, from, to}, scanLeave)
	if err != nil {
		return nil, fmt.Errorf("query leave window: %w", err)
	}
	return items, nil
}

func (r *repo) CreateLeave(ctx context.Context, cmd LeaveCommand) (*LeavePeriod, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := r.Find(ctx, cmd.OfficialID); err != nil {
		return nil, err
	}

	period := cmd.From.Year()
	if err := r.ensureMutable(ctx, cmd.OfficialID, period); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO leave_periods(
			id, official_id, office_id, leave_type, from_date, to_date,
			discounted_days, deductible_days, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, official_id, office_id, leave_type, from_date, to_date,
			discounted_days, deductible_days, notes`

	args := []any{
		uuid.New(), cmd.OfficialID, cmd.OfficeID, cmd.Type, cmd.From, cmd.To,
		cmd.DiscountedDays, cmd.DeductibleDays, cmd.Notes,
	}

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (LeavePeriod, error) {
		return repository.QueryOne(ctx, tx, q, args, scanLeave)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrLeaveNotFound, ErrDuplicate)
	}

	r.recompute(ctx, cmd.OfficialID, period)

	r.logger.Info("leave period created", "id", l.ID, "official", l.OfficialID, "type", l.Type)
	return &l, nil
}

func (r *repo) UpdateLeave(ctx context.Context, id uuid.UUID, cmd LeaveCommand) (*LeavePeriod, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q, args := query.NewBuilder(leaveProjection).BuildSingle("ID", id)

	existing, err := repository.QueryOne(ctx, r.db, q, args, scanLeave)
	if err != nil {
		return nil, repository.MapError(err, ErrLeaveNotFound, ErrDuplicate)
	}

	if err := r.ensureMutable(ctx, existing.OfficialID, existing.Period()); err != nil {
		return nil, err
	}

	period := cmd.From.Year()
	if cmd.OfficialID != existing.OfficialID || period != existing.Period() {
		if err := r.ensureMutable(ctx, cmd.OfficialID, period); err != nil {
			return nil, err
		}
	}

	update := `
		UPDATE leave_periods SET
			official_id = $2, office_id = $3, leave_type = $4, from_date = $5,
			to_date = $6, discounted_days = $7, deductible_days = $8, notes = $9
		WHERE id = $1
		RETURNING id, official_id, office_id, leave_type, from_date, to_date,
			discounted_days, deductible_days, notes`

	updateArgs := []any{
		id, cmd.OfficialID, cmd.OfficeID, cmd.Type, cmd.From, cmd.To,
		cmd.DiscountedDays, cmd.DeductibleDays, cmd.Notes,
	}

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (LeavePeriod, error) {
		return repository.QueryOne(ctx, tx, update, updateArgs, scanLeave)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrLeaveNotFound, ErrDuplicate)
	}

	r.recompute(ctx, existing.OfficialID, existing.Period())
	if l.OfficialID != existing.OfficialID || l.Period() != existing.Period() {
		r.recompute(ctx, l.OfficialID, l.Period())
	}

	r.logger.Info("leave period updated", "id", l.ID, "official", l.OfficialID, "type", l.Type)
	return &l, nil
}

func (r *repo) DeleteLeave(ctx context.Context, id uuid.UUID) error {
	q, args := query.NewBuilder(leaveProjection).BuildSingle("ID", id)

	l, err := repository.QueryOne(ctx, r.db, q, args, scanLeave)
	if err != nil {
		return repository.MapError(err, ErrLeaveNotFound, ErrDuplicate)
	}

	period := l.Period()
	if err := r.ensureMutable(ctx, l.OfficialID, period); err != nil {
		return err
	}

	if err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM leave_periods WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrLeaveNotFound, ErrDuplicate)
	}

	r.recompute(ctx, l.OfficialID, period)

	r.logger.Info("leave period deleted", "id", id, "official", l.OfficialID)
	return nil
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
