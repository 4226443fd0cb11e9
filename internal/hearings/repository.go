package hearings

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
	guard      GradeGuard
}

// New creates a hearing statistics repository implementing the System
// interface. Mutations are gated and followed by recomputation through guard.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, guard GradeGuard) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "hearings"),
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

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count hearings: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanHearing)
	if err != nil {
		return nil, fmt.Errorf("query hearings: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	h, err := repository.QueryOne(ctx, r.db, q, args, scanHearing)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &h, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	period := cmd.From.Year()
	if err := r.ensureMutable(ctx, cmd.OfficialID, period); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO hearing_records(
			id, office_id, official_id, from_date, to_date,
			scheduled, attended, postponed_external, postponed_justified, postponed_unjustified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, office_id, official_id, period, from_date, to_date,
			scheduled, attended, postponed_external, postponed_justified, postponed_unjustified`

	args := []any{
		uuid.New(), cmd.OfficeID, cmd.OfficialID, cmd.From, cmd.To,
		cmd.Scheduled, cmd.Attended, cmd.PostponedExternal,
		cmd.PostponedJustified, cmd.PostponedUnjustified,
	}

	h, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, args, scanHearing)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recompute(ctx, cmd.OfficialID, period)

	r.logger.Info("hearing record created", "id", h.ID, "official", h.OfficialID, "scheduled", h.Scheduled)
	return &h, nil
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

	q := `
		UPDATE hearing_records SET
			office_id = $2, official_id = $3, from_date = $4, to_date = $5,
			scheduled = $6, attended = $7, postponed_external = $8,
			postponed_justified = $9, postponed_unjustified = $10
		WHERE id = $1
		RETURNING id, office_id, official_id, period, from_date, to_date,
			scheduled, attended, postponed_external, postponed_justified, postponed_unjustified`

	args := []any{
		id, cmd.OfficeID, cmd.OfficialID, cmd.From, cmd.To,
		cmd.Scheduled, cmd.Attended, cmd.PostponedExternal,
		cmd.PostponedJustified, cmd.PostponedUnjustified,
	}

	h, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, args, scanHearing)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recompute(ctx, existing.OfficialID, existing.Period)
	if h.OfficialID != existing.OfficialID || h.Period != existing.Period {
		r.recompute(ctx, h.OfficialID, h.Period)
	}

	r.logger.Info("hearing record updated", "id", h.ID, "official", h.OfficialID, "scheduled", h.Scheduled)
	return &h, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	h, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := r.ensureMutable(ctx, h.OfficialID, h.Period); err != nil {
		return err
	}

	if err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM hearing_records WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recompute(ctx, h.OfficialID, h.Period)

	r.logger.Info("hearing record deleted", "id", id, "official", h.OfficialID)
	return nil
}

func (r *repo) ForOfficial(ctx context.Context, officialID, officeID uuid.UUID, period int) ([]Record, error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("OfficialID", officialID).
		WhereEquals("OfficeID", officeID).
		WhereEquals("Period", period)

	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanHearing)
	if err != nil {
		return nil, fmt.Errorf("query official hearings: %w", err)
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
