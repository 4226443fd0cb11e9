package grades

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/middleware"
	"github.com/rama-judicial/escalafon/pkg/pagination"
	"github.com/rama-judicial/escalafon/pkg/query"
	"github.com/rama-judicial/escalafon/pkg/repository"
	"github.com/rama-judicial/escalafon/pkg/storage"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	storage    storage.System
}

// New creates a grading repository implementing the System interface.
// Archived grades publish their consolidated export through store.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, store storage.System) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "grades"),
		pagination: pagination,
		storage:    store,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[PeriodGrade], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort...)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count grades: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanGrade)
	if err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*PeriodGrade, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	g, err := repository.QueryOne(ctx, r.db, q, args, scanGrade)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.loadChildren(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repo) FindForOfficial(ctx context.Context, officialID uuid.UUID, period int) (*PeriodGrade, error) {
	g, err := r.findByKey(ctx, officialID, period)
	if err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *repo) EnsureMutable(ctx context.Context, officialID uuid.UUID, period int) error {
	g, err := r.findByKey(ctx, officialID, period)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if !g.State.Mutable() {
		return fmt.Errorf("%w: state %s", ErrImmutable, g.State)
	}
	return nil
}

func (r *repo) Transition(
	ctx context.Context,
	id uuid.UUID,
	action Action,
	actor middleware.Identity,
	notes string,
) (*PeriodGrade, error) {
	if err := Authorize(action, actor.Capabilities); err != nil {
		return nil, err
	}

	g, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := Transition(g.State, action)
	if err != nil {
		return nil, err
	}

	if err := r.checkGuards(g, action, notes); err != nil {
		return nil, err
	}

	note := ReviewNote{
		ID:             uuid.New(),
		GradeID:        g.ID,
		Author:         authorName(actor),
		Notes:          notes,
		ResultingState: next,
		CreatedAt:      time.Now().UTC(),
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		// The state predicate makes the racing loser of two concurrent
		// transitions fail on zero affected rows.
		if err := repository.ExecExpectOne(ctx, tx,
			"UPDATE period_grades SET state = $1, updated_at = $2 WHERE id = $3 AND state = $4",
			next, note.CreatedAt, g.ID, g.State,
		); err != nil {
			return struct{}{}, err
		}

		if err := repository.ExecExpectOne(ctx, tx, `
			INSERT INTO review_notes(id, grade_id, author, notes, resulting_state, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			note.ID, note.GradeID, note.Author, note.Notes, note.ResultingState, note.CreatedAt,
		); err != nil {
			return struct{}{}, err
		}

		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("grade transitioned",
		"id", g.ID,
		"action", action,
		"from", g.State,
		"to", next,
		"actor", note.Author,
	)

	if action == ActionArchive {
		r.archiveExport(ctx, g)
	}

	return r.Find(ctx, g.ID)
}

// checkGuards enforces the action's preconditions. Submission requires the
// worked days at every office to reconcile with the office window minus the
// discounted leave days; returning a grade requires notes.
func (r *repo) checkGuards(g *PeriodGrade, action Action, notes string) error {
	switch action {
	case ActionSubmit:
		for _, o := range g.Offices {
			if o.LaborDaysWorked != o.OfficeLaborDays-o.DiscountedDays {
				return fmt.Errorf(
					"%w: office %s worked %d days against %d expected",
					ErrGuardFailed, o.OfficeID, o.LaborDaysWorked, o.OfficeLaborDays-o.DiscountedDays,
				)
			}
		}
	case ActionReturn:
		if notes == "" {
			return ErrNotesRequired
		}
	}
	return nil
}

// archiveExport publishes the consolidated CSV to blob storage. Failure is
// logged but does not undo the transition.
func (r *repo) archiveExport(ctx context.Context, g *PeriodGrade) {
	if r.storage == nil {
		return
	}

	key := fmt.Sprintf("exports/%d/%s.csv", g.Period, g.ID)
	if err := r.uploadExport(ctx, g, key); err != nil {
		r.logger.Warn("export archival failed", "grade", g.ID, "key", key, "error", err)
		return
	}

	r.logger.Info("export archived", "grade", g.ID, "key", key)
}

func (r *repo) findByKey(ctx context.Context, officialID uuid.UUID, period int) (*PeriodGrade, error) {
	qb := query.
		NewBuilder(projection).
		WhereEquals("OfficialID", officialID).
		WhereEquals("Period", period)

	q, args := qb.BuildSingleOrNull()

	g, err := repository.QueryOne(ctx, r.db, q, args, scanGrade)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &g, nil
}

func (r *repo) loadChildren(ctx context.Context, g *PeriodGrade) error {
	offices, err := repository.QueryMany(ctx, r.db, `
		SELECT id, grade_id, office_id, office_labor_days, labor_days_worked,
			discounted_days, hearings_score, efficiency_score
		FROM office_grades WHERE grade_id = $1
		ORDER BY office_id`,
		[]any{g.ID}, scanOfficeGrade)
	if err != nil {
		return fmt.Errorf("query office grades: %w", err)
	}

	for i := range offices {
		subfactors, err := repository.QueryMany(ctx, r.db, `
			SELECT id, office_grade_id, class, score, max_points, office_base_load,
				official_base_load, proportional_load, minimal_load, outflow
			FROM subfactor_results WHERE office_grade_id = $1
			ORDER BY class`,
			[]any{offices[i].ID}, scanSubfactor)
		if err != nil {
			return fmt.Errorf("query subfactors: %w", err)
		}
		offices[i].Subfactors = subfactors

		consolidated, err := repository.QueryMany(ctx, r.db, `
			SELECT id, office_grade_id, category, from_date, to_date, labor_days,
				initial_inventory, income, effective_load, outflow, settlements,
				final_inventory, remaining
			FROM consolidated_records WHERE office_grade_id = $1
			ORDER BY from_date`,
			[]any{offices[i].ID}, scanConsolidated)
		if err != nil {
			return fmt.Errorf("query consolidated records: %w", err)
		}
		offices[i].Consolidated = consolidated
	}

	notes, err := repository.QueryMany(ctx, r.db, `
		SELECT id, grade_id, author, notes, resulting_state, created_at
		FROM review_notes WHERE grade_id = $1
		ORDER BY created_at`,
		[]any{g.ID}, scanNote)
	if err != nil {
		return fmt.Errorf("query review notes: %w", err)
	}

	g.Offices = offices
	g.Notes = notes
	return nil
}

func authorName(actor middleware.Identity) string {
	if actor.Name != "" {
		return actor.Name
	}
	return actor.Subject
}
