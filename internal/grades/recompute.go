package grades

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rama-judicial/escalafon/internal/calendar"
	"github.com/rama-judicial/escalafon/internal/offices"
	"github.com/rama-judicial/escalafon/internal/records"
	"github.com/rama-judicial/escalafon/internal/scoring"
	"github.com/rama-judicial/escalafon/pkg/repository"
)

// officeOutcome pairs an assembled office result with its persistence keys.
type officeOutcome struct {
	officeID       uuid.UUID
	discountedDays int
	result         *scoring.OfficeResult
}

func (r *repo) Recompute(ctx context.Context, officialID uuid.UUID, period int) (*PeriodGrade, error) {
	if err := r.officialExists(ctx, officialID); err != nil {
		return nil, err
	}

	officeIDs, err := r.officeIDs(ctx, officialID, period)
	if err != nil {
		return nil, err
	}

	outcomes := make([]officeOutcome, 0, len(officeIDs))
	scores := make([]scoring.OfficeScore, 0, len(officeIDs))

	for _, officeID := range officeIDs {
		outcome, err := r.assembleOffice(ctx, officialID, officeID, period)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, *outcome)
		scores = append(scores, scoring.OfficeScore{
			Efficiency: outcome.result.EfficiencyScore,
			DaysWorked: outcome.result.LaborDaysWorked,
		})
	}

	weighted := scoring.WeightedScore(scores)

	gradeID, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (uuid.UUID, error) {
		return r.persist(ctx, tx, officialID, period, weighted, outcomes)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("grade recomputed",
		"official", officialID,
		"period", period,
		"offices", len(outcomes),
		"weighted_score", weighted,
	)

	return r.Find(ctx, gradeID)
}

func (r *repo) RecomputeOffice(ctx context.Context, officeID uuid.UUID, period int) error {
	officialIDs, err := r.officialIDs(ctx, officeID, period)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, officialID := range officialIDs {
		g.Go(func() error {
			if _, err := r.Recompute(ctx, officialID, period); err != nil {
				return fmt.Errorf("official %s: %w", officialID, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// assembleOffice gathers one office's inputs and runs the grade assembly.
func (r *repo) assembleOffice(ctx context.Context, officialID, officeID uuid.UUID, period int) (*officeOutcome, error) {
	officeType, err := r.officeType(ctx, officeID)
	if err != nil {
		return nil, err
	}

	rows, err := r.officeRecords(ctx, officeID, period)
	if err != nil {
		return nil, err
	}

	reclassified := records.Reclassify(rows)

	maxCapacity := 0
	if hasClass(reclassified, records.ClassOral) {
		maxCapacity, err = r.capacity(ctx, officeType.ID, period)
		if err != nil {
			return nil, err
		}
	}

	start, end := recordWindow(reclassified)
	deductible, discounted, err := r.leaveDays(ctx, officialID, officeID, start, end)
	if err != nil {
		return nil, err
	}

	hearings, err := r.hearingTotals(ctx, officialID, officeID, period)
	if err != nil {
		return nil, err
	}

	result, err := scoring.ComputeOfficeGrade(scoring.OfficeInput{
		OfficialID:          officialID,
		Type:                officeType,
		MaxCapacity:         maxCapacity,
		Calendar:            calendar.Resolve(officeType),
		Records:             rows,
		Hearings:            hearings,
		DeductibleLeaveDays: deductible,
	})
	if err != nil {
		return nil, fmt.Errorf("office %s: %w", officeID, err)
	}

	return &officeOutcome{
		officeID:       officeID,
		discountedDays: discounted,
		result:         result,
	}, nil
}

// persist replaces the derived rows for the grade inside a transaction,
// creating the draft grade when none exists.
func (r *repo) persist(
	ctx context.Context,
	tx *sql.Tx,
	officialID uuid.UUID,
	period int,
	weighted float64,
	outcomes []officeOutcome,
) (uuid.UUID, error) {
	now := time.Now().UTC()

	var gradeID uuid.UUID
	var state State
	err := tx.QueryRowContext(ctx,
		"SELECT id, state FROM period_grades WHERE official_id = $1 AND period = $2",
		officialID, period,
	).Scan(&gradeID, &state)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		gradeID = uuid.New()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO period_grades(id, official_id, period, state, weighted_score, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			gradeID, officialID, period, StateDraft, weighted, now,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert grade: %w", err)
		}
	case err != nil:
		return uuid.Nil, fmt.Errorf("find grade: %w", err)
	default:
		if !state.Mutable() {
			return uuid.Nil, fmt.Errorf("%w: state %s", ErrImmutable, state)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE period_grades SET weighted_score = $1, updated_at = $2 WHERE id = $3",
			weighted, now, gradeID,
		); err != nil {
			return uuid.Nil, fmt.Errorf("update grade: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM office_grades WHERE grade_id = $1", gradeID); err != nil {
		return uuid.Nil, fmt.Errorf("clear office grades: %w", err)
	}

	for _, o := range outcomes {
		officeGradeID := uuid.New()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO office_grades(
				id, grade_id, office_id, office_labor_days, labor_days_worked,
				discounted_days, hearings_score, efficiency_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			officeGradeID, gradeID, o.officeID,
			o.result.OfficeLaborDays, o.result.LaborDaysWorked,
			o.discountedDays, o.result.HearingsScore, o.result.EfficiencyScore,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert office grade: %w", err)
		}

		for _, sf := range o.result.Subfactors {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO subfactor_results(
					id, office_grade_id, class, score, max_points, office_base_load,
					official_base_load, proportional_load, minimal_load, outflow)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				uuid.New(), officeGradeID, sf.Class, sf.Score, sf.MaxPoints,
				sf.OfficeBaseLoad, sf.OfficialBaseLoad, sf.ProportionalLoad,
				sf.MinimalLoad, sf.Outflow,
			); err != nil {
				return uuid.Nil, fmt.Errorf("insert subfactor: %w", err)
			}
		}

		for _, c := range o.result.Consolidated {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO consolidated_records(
					id, office_grade_id, category, from_date, to_date, labor_days,
					initial_inventory, income, effective_load, outflow, settlements,
					final_inventory, remaining)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				uuid.New(), officeGradeID, c.Category, c.From, c.To, c.LaborDays,
				c.InitialInventory, c.Income, c.EffectiveLoad, c.Outflow,
				c.Settlements, c.FinalInventory, c.Remaining,
			); err != nil {
				return uuid.Nil, fmt.Errorf("insert consolidated record: %w", err)
			}
		}
	}

	return gradeID, nil
}

func (r *repo) officialExists(ctx context.Context, officialID uuid.UUID) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM officials WHERE id = $1)", officialID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check official: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrOfficialNotFound, officialID)
	}
	return nil
}

func (r *repo) officeIDs(ctx context.Context, officialID uuid.UUID, period int) ([]uuid.UUID, error) {
	return r.queryIDs(ctx, `
		SELECT DISTINCT office_id FROM performance_records
		WHERE official_id = $1 AND period = $2
		ORDER BY office_id`,
		officialID, period)
}

func (r *repo) officialIDs(ctx context.Context, officeID uuid.UUID, period int) ([]uuid.UUID, error) {
	return r.queryIDs(ctx, `
		SELECT DISTINCT official_id FROM performance_records
		WHERE office_id = $1 AND period = $2
		ORDER BY official_id`,
		officeID, period)
}

func (r *repo) queryIDs(ctx context.Context, q string, args ...any) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query ids: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// officeType loads the office's type. An office without a type cannot be
// graded since the type selects both calendar and capacity.
func (r *repo) officeType(ctx context.Context, officeID uuid.UUID) (*offices.OfficeType, error) {
	var typeID *uuid.UUID
	err := r.db.QueryRowContext(ctx,
		"SELECT office_type_id FROM offices WHERE id = $1", officeID,
	).Scan(&typeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrOfficeNotFound, officeID)
	}
	if err != nil {
		return nil, fmt.Errorf("query office: %w", err)
	}
	if typeID == nil {
		return nil, fmt.Errorf("%w: office %s", offices.ErrMissingType, officeID)
	}

	var t offices.OfficeType
	err = r.db.QueryRowContext(ctx,
		"SELECT id, specialty, category FROM office_types WHERE id = $1", *typeID,
	).Scan(&t.ID, &t.Specialty, &t.Category)
	if err != nil {
		return nil, fmt.Errorf("query office type: %w", err)
	}
	return &t, nil
}

func (r *repo) capacity(ctx context.Context, officeTypeID uuid.UUID, period int) (int, error) {
	var capacity int
	err := r.db.QueryRowContext(ctx,
		"SELECT max_capacity FROM office_type_capacities WHERE office_type_id = $1 AND period = $2",
		officeTypeID, period,
	).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: period %d", offices.ErrMissingCapacity, period)
	}
	if err != nil {
		return 0, fmt.Errorf("query capacity: %w", err)
	}
	return capacity, nil
}

func (r *repo) officeRecords(ctx context.Context, officeID uuid.UUID, period int) ([]records.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, office_id, official_id, period, class, category, from_date, to_date,
			initial_inventory, income, effective_load, outflow, settlements,
			final_inventory, remaining
		FROM performance_records
		WHERE office_id = $1 AND period = $2
		ORDER BY from_date, category`,
		officeID, period)
	if err != nil {
		return nil, fmt.Errorf("query office records: %w", err)
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var rec records.Record
		if err := rows.Scan(
			&rec.ID, &rec.OfficeID, &rec.OfficialID, &rec.Period, &rec.Class,
			&rec.Category, &rec.From, &rec.To, &rec.InitialInventory, &rec.Income,
			&rec.EffectiveLoad, &rec.Outflow, &rec.Settlements, &rec.FinalInventory,
			&rec.Remaining,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repo) leaveDays(
	ctx context.Context,
	officialID, officeID uuid.UUID,
	start, end time.Time,
) (deductible, discounted int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(deductible_days), 0), COALESCE(SUM(discounted_days), 0)
		FROM leave_periods
		WHERE official_id = $1 AND office_id = $2
			AND from_date <= $4 AND to_date >= $3`,
		officialID, officeID, start, end,
	).Scan(&deductible, &discounted)
	if err != nil {
		return 0, 0, fmt.Errorf("query leave days: %w", err)
	}
	return deductible, discounted, nil
}

func (r *repo) hearingTotals(ctx context.Context, officialID, officeID uuid.UUID, period int) (scoring.HearingTotals, error) {
	var t scoring.HearingTotals
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(scheduled), 0), COALESCE(SUM(attended), 0),
			COALESCE(SUM(postponed_external), 0), COALESCE(SUM(postponed_justified), 0),
			COALESCE(SUM(postponed_unjustified), 0)
		FROM hearing_records
		WHERE official_id = $1 AND office_id = $2 AND period = $3`,
		officialID, officeID, period,
	).Scan(&t.Scheduled, &t.Attended, &t.PostponedExternal, &t.PostponedJustified, &t.PostponedUnjustified)
	if err != nil {
		return t, fmt.Errorf("query hearing totals: %w", err)
	}
	return t, nil
}

func hasClass(recs []records.Record, class records.Class) bool {
	for _, r := range recs {
		if r.Class == class {
			return true
		}
	}
	return false
}

func recordWindow(recs []records.Record) (time.Time, time.Time) {
	if len(recs) == 0 {
		return time.Time{}, time.Time{}
	}
	start := recs[0].From
	end := recs[0].To
	for _, rec := range recs[1:] {
		if rec.From.Before(start) {
			start = rec.From
		}
		if rec.To.After(end) {
			end = rec.To
		}
	}
	return start, end
}
