package grades

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/middleware"
)

// The stubs below implement just enough of database/sql/driver to serve the
// grade row behind Transition and record the statements it executes.

type execCall struct {
	query string
	args  []driver.Value
}

type stubConn struct {
	grade          *PeriodGrade
	updateAffected int64
	execs          []execCall
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("unsupported") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if strings.Contains(query, "period_grades") {
		g := c.grade
		return &stubRows{
			columns: []string{"id", "official_id", "period", "state", "weighted_score", "created_at", "updated_at"},
			values: [][]driver.Value{{
				g.ID.String(), g.OfficialID.String(), int64(g.Period),
				string(g.State), g.WeightedScore, g.CreatedAt, g.UpdatedAt,
			}},
		}, nil
	}
	return &stubRows{columns: []string{"id"}}, nil
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	vals := make([]driver.Value, len(args))
	for i, a := range args {
		vals[i] = a.Value
	}
	c.execs = append(c.execs, execCall{query: query, args: vals})

	affected := int64(1)
	if strings.HasPrefix(strings.TrimSpace(query), "UPDATE period_grades") {
		affected = c.updateAffected
	}
	return stubResult{affected: affected}, nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubResult struct{ affected int64 }

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.affected, nil }

type stubRows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *stubRows) Columns() []string { return r.columns }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}

type stubConnector struct{ conn *stubConn }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return nil, errors.New("unsupported") }

func stubRepo(conn *stubConn) (*repo, *sql.DB) {
	db := sql.OpenDB(stubConnector{conn: conn})
	return &repo{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, db
}

func draftGrade() *PeriodGrade {
	now := time.Now().UTC()
	return &PeriodGrade{
		ID:         uuid.New(),
		OfficialID: uuid.New(),
		Period:     2024,
		State:      StateDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestTransitionUpdateCarriesExpectedState(t *testing.T) {
	conn := &stubConn{grade: draftGrade(), updateAffected: 1}
	r, db := stubRepo(conn)
	defer db.Close()

	actor := middleware.Identity{Subject: "editor-1", Capabilities: []string{"editor"}}
	if _, err := r.Transition(context.Background(), conn.grade.ID, ActionSubmit, actor, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var update *execCall
	for i := range conn.execs {
		if strings.HasPrefix(strings.TrimSpace(conn.execs[i].query), "UPDATE period_grades") {
			update = &conn.execs[i]
		}
	}
	if update == nil {
		t.Fatal("expected a period_grades update")
	}

	if !strings.Contains(update.query, "AND state = $4") {
		t.Errorf("expected the update to predicate on the prior state, got %q", update.query)
	}
	if len(update.args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(update.args))
	}
	if update.args[0] != string(StateReview) {
		t.Errorf("expected next state review, got %v", update.args[0])
	}
	if update.args[3] != string(StateDraft) {
		t.Errorf("expected prior state draft in the predicate, got %v", update.args[3])
	}
}

func TestTransitionStaleStateFails(t *testing.T) {
	// Zero affected rows is what the predicate produces when another
	// transition landed first.
	conn := &stubConn{grade: draftGrade(), updateAffected: 0}
	r, db := stubRepo(conn)
	defer db.Close()

	actor := middleware.Identity{Subject: "editor-1", Capabilities: []string{"editor"}}
	_, err := r.Transition(context.Background(), conn.grade.ID, ActionSubmit, actor, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for the losing transition, got %v", err)
	}
}
