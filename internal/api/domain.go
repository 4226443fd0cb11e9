package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/internal/calendar"
	"github.com/rama-judicial/escalafon/internal/grades"
	"github.com/rama-judicial/escalafon/internal/hearings"
	"github.com/rama-judicial/escalafon/internal/officials"
	"github.com/rama-judicial/escalafon/internal/offices"
	"github.com/rama-judicial/escalafon/internal/records"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Offices   offices.System
	Officials officials.System
	Records   records.System
	Hearings  hearings.System
	Grades    grades.System
	Calendar  *calendar.Handler
}

// NewDomain creates all domain systems from the API runtime. The grading
// system is created first so source-data systems can gate their mutations
// on grade state and trigger recomputation.
func NewDomain(runtime *Runtime) *Domain {
	gradesSystem := grades.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		runtime.Storage,
	)

	guard := &gradeGuard{sys: gradesSystem}

	officesSystem := offices.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	officialsSystem := officials.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		guard,
	)

	recordsSystem := records.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		guard,
	)

	hearingsSystem := hearings.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		guard,
	)

	return &Domain{
		Offices:   officesSystem,
		Officials: officialsSystem,
		Records:   recordsSystem,
		Hearings:  hearingsSystem,
		Grades:    gradesSystem,
		Calendar:  calendar.NewHandler(officesSystem, runtime.Logger),
	}
}

// gradeGuard adapts the grading system to the narrow guard interface the
// source-data systems depend on.
type gradeGuard struct {
	sys grades.System
}

func (g *gradeGuard) EnsureMutable(ctx context.Context, officialID uuid.UUID, period int) error {
	return g.sys.EnsureMutable(ctx, officialID, period)
}

func (g *gradeGuard) Recompute(ctx context.Context, officialID uuid.UUID, period int) error {
	_, err := g.sys.Recompute(ctx, officialID, period)
	return err
}
