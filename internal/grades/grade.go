// Package grades implements the grading lifecycle: assembled period grades
// per official, their office breakdowns, the review workflow, and the
// consolidated export produced on archival.
package grades

import (
	"time"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/internal/records"
)

// PeriodGrade is one official's grade for one calendar period, with the
// weighted score across every office they served.
type PeriodGrade struct {
	ID            uuid.UUID     `json:"id"`
	OfficialID    uuid.UUID     `json:"official_id"`
	Period        int           `json:"period"`
	State         State         `json:"state"`
	WeightedScore float64       `json:"weighted_score"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Offices       []OfficeGrade `json:"offices,omitempty"`
	Notes         []ReviewNote  `json:"notes,omitempty"`
}

// OfficeGrade is the assembled grade for one office the official served
// during the period.
type OfficeGrade struct {
	ID              uuid.UUID           `json:"id"`
	GradeID         uuid.UUID           `json:"grade_id"`
	OfficeID        uuid.UUID           `json:"office_id"`
	OfficeLaborDays int                 `json:"office_labor_days"`
	LaborDaysWorked int                 `json:"labor_days_worked"`
	DiscountedDays  int                 `json:"discounted_days"`
	HearingsScore   float64             `json:"hearings_score"`
	EfficiencyScore float64             `json:"efficiency_score"`
	Subfactors      []SubfactorRow      `json:"subfactors,omitempty"`
	Consolidated    []ConsolidatedRow   `json:"consolidated,omitempty"`
}

// SubfactorRow is a persisted subfactor result.
type SubfactorRow struct {
	ID               uuid.UUID     `json:"id"`
	OfficeGradeID    uuid.UUID     `json:"office_grade_id"`
	Class            records.Class `json:"class"`
	Score            float64       `json:"score"`
	MaxPoints        float64       `json:"max_points"`
	OfficeBaseLoad   float64       `json:"office_base_load"`
	OfficialBaseLoad float64       `json:"official_base_load"`
	ProportionalLoad float64       `json:"proportional_load"`
	MinimalLoad      float64       `json:"minimal_load"`
	Outflow          float64       `json:"outflow"`
}

// ConsolidatedRow is a persisted consolidated reporting window.
type ConsolidatedRow struct {
	ID               uuid.UUID `json:"id"`
	OfficeGradeID    uuid.UUID `json:"office_grade_id"`
	Category         string    `json:"category"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	LaborDays        int       `json:"labor_days"`
	InitialInventory int       `json:"initial_inventory"`
	Income           int       `json:"income"`
	EffectiveLoad    int       `json:"effective_load"`
	Outflow          int       `json:"outflow"`
	Settlements      int       `json:"settlements"`
	FinalInventory   int       `json:"final_inventory"`
	Remaining        int       `json:"remaining"`
}

// ReviewNote records who drove a workflow transition, when, and the state
// it produced. Every transition appends one.
type ReviewNote struct {
	ID             uuid.UUID `json:"id"`
	GradeID        uuid.UUID `json:"grade_id"`
	Author         string    `json:"author"`
	Notes          string    `json:"notes"`
	ResultingState State     `json:"resulting_state"`
	CreatedAt      time.Time `json:"created_at"`
}
