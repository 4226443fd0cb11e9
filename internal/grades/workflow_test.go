package grades

import (
	"errors"
	"strings"
	"testing"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from   State
		action Action
		want   State
	}{
		{StateDraft, ActionSubmit, StateReview},
		{StateDraft, ActionDelete, StateDeleted},
		{StateReturned, ActionSubmit, StateReview},
		{StateReturned, ActionDelete, StateDeleted},
		{StateReview, ActionApprove, StateApproved},
		{StateReview, ActionReturn, StateReturned},
		{StateApproved, ActionReturn, StateReturned},
		{StateApproved, ActionArchive, StateArchived},
		{StateDeleted, ActionRestore, StateDraft},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.action), func(t *testing.T) {
			got, err := Transition(tt.from, tt.action)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTransitionRejected(t *testing.T) {
	tests := []struct {
		from   State
		action Action
	}{
		{StateDraft, ActionApprove},
		{StateDraft, ActionArchive},
		{StateReview, ActionSubmit},
		{StateReview, ActionDelete},
		{StateApproved, ActionApprove},
		{StateArchived, ActionReturn},
		{StateArchived, ActionArchive},
		{StateDeleted, ActionSubmit},
		{StateReturned, ActionRestore},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.action), func(t *testing.T) {
			if _, err := Transition(tt.from, tt.action); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestStateMutable(t *testing.T) {
	mutable := map[State]bool{
		StateDraft:    true,
		StateReturned: true,
		StateDeleted:  true,
		StateReview:   false,
		StateApproved: false,
		StateArchived: false,
	}

	for state, want := range mutable {
		if got := state.Mutable(); got != want {
			t.Errorf("%s: expected mutable=%v, got %v", state, want, got)
		}
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name         string
		action       Action
		capabilities []string
		wantErr      bool
	}{
		{"editor submits", ActionSubmit, []string{"editor"}, false},
		{"editor cannot approve", ActionApprove, []string{"editor"}, true},
		{"reviewer approves", ActionApprove, []string{"reviewer"}, false},
		{"reviewer returns", ActionReturn, []string{"reviewer"}, false},
		{"reviewer archives", ActionArchive, []string{"reviewer"}, false},
		{"reviewer cannot delete", ActionDelete, []string{"reviewer"}, true},
		{"admin deletes", ActionDelete, []string{"admin"}, false},
		{"admin restores", ActionRestore, []string{"admin"}, false},
		{"admin alone cannot submit", ActionSubmit, []string{"admin"}, true},
		{"admin alone cannot approve", ActionApprove, []string{"admin"}, true},
		{"no capabilities", ActionSubmit, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.action, tt.capabilities)
			if tt.wantErr && !errors.Is(err, ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckGuards(t *testing.T) {
	r := &repo{}

	balanced := &PeriodGrade{
		Offices: []OfficeGrade{
			{OfficeLaborDays: 200, LaborDaysWorked: 185, DiscountedDays: 15},
		},
	}
	unbalanced := &PeriodGrade{
		Offices: []OfficeGrade{
			{OfficeLaborDays: 200, LaborDaysWorked: 180, DiscountedDays: 15},
		},
	}

	if err := r.checkGuards(balanced, ActionSubmit, ""); err != nil {
		t.Errorf("expected balanced grade to pass submit guard, got %v", err)
	}
	if err := r.checkGuards(unbalanced, ActionSubmit, ""); !errors.Is(err, ErrGuardFailed) {
		t.Errorf("expected ErrGuardFailed, got %v", err)
	}
	if err := r.checkGuards(balanced, ActionReturn, ""); !errors.Is(err, ErrNotesRequired) {
		t.Errorf("expected ErrNotesRequired, got %v", err)
	}
	if err := r.checkGuards(balanced, ActionReturn, "rework the oral subfactor"); err != nil {
		t.Errorf("expected return with notes to pass, got %v", err)
	}
	if err := r.checkGuards(unbalanced, ActionApprove, ""); err != nil {
		t.Errorf("expected approve to carry no guards, got %v", err)
	}
}

func TestRenderExport(t *testing.T) {
	g := &PeriodGrade{
		Offices: []OfficeGrade{
			{
				Consolidated: []ConsolidatedRow{
					{
						Category:         "Consolidated",
						LaborDays:        20,
						InitialInventory: 12,
						Income:           9,
						Outflow:          9,
						Settlements:      1,
						FinalInventory:   11,
						Remaining:        3,
					},
				},
			},
		},
	}

	data, err := renderExport(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "office_id") {
		t.Errorf("expected header row, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], ",remaining") {
		t.Errorf("expected remaining as the trailing column, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",11,3") {
		t.Errorf("expected final inventory and remaining to close the row, got %q", lines[1])
	}
}
