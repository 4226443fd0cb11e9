package grades

import (
	"fmt"
	"slices"
)

// State is a grade's position in the review workflow.
type State string

const (
	StateDraft    State = "draft"
	StateReview   State = "review"
	StateApproved State = "approved"
	StateReturned State = "returned"
	StateArchived State = "archived"
	StateDeleted  State = "deleted"
)

// Mutable reports whether the grade's source data may still change.
// Once a grade enters review its inputs are frozen until it is returned.
func (s State) Mutable() bool {
	switch s {
	case StateDraft, StateReturned, StateDeleted:
		return true
	}
	return false
}

// Valid reports whether the state is a known value.
func (s State) Valid() bool {
	switch s {
	case StateDraft, StateReview, StateApproved, StateReturned, StateArchived, StateDeleted:
		return true
	}
	return false
}

// Action is a workflow operation requested against a grade.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReturn  Action = "return"
	ActionArchive Action = "archive"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
)

// Capability names the permission flags carried by authenticated callers.
type Capability string

const (
	CapabilityEditor   Capability = "editor"
	CapabilityReviewer Capability = "reviewer"
	CapabilityAdmin    Capability = "admin"
)

var transitions = map[State]map[Action]State{
	StateDraft: {
		ActionSubmit: StateReview,
		ActionDelete: StateDeleted,
	},
	StateReturned: {
		ActionSubmit: StateReview,
		ActionDelete: StateDeleted,
	},
	StateReview: {
		ActionApprove: StateApproved,
		ActionReturn:  StateReturned,
	},
	StateApproved: {
		ActionReturn:  StateReturned,
		ActionArchive: StateArchived,
	},
	StateDeleted: {
		ActionRestore: StateDraft,
	},
}

var actionCapabilities = map[Action]Capability{
	ActionSubmit:  CapabilityEditor,
	ActionApprove: CapabilityReviewer,
	ActionReturn:  CapabilityReviewer,
	ActionArchive: CapabilityReviewer,
	ActionDelete:  CapabilityAdmin,
	ActionRestore: CapabilityAdmin,
}

// Transition resolves the state an action produces from the current state.
// Returns ErrInvalidTransition when the action does not apply.
func Transition(from State, action Action) (State, error) {
	next, ok := transitions[from][action]
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, from)
	}
	return next, nil
}

// RequiredCapability returns the capability an action demands.
func RequiredCapability(action Action) (Capability, error) {
	c, ok := actionCapabilities[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %s", ErrInvalidTransition, action)
	}
	return c, nil
}

// Authorize checks that the caller's capability flags cover the action.
// Each action demands its own capability; holding admin grants only the
// admin-scoped actions.
func Authorize(action Action, capabilities []string) error {
	required, err := RequiredCapability(action)
	if err != nil {
		return err
	}

	if slices.Contains(capabilities, string(required)) {
		return nil
	}

	return fmt.Errorf("%w: %s requires %s", ErrUnauthorized, action, required)
}
