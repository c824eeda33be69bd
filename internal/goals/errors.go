package goals

import (
	"errors"
	"fmt"
)

var (
	// ErrGoalIDNotFound matches any GoalIDNotFoundError via errors.Is.
	ErrGoalIDNotFound = errors.New("goal not found")
	// ErrChildrenGoalsExist is returned when deleting a goal that still
	// requires other goals.
	ErrChildrenGoalsExist = errors.New("goal still requires other goals")
	// ErrRequirementCycle is returned by AddRequirement under CycleReject.
	ErrRequirementCycle = errors.New("requirement would create a cycle")
)

// GoalIDNotFoundError reports the goal id that was missing from the registry.
type GoalIDNotFoundError struct {
	ID GoalID
}

func (e *GoalIDNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("goals: goal %d not found", e.ID)
}

func (e *GoalIDNotFoundError) Unwrap() error { return ErrGoalIDNotFound }

func notFound(id GoalID) error {
	return &GoalIDNotFoundError{ID: id}
}

func childrenExist(id GoalID, count int) error {
	return fmt.Errorf("goals: delete %d (%d required): %w", id, count, ErrChildrenGoalsExist)
}

func cycle(parent, child GoalID) error {
	return fmt.Errorf("goals: %d -> %d: %w", parent, child, ErrRequirementCycle)
}

// MissingGoalID extracts the offending id from a not-found error.
func MissingGoalID(err error) (GoalID, bool) {
	var nf *GoalIDNotFoundError
	if errors.As(err, &nf) {
		return nf.ID, true
	}
	return 0, false
}
