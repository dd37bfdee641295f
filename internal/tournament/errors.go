package tournament

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStateViolation matches any operation attempted in the wrong state.
	ErrStateViolation = errors.New("state violation")

	// ErrInvalidTransition matches status changes outside the whitelist.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInsufficientCompetitors is returned when the pool is too small to
	// build a schedule.
	ErrInsufficientCompetitors = errors.New("not enough competitors")

	// ErrInvalidConfig is returned when a schedule cannot be built from
	// the configuration: no distances, a non-positive distance, or an
	// empty field.
	ErrInvalidConfig = errors.New("invalid tournament config")

	// ErrNoActiveRound is returned when the active index points nowhere.
	ErrNoActiveRound = errors.New("no active round")

	// ErrNotParticipant is returned for progress updates from competitors
	// outside the active round.
	ErrNotParticipant = errors.New("competitor is not in the active round")

	// ErrProgressRegression is returned when an update would move a
	// competitor backwards.
	ErrProgressRegression = errors.New("progress cannot decrease")

	// ErrRaceStalled is returned when a race does not finish within the
	// configured tick limit.
	ErrRaceStalled = errors.New("race did not finish")

	// ErrNotRunning is returned when a race loop is driven with no race
	// underway.
	ErrNotRunning = errors.New("no race is running")

	// ErrRaceAborted is returned when a running race is discarded before
	// it finishes.
	ErrRaceAborted = errors.New("race aborted")
)

// StateError reports an operation invoked outside its required state.
type StateError struct {
	Op       string
	Current  Status
	Required Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while in state %s: must be %s", e.Op, e.Current, e.Required)
}

func (e *StateError) Is(target error) bool {
	return target == ErrStateViolation
}

// TransitionError reports a status change that is not whitelisted.
type TransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

func (e *TransitionError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = s.String()
	}
	return fmt.Sprintf("invalid race state transition: %s -> %s (allowed: %s)", e.From, e.To, strings.Join(names, ", "))
}

// Is matches both ErrInvalidTransition and ErrStateViolation; callers
// treat the two the same way.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition || target == ErrStateViolation
}
