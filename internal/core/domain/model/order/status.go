package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──┬──> Completed
//	          └──> Canceled
//
// Completed and Canceled are terminal. The allowed moves live in
// statusTransitions; anything not listed there is rejected.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Completed
	Canceled
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Completed: "COMPLETED",
	Canceled:  "CANCELED",
}

var statusTransitions = map[Status][]Status{
	Pending: {Completed, Canceled},
}

// ParseStatus converts the persisted/wire name into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// CanTransitionTo reports whether target is reachable in one step.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the move is allowed.
//
// Leaving a terminal state yields a StatusTransitionIsInvalidError. An
// unknown target, or a target that is not reachable from a non-terminal
// state (e.g. Pending -> Pending), yields a validation error.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewStatusTransitionIsInvalidError("status", s.String(), target.String())
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid target status from %s", target, s),
		)
	}
	return target, nil
}

// Complete moves Pending to Completed.
func (s Status) Complete() (Status, error) {
	return s.TransitionTo(Completed)
}

// Cancel moves Pending to Canceled.
func (s Status) Cancel() (Status, error) {
	return s.TransitionTo(Canceled)
}
