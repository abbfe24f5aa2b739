package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNoSourceStates = errors.New("statemachine: transition needs at least one source state")
	ErrNilObserver    = errors.New("statemachine: observer cannot be nil")
)

// NoTransitionError reports that no transition exists for the state/event pair.
type NoTransitionError[S, E comparable] struct {
	State S
	Event E
}

func (e *NoTransitionError[S, E]) Error() string {
	return fmt.Sprintf("no transition available from state '%v' for event '%v'", e.State, e.Event)
}

// TransitionRejectedError reports that every candidate transition was blocked by a guard.
type TransitionRejectedError[S, E comparable] struct {
	State S
	Event E
}

func (e *TransitionRejectedError[S, E]) Error() string {
	return fmt.Sprintf("transition from state '%v' for event '%v' was rejected by guards", e.State, e.Event)
}

// ActionError wraps the error returned by a transition action.
type ActionError[S, E comparable] struct {
	From  S
	To    S
	Event E
	Err   error
}

func (e *ActionError[S, E]) Error() string {
	return fmt.Sprintf("action failed on '%v' -> '%v' (%v): %v", e.From, e.To, e.Event, e.Err)
}

func (e *ActionError[S, E]) Unwrap() error { return e.Err }
