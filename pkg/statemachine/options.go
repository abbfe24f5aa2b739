package statemachine

import "fmt"

// Option configures a Definition during construction.
type Option[S, E comparable] func(*Definition[S, E]) error

// TransitionOption attaches guards and actions to a single transition.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// Define builds a Definition starting in initial.
func Define[S, E comparable](initial S, opts ...Option[S, E]) (*Definition[S, E], error) {
	d := &Definition[S, E]{
		initial:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustDefine is like Define but panics on error. Intended for package-level tables.
func MustDefine[S, E comparable](initial S, opts ...Option[S, E]) *Definition[S, E] {
	d, err := Define(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return d
}

// WithTransition adds a transition. Several transitions may share the same
// from/event pair; they are tried in the order they were added.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(d *Definition[S, E]) error {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return d.add(t)
	}
}

// WithTransitionFrom adds the same event edge from each state in from.
func WithTransitionFrom[S, E comparable](from []S, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(d *Definition[S, E]) error {
		if len(from) == 0 {
			return ErrNoSourceStates
		}
		for _, f := range from {
			if err := WithTransition(f, to, event, opts...)(d); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithObserver registers a callback invoked after every successful transition.
func WithObserver[S, E comparable](fn func(from, to S, event E)) Option[S, E] {
	return func(d *Definition[S, E]) error {
		if fn == nil {
			return ErrNilObserver
		}
		d.observers = append(d.observers, fn)
		return nil
	}
}

// WithGuard adds a guard to a transition.
func WithGuard[S, E comparable](g Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if g != nil {
			t.Guards = append(t.Guards, g)
		}
	}
}

// WithAction adds an action to a transition.
func WithAction[S, E comparable](a Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if a != nil {
			t.Actions = append(t.Actions, a)
		}
	}
}

func (d *Definition[S, E]) add(t Transition[S, E]) error {
	if _, ok := d.transitions[t.From]; !ok {
		d.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	d.transitions[t.From][t.Event] = append(d.transitions[t.From][t.Event], t)
	return nil
}
