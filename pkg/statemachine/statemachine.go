package statemachine

import (
	"context"
	"sync"
)

// Guard evaluates whether a transition may proceed.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Action runs side effects during a transition. Returning an error prevents the state change.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Transition defines a state change triggered by an event.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // all must pass
	Actions []Action[S, E] // executed in order before the state changes
}

// Definition is an immutable transition table. Machines created from the
// same Definition share it, so a Definition is built once and reused.
type Definition[S, E comparable] struct {
	initial     S
	transitions map[S]map[E][]Transition[S, E]
	observers   []func(from, to S, event E)
}

// Machine is a thread-safe running instance of a Definition.
type Machine[S, E comparable] struct {
	def     *Definition[S, E]
	current S
	mu      sync.RWMutex
}

// New returns a Machine positioned at the initial state.
func (d *Definition[S, E]) New() *Machine[S, E] {
	return &Machine[S, E]{def: d, current: d.initial}
}

// Initial returns the state new machines start in.
func (d *Definition[S, E]) Initial() S { return d.initial }

// Current returns the state the machine is in.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire applies event. The first transition whose guards all pass wins.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.def.transitions[m.current][event]
	if len(candidates) == 0 {
		return &NoTransitionError[S, E]{State: m.current, Event: event}
	}

	t := m.pick(ctx, candidates, event, data)
	if t == nil {
		return &TransitionRejectedError[S, E]{State: m.current, Event: event}
	}

	for _, action := range t.Actions {
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return &ActionError[S, E]{From: m.current, To: t.To, Event: event, Err: err}
		}
	}

	from := m.current
	m.current = t.To
	for _, observe := range m.def.observers {
		observe(from, t.To, event)
	}
	return nil
}

// CanFire reports whether event would be accepted in the current state.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pick(ctx, m.def.transitions[m.current][event], event, data) != nil
}

// Reset moves the machine back to the initial state.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.def.initial
}

func (m *Machine[S, E]) pick(ctx context.Context, candidates []Transition[S, E], event E, data any) *Transition[S, E] {
	for i := range candidates {
		if passes(ctx, candidates[i].Guards, m.current, event, data) {
			return &candidates[i]
		}
	}
	return nil
}

func passes[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, g := range guards {
		if !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
