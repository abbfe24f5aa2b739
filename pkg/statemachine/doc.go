// Package statemachine provides a small generic finite state machine.
//
// A Definition holds the transition table and is built once, usually at
// package level. Each unit of work then starts its own Machine from it:
//
//	type stage string
//	type event string
//
//	var pipeline = statemachine.MustDefine[stage, event]("received",
//		statemachine.WithTransition[stage, event]("received", "checked", "check"),
//		statemachine.WithTransition[stage, event]("checked", "done", "finish"),
//	)
//
//	m := pipeline.New()
//	if err := m.Fire(ctx, "check", nil); err != nil {
//		// no edge, guard rejected, or action failed
//	}
//
// Guards decide between competing transitions for the same event (the first
// passing transition wins). Actions run before the state changes and can veto
// it by returning an error. Observers see every committed transition.
package statemachine
