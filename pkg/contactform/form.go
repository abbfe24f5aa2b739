package contactform

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iotx/contactrelay/pkg/logger"
	"github.com/iotx/contactrelay/pkg/statemachine"
	"github.com/iotx/contactrelay/svc/contact"
)

const (
	// PageResetDelay is how long the dedicated contact page shows success.
	PageResetDelay = 5 * time.Second
	// ModalResetDelay is how long the embedded modal shows success.
	ModalResetDelay = 3 * time.Second
	// SimulatedDelay is the pause before a simulated success.
	SimulatedDelay = 1 * time.Second

	unreachableReason = "Unable to reach the server. Please try again later."
)

// Phase is the UI state of a Form.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
	PhaseFailed     Phase = "failed"
)

type formEvent string

const (
	evSubmit  formEvent = "submit"
	evDeliver formEvent = "deliver"
	evFail    formEvent = "fail"
	evReset   formEvent = "reset"
)

var phases = statemachine.MustDefine(PhaseIdle,
	statemachine.WithTransitionFrom[Phase, formEvent]([]Phase{PhaseIdle, PhaseFailed}, PhaseSubmitting, evSubmit),
	statemachine.WithTransition[Phase, formEvent](PhaseSubmitting, PhaseSubmitted, evDeliver),
	statemachine.WithTransition[Phase, formEvent](PhaseSubmitting, PhaseFailed, evFail),
	statemachine.WithTransition[Phase, formEvent](PhaseSubmitted, PhaseIdle, evReset),
)

// Transport is what a Form needs from a relay client.
type Transport interface {
	Probe(ctx context.Context) bool
	Send(ctx context.Context, req contact.ContactRequest) (Result, error)
}

// State is a snapshot of a Form for rendering.
type State struct {
	Phase   Phase
	Request contact.ContactRequest
	// Error is the inline error text, set only in PhaseFailed.
	Error string
	// Last is the most recent result, nil after a reset.
	Last *Result
}

// Busy reports whether the submit button should show its busy state.
func (s State) Busy() bool { return s.Phase == PhaseSubmitting }

// Form holds the in-progress ContactRequest and drives a submission.
type Form struct {
	transport      Transport
	resetDelay     time.Duration
	simulatedDelay time.Duration
	simulate       bool
	onChange       func(State)
	log            *slog.Logger

	inFlight atomic.Bool

	mu      sync.Mutex
	machine *statemachine.Machine[Phase, formEvent]
	req     contact.ContactRequest
	errText string
	last    *Result
	timer   *time.Timer
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithResetDelay sets how long the success state lasts before the form clears.
func WithResetDelay(d time.Duration) FormOption {
	return func(f *Form) { f.resetDelay = d }
}

// WithSimulatedDelay sets the pause before a simulated success.
func WithSimulatedDelay(d time.Duration) FormOption {
	return func(f *Form) { f.simulatedDelay = d }
}

// WithSimulatedFallback toggles the fake success shown when the probe fails.
// When disabled an unreachable relay yields StatusFailed.
func WithSimulatedFallback(enabled bool) FormOption {
	return func(f *Form) { f.simulate = enabled }
}

// WithOnChange registers a callback invoked with every new State.
func WithOnChange(fn func(State)) FormOption {
	return func(f *Form) { f.onChange = fn }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) FormOption {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// NewForm returns a Form with the contact page timings.
func NewForm(t Transport, opts ...FormOption) *Form {
	f := &Form{
		transport:      t,
		resetDelay:     PageResetDelay,
		simulatedDelay: SimulatedDelay,
		simulate:       true,
		log:            slog.Default(),
		machine:        phases.New(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With(logger.Component("contactform"))
	return f
}

// NewModalForm returns a Form with the embedded modal timings.
func NewModalForm(t Transport, opts ...FormOption) *Form {
	return NewForm(t, append([]FormOption{WithResetDelay(ModalResetDelay)}, opts...)...)
}

// Set overwrites one field of the in-progress request.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	ok := f.req.Set(field, value)
	f.mu.Unlock()
	if !ok {
		return ErrUnknownField
	}
	f.notify()
	return nil
}

// State returns the current snapshot.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// Submit validates the request, probes the relay and sends it, or simulates
// success when the relay is down. A concurrent second call returns
// ErrSubmitInFlight without side effects.
func (f *Form) Submit(ctx context.Context) (Result, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrSubmitInFlight
	}
	defer f.inFlight.Store(false)

	f.mu.Lock()
	if err := f.machine.Fire(ctx, evSubmit, nil); err != nil {
		f.mu.Unlock()
		return Result{}, ErrAwaitingReset
	}
	f.errText = ""
	req := f.req
	f.mu.Unlock()
	f.notify()

	res, err := f.run(ctx, req)
	f.finish(ctx, res)
	return res, err
}

func (f *Form) run(ctx context.Context, req contact.ContactRequest) (Result, error) {
	if err := contact.Validate(req); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			return failed(verr.Message), nil
		}
		return failed(FallbackReason), nil
	}

	if !f.transport.Probe(ctx) {
		if !f.simulate {
			return failed(unreachableReason), nil
		}
		f.log.WarnContext(ctx, "relay unreachable, showing simulated success",
			logger.Event("contactform.simulated"))
		if err := sleep(ctx, f.simulatedDelay); err != nil {
			return failed(FallbackReason), err
		}
		return Result{Status: StatusSimulatedDelivered}, nil
	}

	res, err := f.transport.Send(ctx, req)
	if err != nil {
		f.log.ErrorContext(ctx, "contact submission failed",
			logger.Event("contactform.transport"), logger.Error(err))
	}
	return res, err
}

func (f *Form) finish(ctx context.Context, res Result) {
	f.mu.Lock()
	f.last = &res
	if res.Submitted() {
		_ = f.machine.Fire(ctx, evDeliver, nil)
		f.scheduleReset()
	} else {
		_ = f.machine.Fire(ctx, evFail, nil)
		f.errText = res.Reason
	}
	f.mu.Unlock()
	f.notify()
}

// scheduleReset must be called with mu held.
func (f *Form) scheduleReset() {
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.resetDelay, f.reset)
}

func (f *Form) reset() {
	f.mu.Lock()
	if f.machine.Fire(context.Background(), evReset, nil) != nil {
		f.mu.Unlock()
		return
	}
	f.req = contact.ContactRequest{}
	f.last = nil
	f.errText = ""
	f.timer = nil
	f.mu.Unlock()
	f.notify()
}

// Close cancels a pending reset.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Form) snapshot() State {
	s := State{Phase: f.machine.Current(), Request: f.req, Error: f.errText}
	if f.last != nil {
		last := *f.last
		s.Last = &last
	}
	return s
}

func (f *Form) notify() {
	if f.onChange == nil {
		return
	}
	f.onChange(f.State())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
