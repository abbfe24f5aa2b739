package contactform

// Status tags how a submission ended.
type Status int

const (
	// StatusFailed means the relay refused the message or could not be reached
	// after a successful probe. Reason holds the text to show inline.
	StatusFailed Status = iota
	// StatusDelivered means the relay accepted the message.
	StatusDelivered
	// StatusSimulatedDelivered means the probe failed and success was shown
	// without sending anything.
	StatusSimulatedDelivered
)

func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusSimulatedDelivered:
		return "simulated"
	default:
		return "failed"
	}
}

// Result is the outcome of one submission.
type Result struct {
	Status Status
	// Message is the relay's success message, empty for simulated results.
	Message string
	// Reason is the user-facing failure text.
	Reason string
	// ErrorCode is the relay's errorCode field, when it sent one.
	ErrorCode string
	// HTTPStatus is the relay's status code, zero when no POST was made.
	HTTPStatus int
}

// Submitted reports whether the UI should show the success state.
func (r Result) Submitted() bool {
	return r.Status == StatusDelivered || r.Status == StatusSimulatedDelivered
}

func failed(reason string) Result {
	return Result{Status: StatusFailed, Reason: reason}
}
