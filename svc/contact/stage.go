package contact

import "github.com/iotx/contactrelay/pkg/statemachine"

// Stage is a step of the relay pipeline for one submission.
type Stage string

const (
	StageReceived    Stage = "received"
	StageRateChecked Stage = "rate_checked"
	StageValidated   Stage = "validated"
	StageMailSent    Stage = "mail_sent"
	StageResponded   Stage = "responded"
)

type event string

const (
	eventAdmitted  event = "admitted"
	eventValidated event = "validated"
	eventSent      event = "sent"
	eventRespond   event = "respond"
)

// pipeline is linear. Any stage may exit early to StageResponded.
var pipeline = statemachine.MustDefine(StageReceived,
	statemachine.WithTransition[Stage, event](StageReceived, StageRateChecked, eventAdmitted),
	statemachine.WithTransition[Stage, event](StageRateChecked, StageValidated, eventValidated),
	statemachine.WithTransition[Stage, event](StageValidated, StageMailSent, eventSent),
	statemachine.WithTransitionFrom[Stage, event](
		[]Stage{StageReceived, StageRateChecked, StageValidated, StageMailSent},
		StageResponded, eventRespond,
	),
)
