package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/iotx/contactrelay/pkg/clientip"
	"github.com/iotx/contactrelay/pkg/email"
	"github.com/iotx/contactrelay/pkg/environment"
	"github.com/iotx/contactrelay/pkg/logger"
	"github.com/iotx/contactrelay/pkg/ratelimit"
)

// Tag marks relayed messages for transports that support tagging.
const Tag = "contact-form"

// Service turns ContactRequests into emails to a fixed recipient.
type Service struct {
	limiter   ratelimit.Limiter
	sender    email.EmailSender
	recipient string
	env       environment.Environment
	log       *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEnvironment sets the environment consulted for log detail.
func WithEnvironment(env environment.Environment) Option {
	return func(s *Service) { s.env = env }
}

// WithClock overrides time.Now, used for durations in logs.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a Service. All three dependencies are required.
func NewService(limiter ratelimit.Limiter, sender email.EmailSender, recipient string, opts ...Option) (*Service, error) {
	if limiter == nil || sender == nil {
		return nil, fmt.Errorf("%w: limiter and sender are required", ErrInvalidConfig)
	}
	if err := (email.SendEmailParams{SendTo: recipient, Subject: Subject, BodyHTML: "-"}).Validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	s := &Service{
		limiter:   limiter,
		sender:    sender,
		recipient: recipient,
		env:       environment.Development,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("contact"))
	return s, nil
}

// Receipt describes how far a submission got.
type Receipt struct {
	// Stage is the last stage reached before the response.
	Stage Stage
	// RateLimit is the limiter verdict, nil if the limiter failed.
	RateLimit *ratelimit.Result
}

// Quota reports the rate limit state of ip without counting a request.
func (s *Service) Quota(ctx context.Context, ip string) (*ratelimit.Result, error) {
	return s.limiter.Status(ctx, ip)
}

// Submit runs one submission from ip through the rate check, validation and
// dispatch. Errors match ErrRateLimitExceeded, ErrValidation or ErrDispatch;
// anything else is unexpected.
func (s *Service) Submit(ctx context.Context, ip string, req ContactRequest) (Receipt, error) {
	start := s.now()
	if clientip.FromContext(ctx) == "" {
		ctx = clientip.WithContext(ctx, ip)
	}
	m := pipeline.New()
	var receipt Receipt

	respond := func(err error) (Receipt, error) {
		receipt.Stage = m.Current()
		if fireErr := m.Fire(ctx, eventRespond, nil); fireErr != nil {
			return receipt, errors.Join(err, fireErr)
		}
		return receipt, err
	}
	advance := func(ev event) error {
		if err := m.Fire(ctx, ev, nil); err != nil {
			return fmt.Errorf("contact pipeline: %w", err)
		}
		return nil
	}

	res, err := s.limiter.Check(ctx, ip)
	if err != nil {
		s.log.ErrorContext(ctx, "rate limit check failed",
			logger.Event("contact.unexpected"), logger.Error(err))
		return respond(err)
	}
	receipt.RateLimit = res
	if !res.Allowed {
		s.log.WarnContext(ctx, "contact form rate limited",
			logger.Event("contact.rate_limited"),
			slog.Time("reset_at", res.ResetAt))
		return respond(ErrRateLimitExceeded)
	}
	if err := advance(eventAdmitted); err != nil {
		return respond(err)
	}

	if err := Validate(req); err != nil {
		s.log.InfoContext(ctx, "contact form rejected",
			logger.Event("contact.invalid"), logger.Error(err))
		return respond(err)
	}
	if err := advance(eventValidated); err != nil {
		return respond(err)
	}

	subject, body, err := RenderEmail(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "render contact email",
			logger.Event("contact.unexpected"), logger.Error(err))
		return respond(err)
	}

	err = s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   s.recipient,
		ReplyTo:  replyTo(req.Email),
		Subject:  subject,
		BodyHTML: body,
		Tag:      Tag,
	})
	if err != nil {
		derr := &DispatchError{Code: email.ErrorCode(err), Err: err}
		s.log.ErrorContext(ctx, "failed to send contact email",
			logger.Event("contact.dispatch_failed"),
			slog.String("error_code", derr.Code), logger.Error(err),
			logger.Duration(s.now().Sub(start)))
		return respond(derr)
	}
	if err := advance(eventSent); err != nil {
		return respond(err)
	}

	attrs := []any{logger.Event("contact.sent"), logger.Duration(s.now().Sub(start))}
	if s.env.Verbose() {
		attrs = append(attrs, slog.String("from", req.Email))
	}
	s.log.InfoContext(ctx, "contact email sent", attrs...)
	return respond(nil)
}

// replyTo returns addr when it is a usable header address. The shape check in
// Validate is looser than RFC 5322, and a bad Reply-To must not block delivery.
func replyTo(addr string) string {
	if _, err := mail.ParseAddress(addr); err != nil {
		return ""
	}
	return addr
}
