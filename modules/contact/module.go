package contact

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iotx/contactrelay/handler"
	"github.com/iotx/contactrelay/pkg/binder"
	"github.com/iotx/contactrelay/pkg/clientip"
	"github.com/iotx/contactrelay/pkg/environment"
	"github.com/iotx/contactrelay/pkg/logger"
	"github.com/iotx/contactrelay/pkg/ratelimit"
	contactsvc "github.com/iotx/contactrelay/svc/contact"
)

// Submitter is the part of contactsvc.Service the module needs.
type Submitter interface {
	Submit(ctx context.Context, ip string, req contactsvc.ContactRequest) (contactsvc.Receipt, error)
}

// quotaReader is implemented by submitters that can report a client's
// remaining quota without counting a request.
type quotaReader interface {
	Quota(ctx context.Context, ip string) (*ratelimit.Result, error)
}

// Module serves /health and /contact. Mount it under /api.
type Module struct {
	svc       Submitter
	responder Responder
	bodyLimit int64
	log       *slog.Logger
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithBodyLimit caps POST bodies in bytes.
func WithBodyLimit(n int64) ModuleOption {
	return func(m *Module) {
		if n > 0 {
			m.bodyLimit = n
		}
	}
}

// WithLogger sets the logger used for request errors.
func WithLogger(l *slog.Logger) ModuleOption {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// NewModule returns the relay HTTP module.
func NewModule(svc Submitter, env environment.Environment, opts ...ModuleOption) *Module {
	m := &Module{
		svc:       svc,
		responder: NewResponder(env),
		bodyLimit: 500 << 10,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle implements Mountable.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.GetHead)

	r.Get("/health", m.health)
	r.Post("/contact", handler.Wrap(m.submit,
		handler.WithBinders(m.bindJSON(binder.JSON(binder.WithMaxBytes(m.bodyLimit)))),
		handler.WithErrorHandler(m.errorHandler()),
	))

	return r
}

type healthReply struct {
	Status string `json:"status"`
}

// health always answers ok; it does not probe the mail transport.
func (m *Module) health(w http.ResponseWriter, _ *http.Request) {
	_ = handler.WriteJSON(w, http.StatusOK, healthReply{Status: "ok"})
}

func (m *Module) submit(ctx handler.Context, req contactsvc.ContactRequest) handler.Response {
	receipt, err := m.svc.Submit(ctx, clientIP(ctx), req)
	if receipt.RateLimit != nil {
		ratelimit.WriteHeaders(ctx.ResponseWriter(), receipt.RateLimit)
	}

	status, reply := m.responder.Reply(err)
	return handler.JSON(reply, handler.WithJSONStatus(status))
}

// errorHandler answers requests rejected before Submit. Their quota headers
// show the current state; the request itself is not counted.
func (m *Module) errorHandler() handler.ErrorHandler {
	next := handler.NewJSONErrorHandler(m.log, errorReply)
	qr, ok := m.svc.(quotaReader)
	if !ok {
		return next
	}
	return func(ctx handler.Context, err error) {
		if res, qerr := qr.Quota(ctx, clientIP(ctx)); qerr == nil {
			ratelimit.WriteHeaders(ctx.ResponseWriter(), res)
		} else {
			m.log.WarnContext(ctx, "rate limit status unavailable", logger.Error(qerr))
		}
		next(ctx, err)
	}
}

func clientIP(ctx handler.Context) string {
	if ip := clientip.FromContext(ctx); ip != "" {
		return ip
	}
	return clientip.GetIP(ctx.Request())
}

// bindJSON translates binder failures into client-facing HTTP errors.
func (m *Module) bindJSON(bind handler.Bind) handler.Bind {
	return func(r *http.Request, v any) error {
		err := bind(r, v)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, binder.ErrBodyTooLarge):
			return errors.Join(err, handler.ErrRequestEntityTooLarge.WithMessage(MsgBodyTooLarge))
		case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
			return errors.Join(err, handler.ErrUnsupportedMediaType.WithMessage(MsgContentType))
		default:
			return errors.Join(err, handler.ErrBadRequest.WithMessage(MsgInvalidBody))
		}
	}
}

func errorReply(info handler.ErrorInfo) any {
	if info.StatusCode >= http.StatusInternalServerError {
		return Reply{Message: MsgUnexpected}
	}
	return Reply{Message: info.Message}
}
