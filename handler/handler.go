package handler

import (
	"net/http"
)

// HandlerFunc handles a request already decoded into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses HTTP requests into typed values.
type Bind func(r *http.Request, v any) error

// ErrorHandler handles errors from binding or rendering.
type ErrorHandler func(ctx Context, err error)

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	binders      []Bind
	errorHandler ErrorHandler
}

// WithBinders sets request binders, applied in order.
func WithBinders(binders ...Bind) WrapOption {
	return func(c *wrapConfig) {
		c.binders = append(c.binders, binders...)
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) WrapOption {
	return func(c *wrapConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// defaultErrorHandler answers with the HTTPError status when err carries one,
// otherwise with a plain 500.
func defaultErrorHandler(ctx Context, err error) {
	info := Classify(err)
	http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
//
//	http.HandleFunc("/api/contact", handler.Wrap(submit,
//		handler.WithBinders(binder.JSON(binder.WithMaxBytes(512000))),
//		handler.WithErrorHandler(errorHandler),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := &wrapConfig{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		response := h(ctx, req)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
