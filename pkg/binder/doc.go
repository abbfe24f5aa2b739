// Package binder decodes HTTP request bodies into Go values for use with
// handler.Wrap.
//
//	handler.Wrap(submit, handler.WithBinders(binder.JSON(binder.WithMaxBytes(512000))))
//
// The JSON binder requires an application/json content type, enforces a body
// size cap (ErrBodyTooLarge) and reports malformed input as
// ErrFailedToParseJSON. Unknown fields are ignored unless Strict is given.
package binder
