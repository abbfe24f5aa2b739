package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// JSONOption configures the JSON binder.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	maxBytes int64
	strict   bool
}

// WithMaxBytes caps the request body. Larger bodies fail with ErrBodyTooLarge.
func WithMaxBytes(n int64) JSONOption {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// Strict rejects unknown fields.
func Strict() JSONOption {
	return func(c *jsonConfig) { c.strict = true }
}

// JSON creates a binder that decodes an application/json body into v.
func JSON(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxBytes: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		if err := r.Context().Err(); err != nil {
			return errors.Join(ErrFailedToParseJSON, err)
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		if r.ContentLength > cfg.maxBytes {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, cfg.maxBytes)
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxBytes+1))
		if err != nil {
			return errors.Join(ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > cfg.maxBytes {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, cfg.maxBytes)
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		if cfg.strict {
			decoder.DisallowUnknownFields()
		}
		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		// Ensure entire body was consumed
		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}
		return nil
	}
}
