package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/iotx/contactrelay/pkg/logger"
)

// ErrorInfo contains classified error information.
type ErrorInfo struct {
	StatusCode int
	Key        string
	Message    string
	LogLevel   slog.Level
}

// Classify maps err to a status code and client-safe message. Errors that
// are not HTTPError become 500 without exposing err's text.
func Classify(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Key:        ErrInternalServerError.Key,
		Message:    http.StatusText(http.StatusInternalServerError),
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Key = httpErr.Key
		info.Message = httpErr.Message
		if info.Message == "" {
			info.Message = http.StatusText(httpErr.Code)
		}
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// ErrorBody builds the JSON document sent for a classified error.
type ErrorBody func(info ErrorInfo) any

// NewJSONErrorHandler logs err and answers with body(info) as JSON.
func NewJSONErrorHandler(log *slog.Logger, body ErrorBody) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	if body == nil {
		body = func(info ErrorInfo) any {
			return map[string]string{"error": info.Key, "message": info.Message}
		}
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if werr := WriteJSON(ctx.ResponseWriter(), info.StatusCode, body(info)); werr != nil {
			log.ErrorContext(r.Context(), "failed to write error response",
				logger.Error(werr), logger.Event("render_error"))
		}
	}
}
