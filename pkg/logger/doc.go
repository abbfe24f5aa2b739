// Package logger builds log/slog loggers for the relay and its tools.
//
// New applies functional options on top of production defaults (JSON, info
// level, stdout). WithEnvironment switches to readable text output at debug
// level for non-production environments and tags every record with env and
// service. Request scoped values such as the request id or client IP are
// attached through ContextExtractor functions, evaluated on each record.
//
// NewFromConfig reads LOG_LEVEL, LOG_FORMAT and LOG_FILE* settings; a
// configured LOG_FILE is written through a rotating lumberjack writer in
// addition to stdout.
//
//	log := logger.New(
//		logger.WithEnvironment(env, "contactrelay"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "message sent", logger.Event("contact.sent"))
package logger
