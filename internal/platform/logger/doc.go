// Package logger sets up the service's JSON slog logger and carries
// request-scoped loggers (with trace_id and user_id attached) through
// context.Context.
package logger
