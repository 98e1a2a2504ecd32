// Package logger provides structured logging for the MoM agent.
//
// It builds on log/slog with a JSON handler by default and a text handler
// for local terminals, and carries request-scoped loggers through
// context.Context.
package logger
