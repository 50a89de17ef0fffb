// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package.
//
// Loggers travel in the request context: middleware stores a request-scoped
// logger with WithLogger and downstream code retrieves it with FromContext.
package logger
