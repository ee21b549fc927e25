// Package logging builds the structured loggers used across the module.
// Loggers are log/slog loggers writing JSON or text records; the application
// hands the same logger to Fx, provider types and generators.
package logging
