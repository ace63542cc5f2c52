// Package logger provides structured logging for respkv.
//
// It wraps the standard library log/slog:
//
//   - logger.go: Logger interface, construction and the dynamic level
//   - context.go: context-carried loggers and connection IDs
//   - redact.go: masking of credentials and client payloads
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime
//   - Client data never reaches the log verbatim
//   - Per-connection loggers keyed by conn_id
package logger
