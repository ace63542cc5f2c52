// Package domain defines the core domain models for respkv.
//
// Domain models are plain values without IO dependencies or wire-format
// coupling. This package contains:
//
//   - Command: the closed set of typed commands (PING, ECHO, SET, GET, DEL)
//   - Entry: a stored value with an optional absolute expiry
//   - Errors: command-level error definitions with structured codes
package domain
