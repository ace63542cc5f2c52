package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "KV-CMD-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ReplyText renders err as the text of a RESP simple error.
// DomainErrors render as "ERR <code> <message>[: <details>]", anything else
// as "ERR <message>". CR and LF become spaces so the text fits one line.
func ReplyText(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		msg := "ERR " + de.Code + " " + de.Message
		if de.Details != "" {
			msg += ": " + de.Details
		}
		return oneLine(msg)
	}
	return oneLine("ERR " + err.Error())
}

func oneLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}

// ============================================================================
// Command Errors (CMD)
// ============================================================================

var (
	// ErrInvalidCommand indicates the request is not an array of bulk strings,
	// or an argument has the wrong wire type.
	ErrInvalidCommand = NewDomainError("KV-CMD-4000", "invalid command")

	// ErrInvalidArguments indicates a wrong argument count or syntax.
	ErrInvalidArguments = NewDomainError("KV-CMD-4001", "wrong number of arguments")

	// ErrInvalidExpiry indicates a PX value that is not an unsigned integer.
	ErrInvalidExpiry = NewDomainError("KV-CMD-4002", "invalid expire time")

	// ErrUnknownCommand indicates the command name is not recognized.
	ErrUnknownCommand = NewDomainError("KV-CMD-4040", "unknown command")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrRateLimited indicates the client exceeded its command rate.
	ErrRateLimited = NewDomainError("KV-SYS-4290", "rate limit exceeded")

	// ErrInternal indicates a command reached the executor without a handler.
	ErrInternal = NewDomainError("KV-SYS-5000", "internal error")
)
