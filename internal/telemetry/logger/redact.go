package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// Attribute keys whose values are credentials and are never logged.
var secretKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
}

// Attribute keys that carry client data. Only their size is logged.
var payloadKeys = map[string]bool{
	"value":   true,
	"payload": true,
	"message": true,
	"args":    true,
}

const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if IsSecretKey(a.Key) {
		if a.Value.Kind() == slog.KindString && a.Value.String() == "" {
			return a
		}
		return slog.String(a.Key, redactedValue)
	}

	if payloadKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, SizeOf(a.Value.Any()))
	}
	return a
}

// IsSecretKey reports whether an attribute key names a credential.
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	for _, p := range secretKeyPatterns {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}

// SizeOf describes a payload by length only, e.g. "[5 bytes]".
func SizeOf(v any) string {
	switch x := v.(type) {
	case string:
		return "[" + strconv.Itoa(len(x)) + " bytes]"
	case []byte:
		return "[" + strconv.Itoa(len(x)) + " bytes]"
	case []string:
		return "[" + strconv.Itoa(len(x)) + " items]"
	case nil:
		return "[0 bytes]"
	}
	return redactedValue
}
