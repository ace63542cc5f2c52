package logger

import (
	"encoding/json"
	"log/slog"
	"testing"
)

func TestRedactSensitive_SecretKeys(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"password", "hunter2", redactedValue},
		{"client_secret", "s", redactedValue},
		{"AuthToken", "abc", redactedValue},
		{"password", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := redactSensitive(slog.String(tt.key, tt.value))
			if got.Value.String() != tt.want {
				t.Errorf("redactSensitive(%s=%q) = %q, want %q", tt.key, tt.value, got.Value.String(), tt.want)
			}
		})
	}
}

func TestRedactSensitive_Payloads(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{"string value", slog.String("value", "hello"), "[5 bytes]"},
		{"bytes payload", slog.Any("payload", []byte{1, 2, 3}), "[3 bytes]"},
		{"args", slog.Any("args", []string{"a", "b"}), "[2 items]"},
		{"upper case key", slog.String("Value", "xy"), "[2 bytes]"},
		{"other type", slog.Int("value", 7), redactedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redactSensitive(tt.attr)
			if got.Value.String() != tt.want {
				t.Errorf("redactSensitive() = %q, want %q", got.Value.String(), tt.want)
			}
		})
	}
}

func TestRedactSensitive_NormalValues(t *testing.T) {
	for _, a := range []slog.Attr{
		slog.String("command", "get"),
		slog.String("remote", "10.0.0.1:4000"),
		slog.Int("keys", 3),
	} {
		got := redactSensitive(a)
		if !got.Equal(a) {
			t.Errorf("redactSensitive(%v) = %v, want unchanged", a, got)
		}
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	a := slog.Group("req", slog.String("command", "set"), slog.String("value", "abc"))
	got := redactSensitive(a)

	attrs := got.Value.Group()
	if attrs[0].Value.String() != "set" {
		t.Errorf("command = %q, want set", attrs[0].Value.String())
	}
	if attrs[1].Value.String() != "[3 bytes]" {
		t.Errorf("value = %q, want [3 bytes]", attrs[1].Value.String())
	}
}

func TestRedaction_EndToEnd(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	l.Info("stored", "key", "user:1", "value", "top secret data")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["key"] != "user:1" {
		t.Errorf("key = %v, want user:1", entry["key"])
	}
	if entry["value"] != "[15 bytes]" {
		t.Errorf("value = %v, want [15 bytes]", entry["value"])
	}
}

func TestIsSecretKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"api_token", true},
		{"Authorization", true},
		{"key", false},
		{"conn_id", false},
	}

	for _, tt := range tests {
		if got := IsSecretKey(tt.key); got != tt.want {
			t.Errorf("IsSecretKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSizeOf(t *testing.T) {
	if got := SizeOf(nil); got != "[0 bytes]" {
		t.Errorf("SizeOf(nil) = %q", got)
	}
	if got := SizeOf(""); got != "[0 bytes]" {
		t.Errorf("SizeOf(\"\") = %q", got)
	}
}
