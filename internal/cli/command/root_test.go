package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/core/service"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// startServer runs a real respkv server on a loopback port.
func startServer(t *testing.T) string {
	t.Helper()
	cfg := redisserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	srv := redisserver.New(cfg, service.NewExecutor(memory.New()), redisserver.WithLogger(logger.Nop()))
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// run executes the CLI with args and returns what it printed.
func run(t *testing.T, addr string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &out

	full := append([]string{"respkv-cli", "-c", "", "-a", addr}, args...)
	err := app.Run(full)
	return out.String(), err
}

func TestApp(t *testing.T) {
	app := App()
	if app.Name != "respkv-cli" {
		t.Errorf("Name = %q", app.Name)
	}
	if app.Version == "" {
		t.Error("Version should not be empty")
	}

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"ping", "echo", "set", "get", "del", "config"} {
		if !names[name] {
			t.Errorf("missing command %q", name)
		}
	}

	flags := make(map[string]bool)
	for _, f := range app.Flags {
		flags[f.Names()[0]] = true
	}
	for _, name := range []string{"config", "addr", "output", "timeout"} {
		if !flags[name] {
			t.Errorf("missing flag %q", name)
		}
	}
}

// ============================================================================
// Key-value commands
// ============================================================================

func TestCommands(t *testing.T) {
	addr := startServer(t)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"ping"}, "PONG\n"},
		{[]string{"ping", "hi"}, "hi\n"},
		{[]string{"echo", "hello"}, "hello\n"},
		{[]string{"get", "k"}, "(nil)\n"},
		{[]string{"set", "k", "v"}, "OK\n"},
		{[]string{"get", "k"}, "v\n"},
		{[]string{"del", "k", "other"}, "(integer) 1\n"},
		{[]string{"get", "k"}, "(nil)\n"},
	}

	for _, s := range steps {
		got, err := run(t, addr, s.args...)
		if err != nil {
			t.Fatalf("%v: error = %v", s.args, err)
		}
		if got != s.want {
			t.Errorf("%v: output = %q, want %q", s.args, got, s.want)
		}
	}
}

func TestSetPX(t *testing.T) {
	addr := startServer(t)

	if _, err := run(t, addr, "set", "--px", "30", "k", "v"); err != nil {
		t.Fatalf("set error = %v", err)
	}
	if got, _ := run(t, addr, "get", "k"); got != "v\n" {
		t.Fatalf("get before expiry = %q", got)
	}

	time.Sleep(80 * time.Millisecond)
	if got, _ := run(t, addr, "get", "k"); got != "(nil)\n" {
		t.Errorf("get after expiry = %q, want (nil)", got)
	}
}

func TestErrorReply(t *testing.T) {
	addr := startServer(t)

	got, err := run(t, addr, "set", "--px", "-5", "k", "v")
	if !errors.Is(err, ErrReplyError) {
		t.Fatalf("error = %v, want ErrReplyError", err)
	}
	if !strings.HasPrefix(got, "(error) ERR ") {
		t.Errorf("output = %q", got)
	}
}

func TestOutputFormats(t *testing.T) {
	addr := startServer(t)

	tests := []struct {
		format string
		want   string
	}{
		{"raw", "PONG\n"},
		{"json", `"type": "simple-string"`},
		{"yaml", "type: simple-string"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := run(t, addr, "-o", tt.format, "ping")
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("output = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := [][]string{
		{"ping", "a", "b"},
		{"echo"},
		{"set", "k"},
		{"get"},
		{"del"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			// No server needed: validation happens before dialing.
			if _, err := run(t, "127.0.0.1:1", args...); err == nil {
				t.Errorf("%v should fail", args)
			}
		})
	}
}

func TestBadOutputFormat(t *testing.T) {
	if _, err := run(t, "127.0.0.1:1", "-o", "table", "ping"); err == nil {
		t.Error("unknown output format should fail")
	}
}

func TestDialError(t *testing.T) {
	_, err := run(t, "127.0.0.1:1", "--timeout", "200ms", "ping")
	if err == nil || errors.Is(err, ErrReplyError) {
		t.Errorf("error = %v, want a dial error", err)
	}
}

// ============================================================================
// Config
// ============================================================================

func TestConfigShow(t *testing.T) {
	got, err := run(t, "10.1.2.3:7000", "-o", "json", "config", "show")
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	for _, want := range []string{"10.1.2.3:7000", "output: json", "timeout: 5s"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	if _, err := run(t, "127.0.0.1:1", "config", "init", path); err != nil {
		t.Fatalf("init error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "127.0.0.1:6379") {
		t.Errorf("file content = %q", data)
	}

	if _, err := run(t, "127.0.0.1:1", "config", "init", path); err == nil {
		t.Error("init over an existing file should fail without --force")
	}
	if _, err := run(t, "127.0.0.1:1", "config", "init", "--force", path); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}
