package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/cli/repl"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/pkg/resp"
)

// ErrReplyError is returned when the server answered with an error reply.
// The reply has already been printed.
var ErrReplyError = errors.New("server returned an error reply")

const sessionKey = "session"

// session is the per-invocation state shared by all commands.
type session struct {
	cfg       *config.CLIConfig
	client    *connection.Client
	formatter output.Formatter
	out       io.Writer
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "respkv-cli",
		Usage:   "command-line client for respkv",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			SetCommand(),
			GetCommand(),
			DelCommand(),
			ConfigCommand(),
		},
		Before: setup,
		After:  teardown,
		Action: runREPL,
	}
}

// globalFlags returns the global CLI flags. Defaults live in config.Default
// so that only flags the user set override the file and environment.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file",
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Usage:   "server address, host:port or unix socket path (default 127.0.0.1:6379)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, raw, json, yaml (default text)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "dial and round-trip timeout (default 5s)",
		},
	}
}

// overrides collects the flags the user set explicitly.
func overrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("addr") {
		m["addr"] = c.String("addr")
	}
	if c.IsSet("output") {
		m["output"] = c.String("output")
	}
	if c.IsSet("timeout") {
		m["timeout"] = c.Duration("timeout").String()
	}
	return m
}

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), overrides(c))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[sessionKey] = &session{
		cfg:       cfg,
		client:    connection.NewClient(cfg.Addr, cfg.Timeout),
		formatter: output.NewFormatter(format),
		out:       out,
	}
	return nil
}

func teardown(c *cli.Context) error {
	if s := getSession(c); s != nil {
		return s.client.Close()
	}
	return nil
}

func getSession(c *cli.Context) *session {
	s, _ := c.App.Metadata[sessionKey].(*session)
	return s
}

// do sends one command and prints the reply.
func (s *session) do(ctx context.Context, args ...string) error {
	v, err := s.client.Do(ctx, args...)
	if err != nil {
		return err
	}
	if err := s.formatter.Format(s.out, v); err != nil {
		return err
	}
	if v.Kind() == resp.SimpleErrorKind {
		return ErrReplyError
	}
	return nil
}

func runREPL(c *cli.Context) error {
	s := getSession(c)
	if c.Args().Present() {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}

	history := s.cfg.History
	if history == "" {
		history = repl.DefaultHistoryFile()
	}
	r := repl.New(
		func(ctx context.Context, args []string) error {
			if err := s.do(ctx, args...); err != nil && !errors.Is(err, ErrReplyError) {
				return err
			}
			return nil
		},
		repl.WithIO(os.Stdin, s.out),
		repl.WithPrompt(s.client.Addr()+"> "),
		repl.WithHistory(repl.NewHistory(history)),
	)
	return r.Run(c.Context)
}
