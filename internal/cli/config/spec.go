package config

import "time"

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	// Addr is the server address, host:port or a unix socket path.
	Addr    string        `koanf:"addr" yaml:"addr"`
	Output  string        `koanf:"output" yaml:"output"` // text, raw, json, yaml
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`

	// History is the REPL history file; empty disables persistence.
	History string `koanf:"history" yaml:"history"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Addr:    "127.0.0.1:6379",
		Output:  "text",
		Timeout: 5 * time.Second,
	}
}
