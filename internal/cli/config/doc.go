// Package config holds the respkv-cli settings.
//
// Values come from, lowest priority first: built-in defaults, the YAML
// file (~/.respkv/cli.yaml), RESPKV_CLI_* environment variables and
// command-line flags.
package config
