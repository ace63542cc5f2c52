// Package repl provides the interactive mode of respkv-cli.
//
//   - repl.go: read-eval-print loop and built-in commands
//   - args.go: splitting an input line into command arguments
//   - completer.go: command name completion
//   - history.go: history persistence
package repl
