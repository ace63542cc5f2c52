// Package command defines the respkv-cli commands.
//
// Each key-value command sends one request and prints the reply with
// the selected output format. Without a command the CLI starts an
// interactive REPL against the same connection.
//
//	respkv-cli -a 127.0.0.1:6379 set --px 5000 greeting hello
//	respkv-cli get greeting
//	respkv-cli -o json del a b c
package command
