// Command respkv-cli sends commands to a respkv server.
//
// Usage:
//
//	respkv-cli [global flags] [command] [args]
//	respkv-cli ping
//	respkv-cli set --px 1000 session:1 token
//	respkv-cli -o json get session:1
//
// Run without a command to start the interactive mode.
package main
