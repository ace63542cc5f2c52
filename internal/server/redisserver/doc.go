// Package redisserver serves the respkv command set over RESP.
//
// Each accepted TCP connection gets its own goroutine that decodes one
// request at a time, executes it and writes the reply. Pipelined requests
// are answered in order and flushed once the input buffer drains.
//
// Supported commands:
//   - PING [message]
//   - ECHO message
//   - SET key value [PX milliseconds]
//   - GET key
//   - DEL key [key ...]
//
// Command errors are answered with a RESP error and the connection stays
// open. Malformed input gets a best-effort protocol error reply, after
// which the connection is closed.
package redisserver
