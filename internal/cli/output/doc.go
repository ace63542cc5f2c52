// Package output renders server replies for respkv-cli.
//
// Formats:
//
//   - text: human-readable, one reply per line (`OK`, `"v"`, `(nil)`, `(integer) 1`)
//   - raw: payload only, suitable for shell pipelines
//   - json, yaml: structured form with the reply type spelled out
package output
