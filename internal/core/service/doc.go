// Package service provides the command layer of respkv.
//
// It turns decoded protocol values into typed domain commands and executes
// them against a key-value store:
//
//   - parser.go: ParseCommand validates names, arity and argument types
//   - executor.go: Executor maps each command to a store action and a reply
//
// Storage is injected through the KeyValueStore interface. The executor has
// no other state and is safe for concurrent use by every connection.
package service
