// Package memory provides the in-memory key-value store for respkv.
//
// Entries live in a sharded concurrent map (pkg/cmap). Every operation
// locks a single shard for a single map lookup, insert or removal, so the
// store never holds a lock across network I/O.
//
// Expiration is lazy: an entry past its expiry stays resident until the
// next Fetch of that key removes it. There is no background sweep.
package memory
