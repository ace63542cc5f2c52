// Package cmap provides a concurrent-safe sharded map keyed by strings.
//
// Keys are spread across a power-of-two number of shards with MurmurHash3.
// Each shard has its own RWMutex, so operations on different shards never
// contend and every critical section covers a single map operation.
//
// Usage:
//
//	m := cmap.New[[]byte](cmap.WithShardCount(32))
//	m.Set("key", []byte("value"))
//	old, ok := m.Pop("key")
//
// LoadOrEvict supports read-time invalidation: the caller supplies a
// predicate and stale entries are removed under the shard write lock.
package cmap
