package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv/internal/core/service"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// KeyCounts defines the store sizes for benchmarking.
var KeyCounts = []int{10000, 100000, 500000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000}

// ValueSizes are the payload sizes used by codec and SET benchmarks.
var ValueSizes = []int{16, 256, 4096}

// newKey generates a unique, time-ordered key.
func newKey() string {
	return "key:" + strings.ToLower(ulid.Make().String())
}

// newValue returns a payload of n bytes.
func newValue(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + i%26)
	}
	return b
}

// prefillStore fills a store with count keys, returning them.
func prefillStore(store *memory.Store, count int) []string {
	keys := make([]string, count)
	value := newValue(64)
	for i := range keys {
		keys[i] = newKey()
		store.Store(keys[i], value, time.Time{})
	}
	return keys
}

// startServer runs a server on a loopback port for the benchmark.
func startServer(b *testing.B) string {
	b.Helper()
	cfg := redisserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	srv := redisserver.New(cfg, service.NewExecutor(memory.New()), redisserver.WithLogger(logger.Nop()))
	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("start server: %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithKeyCounts runs a benchmark function with various store sizes.
func runWithKeyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
