package benchmark

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/cli/connection"
)

// BenchmarkServerRoundTrip benchmarks one command per round trip over TCP.
func BenchmarkServerRoundTrip(b *testing.B) {
	addr := startServer(b)
	ctx := context.Background()

	cmds := map[string][]string{
		"ping": {"PING"},
		"set":  {"SET", "bench", string(newValue(64))},
		"get":  {"GET", "bench"},
	}
	for name, args := range cmds {
		b.Run(name, func(b *testing.B) {
			c := connection.NewClient(addr, 5*time.Second)
			defer c.Close()
			if _, err := c.Do(ctx, "SET", "bench", "v"); err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.Do(ctx, args...); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkServerParallelClients benchmarks many connections at once.
func BenchmarkServerParallelClients(b *testing.B) {
	addr := startServer(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		c := connection.NewClient(addr, 5*time.Second)
		defer c.Close()
		i := 0
		for pb.Next() {
			key := "k" + strconv.Itoa(i%100)
			if _, err := c.Do(ctx, "SET", key, "v"); err != nil {
				b.Error(err)
				return
			}
			i++
		}
	})
}
