// Package metric provides Prometheus metrics for respkv.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Registry holding the server's counters and histograms
//   - collector.go: StoreCollector reporting resident key counts at scrape time
//
// Metrics include:
//
//   - Command counts and latency by command name
//   - Active and total client connections
//   - Protocol errors and lazily expired keys
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
