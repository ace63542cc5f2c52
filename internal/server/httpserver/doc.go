// Package httpserver serves the operational HTTP endpoints of respkv:
//
//   - GET /metrics: Prometheus exposition
//   - GET /healthz: liveness
//   - GET /readyz: readiness, 503 until the RESP listener is up
//
// It uses stdlib net/http with a small middleware chain (Recover, AccessLog).
package httpserver
