package config

import "strings"

// Sanitize returns a normalized copy of cfg: log settings are trimmed and
// lower-cased, and unset protocol limits fall back to their defaults.
// The original is not modified.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	out := *cfg

	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Log.Format = strings.ToLower(strings.TrimSpace(out.Log.Format))
	if out.Log.Level == "" {
		out.Log.Level = DefaultLogLevel
	}
	if out.Log.Format == "" {
		out.Log.Format = DefaultLogFormat
	}

	out.Server.Redis.Addr = strings.TrimSpace(out.Server.Redis.Addr)
	out.Server.Metrics.Addr = strings.TrimSpace(out.Server.Metrics.Addr)

	if out.Protocol.MaxDepth == 0 {
		out.Protocol.MaxDepth = DefaultMaxDepth
	}
	if out.Protocol.MaxLineLength == 0 {
		out.Protocol.MaxLineLength = DefaultMaxLineLength
	}
	if out.Protocol.MaxBulkLength == 0 {
		out.Protocol.MaxBulkLength = DefaultMaxBulkLength
	}
	if out.Store.Shards == 0 {
		out.Store.Shards = DefaultShards
	}
	return &out
}
