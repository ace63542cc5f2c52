package config

import (
	"time"

	"github.com/yndnr/respkv/pkg/cmap"
	"github.com/yndnr/respkv/pkg/resp"
)

// Default configuration values.
const (
	DefaultRedisPort       = 6379
	DefaultRedisAddr       = "0.0.0.0:6379"
	DefaultMetricsAddr     = ""
	DefaultShutdownTimeout = 10 * time.Second

	DefaultMaxDepth      = resp.DefaultMaxDepth
	DefaultMaxLineLength = resp.DefaultMaxLineLength
	DefaultMaxBulkLength = resp.MaxLength

	DefaultShards = cmap.DefaultShardCount

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr: DefaultRedisAddr,
			},
			Metrics: MetricsConfig{
				Addr: DefaultMetricsAddr,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Protocol: ProtocolSection{
			MaxDepth:      DefaultMaxDepth,
			MaxLineLength: DefaultMaxLineLength,
			MaxBulkLength: DefaultMaxBulkLength,
		},
		Store: StoreSection{
			Shards: DefaultShards,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
