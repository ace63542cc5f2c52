package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server" yaml:"server"`
	Protocol ProtocolSection `koanf:"protocol" yaml:"protocol"`
	Store    StoreSection    `koanf:"store" yaml:"store"`
	Log      LogSection      `koanf:"log" yaml:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis   RedisConfig   `koanf:"redis" yaml:"redis"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// RedisConfig configures the RESP listener. Zero timeouts and a zero rate
// limit disable the corresponding protection.
type RedisConfig struct {
	Addr         string        `koanf:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" yaml:"idle_timeout"`
	RateLimit    int           `koanf:"rate_limit" yaml:"rate_limit"`
	RateBurst    int           `koanf:"rate_burst" yaml:"rate_burst"`
}

// MetricsConfig configures the HTTP endpoint serving /metrics and /healthz.
// An empty Addr disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// ProtocolSection bounds what a single request may contain.
type ProtocolSection struct {
	MaxDepth      int   `koanf:"max_depth" yaml:"max_depth"`
	MaxLineLength int   `koanf:"max_line_length" yaml:"max_line_length"`
	MaxBulkLength int64 `koanf:"max_bulk_length" yaml:"max_bulk_length"`
	// TextBulk rejects bulk strings that are not valid UTF-8.
	TextBulk bool `koanf:"text_bulk" yaml:"text_bulk"`
}

// StoreSection configures the in-memory store.
type StoreSection struct {
	// Shards must be a power of two.
	Shards int `koanf:"shards" yaml:"shards"`
}

// LogSection configures logging. Level is reloaded when the config file
// changes.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}
