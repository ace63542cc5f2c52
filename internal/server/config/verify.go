package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/pkg/resp"
)

// Verify validates the configuration and reports every problem found.
func Verify(cfg *ServerConfig) error {
	return errors.Join(
		verifyServer(&cfg.Server),
		verifyProtocol(&cfg.Protocol),
		verifyStore(&cfg.Store),
		verifyLog(&cfg.Log),
	)
}

func verifyServer(cfg *ServerSection) error {
	var errs []error

	if err := verifyAddr("server.redis.addr", cfg.Redis.Addr); err != nil {
		errs = append(errs, err)
	}
	if cfg.Metrics.Addr != "" {
		if err := verifyAddr("server.metrics.addr", cfg.Metrics.Addr); err != nil {
			errs = append(errs, err)
		} else if cfg.Metrics.Addr == cfg.Redis.Addr {
			errs = append(errs, errors.New("server.metrics.addr must differ from server.redis.addr"))
		}
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"server.redis.read_timeout", cfg.Redis.ReadTimeout},
		{"server.redis.write_timeout", cfg.Redis.WriteTimeout},
		{"server.redis.idle_timeout", cfg.Redis.IdleTimeout},
		{"server.shutdown_timeout", cfg.ShutdownTimeout},
	} {
		if d.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", d.name))
		}
	}
	if cfg.Redis.RateLimit < 0 {
		errs = append(errs, errors.New("server.redis.rate_limit must not be negative"))
	}
	if cfg.Redis.RateBurst < 0 {
		errs = append(errs, errors.New("server.redis.rate_burst must not be negative"))
	}
	return errors.Join(errs...)
}

func verifyAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", name)
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("%s: invalid port %q", name, port)
	}
	return nil
}

func verifyProtocol(cfg *ProtocolSection) error {
	var errs []error
	if cfg.MaxDepth < 1 {
		errs = append(errs, errors.New("protocol.max_depth must be at least 1"))
	}
	if cfg.MaxLineLength < 3 {
		errs = append(errs, errors.New("protocol.max_line_length must be at least 3"))
	}
	if cfg.MaxBulkLength < 0 || cfg.MaxBulkLength > resp.MaxLength {
		errs = append(errs, fmt.Errorf("protocol.max_bulk_length must be between 0 and %d", resp.MaxLength))
	}
	return errors.Join(errs...)
}

func verifyStore(cfg *StoreSection) error {
	if cfg.Shards < 1 || cfg.Shards&(cfg.Shards-1) != 0 {
		return fmt.Errorf("store.shards must be a positive power of two, got %d", cfg.Shards)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	var errs []error
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", cfg.Format))
	}
	return errors.Join(errs...)
}
