package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/core/service"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/httpserver"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "respkv-server",
		Usage:   "in-memory key-value server speaking RESP",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML configuration file",
				EnvVars: []string{"RESPKV_CONFIG"},
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "RESP listen port",
				Value:   config.DefaultRedisPort,
			},
			&cli.StringFlag{
				Name:  "bind",
				Usage: "RESP listen host (default 0.0.0.0)",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "HTTP address for /metrics and /healthz; empty disables it",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "json or text",
			},
			&cli.BoolFlag{
				Name:  "print-config",
				Usage: "print the effective configuration and exit",
			},
		},
		Action: run,
	}
}

// overrides maps the flags the user set to dotted config keys.
func overrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("metrics-addr") {
		m["server.metrics.addr"] = c.String("metrics-addr")
	}
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	if c.IsSet("log-format") {
		m["log.format"] = c.String("log-format")
	}
	return m
}

// listenAddr applies --bind and --port to the configured address. Only
// flags the user set replace the corresponding half.
func listenAddr(addr string, c *cli.Context) (string, error) {
	if !c.IsSet("bind") && !c.IsSet("port") {
		return addr, nil
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("server.redis.addr %q: %w", addr, err)
	}
	if c.IsSet("bind") {
		host = c.String("bind")
	}
	if c.IsSet("port") {
		p := c.Int("port")
		if p < 1 || p > 65535 {
			return "", fmt.Errorf("--port %d out of range", p)
		}
		port = strconv.Itoa(p)
	}
	return net.JoinHostPort(host, port), nil
}

// loadConfig loads configuration from file, environment and flags.
func loadConfig(c *cli.Context) (*config.ServerConfig, *confloader.Loader, error) {
	loader := confloader.NewLoader(
		confloader.WithConfigFile(c.String("config")),
		confloader.WithOverrides(overrides(c)),
	)

	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return nil, nil, err
	}

	addr, err := listenAddr(cfg.Server.Redis.Addr, c)
	if err != nil {
		return nil, nil, err
	}
	cfg.Server.Redis.Addr = addr

	cfg = config.Sanitize(cfg)
	if err := config.Verify(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, loader, nil
}

// redisConfig maps the file configuration onto the listener settings.
func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	return &redisserver.Config{
		Address:       cfg.Server.Redis.Addr,
		ReadTimeout:   cfg.Server.Redis.ReadTimeout,
		WriteTimeout:  cfg.Server.Redis.WriteTimeout,
		IdleTimeout:   cfg.Server.Redis.IdleTimeout,
		RateLimit:     cfg.Server.Redis.RateLimit,
		RateBurst:     cfg.Server.Redis.RateBurst,
		MaxDepth:      cfg.Protocol.MaxDepth,
		MaxLineLength: cfg.Protocol.MaxLineLength,
		MaxBulkLength: cfg.Protocol.MaxBulkLength,
		TextBulk:      cfg.Protocol.TextBulk,
	}
}

func run(c *cli.Context) error {
	cfg, loader, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if c.Bool("print-config") {
		out, err := config.Dump(cfg)
		if err != nil {
			return err
		}
		_, err = c.App.Writer.Write(out)
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting respkv-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", loader.FilePath())

	metrics := metric.NewRegistry()
	store := memory.New(
		memory.WithShardCount(cfg.Store.Shards),
		memory.WithEvictHook(metrics.KeyExpired),
	)
	if err := metrics.Register(metric.NewStoreCollector(store)); err != nil {
		return fmt.Errorf("register store metrics: %w", err)
	}

	exec := service.NewExecutor(store)
	redisSrv := redisserver.New(redisConfig(cfg), exec,
		redisserver.WithLogger(log),
		redisserver.WithMetrics(metrics),
	)

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout, log)

	// Hooks run in reverse order: the HTTP endpoint goes last so /readyz
	// reports the RESP listener going away.
	var httpSrv *httpserver.Server
	if cfg.Server.Metrics.Addr != "" {
		httpSrv = httpserver.New(cfg.Server.Metrics.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Metrics: metrics,
			Ready:   redisSrv.Running,
			Logger:  log,
		}), log)
		if err := httpSrv.Start(); err != nil {
			return fmt.Errorf("start http server: %w", err)
		}
		shutdownHandler.OnShutdown("http", httpSrv.Shutdown)
	}

	if err := redisSrv.Start(ctx); err != nil {
		if httpSrv != nil {
			_ = httpSrv.Shutdown(context.Background())
		}
		return fmt.Errorf("start redis server: %w", err)
	}
	shutdownHandler.OnShutdown("redis", redisSrv.Shutdown)

	if path := loader.FilePath(); path != "" {
		watcher, err := watchConfig(path, loader, log)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config-watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// watchConfig reloads the log level whenever the config file changes.
// Other settings need a restart.
func watchConfig(path string, loader *confloader.Loader, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		if err := reloadLogLevel(loader); err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		log.Info("log level reloaded", "level", logger.GetLevel())
	})
	w.StartAsync()
	return w, nil
}

func reloadLogLevel(loader *confloader.Loader) error {
	cfg := config.Default()
	if err := loader.Reload(cfg); err != nil {
		return err
	}
	cfg = config.Sanitize(cfg)
	if err := config.Verify(cfg); err != nil {
		return err
	}
	if cfg.Log.Level == logger.GetLevel() {
		return nil
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("set level: %w", err)
	}
	return nil
}
