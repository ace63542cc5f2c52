package redisserver

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/resp"
)

// maxErrorDetail bounds the decoder detail echoed in a protocol error reply.
const maxErrorDetail = 128

// Config holds the Redis server configuration.
type Config struct {
	// Address is the TCP listen address.
	Address string
	// ReadTimeout bounds reading the rest of a request once its first byte
	// arrived. Zero disables it.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing a reply. Zero disables it.
	WriteTimeout time.Duration
	// IdleTimeout bounds the wait for the next request. Zero disables it.
	IdleTimeout time.Duration
	// RateLimit is the maximum number of commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit int
	// RateBurst is the bucket size; values below 1 default to RateLimit.
	RateBurst int

	// MaxDepth limits array nesting in a request.
	MaxDepth int
	// MaxLineLength limits a single header or simple line.
	MaxLineLength int
	// MaxBulkLength limits bulk string and array lengths.
	MaxBulkLength int64
	// TextBulk requires bulk payloads to be valid UTF-8.
	TextBulk bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:       "0.0.0.0:6379",
		MaxDepth:      resp.DefaultMaxDepth,
		MaxLineLength: resp.DefaultMaxLineLength,
		MaxBulkLength: resp.MaxLength,
	}
}

func (c *Config) decoderOptions() []resp.Option {
	mode := resp.BulkRaw
	if c.TextBulk {
		mode = resp.BulkText
	}
	return []resp.Option{
		resp.WithBulkMode(mode),
		resp.WithMaxDepth(c.MaxDepth),
		resp.WithMaxLineLength(c.MaxLineLength),
		resp.WithMaxLength(c.MaxBulkLength),
	}
}

// Executor runs a parsed command and produces its reply.
type Executor interface {
	Execute(ctx context.Context, cmd domain.Command) resp.Value
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics registry. Without it nothing is recorded.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithClock overrides the clock used to anchor relative expiries.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server represents the Redis protocol server.
type Server struct {
	cfg     *Config
	handler *CommandHandler
	logger  logger.Logger
	metrics *metric.Registry
	now     func() time.Time

	running atomic.Bool
	wg      sync.WaitGroup

	mu    sync.Mutex
	ln    net.Listener
	conns map[*Conn]struct{}
}

// Conn represents a single client connection.
type Conn struct {
	id      string
	netConn net.Conn
	br      *bufio.Reader
	dec     *resp.Decoder
	enc     *resp.Encoder

	closed atomic.Bool
}

func newConn(c net.Conn, cfg *Config) *Conn {
	br := bufio.NewReader(c)
	return &Conn{
		id:      ulid.Make().String(),
		netConn: c,
		br:      br,
		dec:     resp.NewDecoder(br, cfg.decoderOptions()...),
		enc:     resp.NewEncoder(c),
	}
}

// ID returns the connection's ULID.
func (c *Conn) ID() string {
	return c.id
}

// Close closes the connection once; later calls return nil.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// RemoteAddr returns the client address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a Redis protocol server that runs commands on exec.
func New(cfg *Config, exec Executor, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger.Default(),
		now:    time.Now,
		conns:  make(map[*Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = NewCommandHandler(exec, cfg, s.metrics, s.now)
	return s
}

// Start binds the listen address and begins accepting connections in the
// background. Bind errors are returned directly.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln in the background until Shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.ln != nil {
		s.mu.Unlock()
		return errors.New("redisserver: already serving")
	}
	s.ln = ln
	s.mu.Unlock()

	s.running.Store(true)
	s.logger.Info("redis server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil {
			s.logger.Error("redis accept loop stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Running reports whether the server is accepting connections.
func (s *Server) Running() bool {
	return s.running.Load()
}

// Shutdown stops accepting, closes open connections and waits for their
// goroutines to exit or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	s.mu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}

		c := newConn(nc, s.cfg)
		if !s.track(c) {
			_ = c.Close()
			return nil
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(c)
			s.serveConn(ctx, c)
		}()
	}
}

func (s *Server) track(c *Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c *Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// deadline converts a timeout into a socket deadline; zero means none.
func deadline(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return time.Now().Add(d)
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	defer c.Close()

	s.metrics.ConnOpened()
	defer s.metrics.ConnClosed()

	ctx = logger.WithLogger(ctx, s.logger.With("remote", c.RemoteAddr().String()))
	ctx = logger.WithConnID(ctx, c.id)
	log := logger.L(ctx)
	log.Debug("connection opened")

	for {
		// Idle timeout applies until the first byte of the next request.
		if err := c.netConn.SetReadDeadline(deadline(s.cfg.IdleTimeout)); err != nil {
			return
		}
		if _, err := c.br.Peek(1); err != nil {
			s.readFailed(log, err)
			return
		}
		if err := c.netConn.SetReadDeadline(deadline(s.cfg.ReadTimeout)); err != nil {
			return
		}

		v, err := c.dec.Decode()
		if err != nil {
			if errors.Is(err, resp.ErrProtocol) {
				s.protocolError(log, c, err)
				return
			}
			s.readFailed(log, err)
			return
		}

		reply := s.handler.Handle(ctx, c, v)

		if err := c.netConn.SetWriteDeadline(deadline(s.cfg.WriteTimeout)); err != nil {
			return
		}
		if err := c.enc.Encode(reply); err != nil {
			log.Debug("connection write error", "error", err)
			return
		}
		// Every reply is on the wire before the next request is decoded;
		// the next request may be only partly buffered.
		if err := c.enc.Flush(); err != nil {
			log.Debug("connection write error", "error", err)
			return
		}
	}
}

func (s *Server) readFailed(log logger.Logger, err error) {
	if errors.Is(err, io.EOF) {
		log.Debug("connection closed by client")
		return
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		log.Debug("connection timed out")
		return
	}
	log.Debug("connection read error", "error", err)
}

// protocolError answers malformed input with a best-effort error reply.
// The caller closes the connection afterwards.
func (s *Server) protocolError(log logger.Logger, c *Conn, err error) {
	s.metrics.ProtocolError()
	log.Warn("protocol error", "error", err)

	detail := strings.TrimPrefix(err.Error(), "resp: ")
	if len(detail) > maxErrorDetail {
		detail = detail[:maxErrorDetail] + "..."
	}
	_ = c.netConn.SetWriteDeadline(deadline(s.cfg.WriteTimeout))
	_ = c.enc.Encode(resp.SimpleError(domain.ReplyText(errors.New("protocol error: " + detail))))
	_ = c.enc.Flush()
}
