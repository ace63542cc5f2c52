package redisserver

import (
	"context"
	"strings"
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/core/service"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/resp"
)

// Label used for requests whose command name is not recognized, so the
// metrics label set stays bounded.
const unknownCommandLabel = "unknown"

var knownCommands = map[string]bool{
	domain.CmdPing: true,
	domain.CmdEcho: true,
	domain.CmdSet:  true,
	domain.CmdGet:  true,
	domain.CmdDel:  true,
}

// CommandHandler turns decoded requests into replies.
type CommandHandler struct {
	exec    Executor
	limiter *rateLimiter
	metrics *metric.Registry
	now     func() time.Time
}

// NewCommandHandler creates a handler. cfg supplies the rate limit; a nil
// metrics registry records nothing.
func NewCommandHandler(exec Executor, cfg *Config, metrics *metric.Registry, now func() time.Time) *CommandHandler {
	if now == nil {
		now = time.Now
	}
	var rl *rateLimiter
	if cfg != nil && cfg.RateLimit > 0 {
		rl = newRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}
	return &CommandHandler{
		exec:    exec,
		limiter: rl,
		metrics: metrics,
		now:     now,
	}
}

// Handle parses and executes one request and returns exactly one reply.
func (h *CommandHandler) Handle(ctx context.Context, conn *Conn, v resp.Value) resp.Value {
	start := time.Now()

	if h.limiter != nil && !h.limiter.allow(clientIP(conn)) {
		h.metrics.ObserveCommand(commandLabel(v), metric.StatusError, time.Since(start))
		return resp.SimpleError(domain.ReplyText(domain.ErrRateLimited))
	}

	cmd, err := service.ParseCommand(v, h.now())
	if err != nil {
		logger.L(ctx).Debug("command rejected",
			"command", commandLabel(v), "code", domain.GetErrorCode(err), "error", err)
		h.metrics.ObserveCommand(commandLabel(v), metric.StatusError, time.Since(start))
		return resp.SimpleError(domain.ReplyText(err))
	}

	reply := h.exec.Execute(ctx, cmd)

	status := metric.StatusOK
	if reply.Kind() == resp.SimpleErrorKind {
		status = metric.StatusError
	}
	h.metrics.ObserveCommand(cmd.Name(), status, time.Since(start))
	return reply
}

// commandLabel extracts a bounded metrics label from a raw request.
func commandLabel(v resp.Value) string {
	if v.Kind() != resp.ArrayKind || v.Len() == 0 {
		return unknownCommandLabel
	}
	name := v.Elems()[0]
	if name.Kind() != resp.BulkStringKind {
		return unknownCommandLabel
	}
	n := strings.ToLower(name.Text())
	if !knownCommands[n] {
		return unknownCommandLabel
	}
	return n
}
