package service

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/pkg/resp"
)

// KeyValueStore is the storage the executor acts on. Implementations must
// be safe for concurrent use; none of the operations can fail.
type KeyValueStore interface {
	// Store inserts or overwrites key. A zero expiresAt means no TTL.
	Store(key string, value []byte, expiresAt time.Time)

	// Fetch returns the live value for key, evicting it if expired.
	Fetch(key string) ([]byte, bool)

	// Invalidate removes key and reports whether a live entry was removed.
	Invalidate(key string) bool
}

// Replies shared by every connection.
var (
	replyPong = resp.SimpleString("PONG")
	replyOK   = resp.SimpleString("OK")
)

// Executor runs parsed commands against a store.
type Executor struct {
	store KeyValueStore
}

// NewExecutor creates an executor bound to store.
func NewExecutor(store KeyValueStore) *Executor {
	return &Executor{store: store}
}

// Execute runs cmd and returns exactly one reply. Store operations cannot
// fail; the only error reply is for a command type the executor does not
// know.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) resp.Value {
	switch c := cmd.(type) {
	case domain.Ping:
		if c.Message == nil {
			return replyPong
		}
		return textReply(c.Message)
	case domain.Echo:
		return textReply(c.Message)
	case domain.Set:
		e.store.Store(c.Key, c.Value, c.ExpiresAt)
		return replyOK
	case domain.Get:
		v, ok := e.store.Fetch(c.Key)
		if !ok {
			return resp.NullBulk()
		}
		return textReply(v)
	case domain.Del:
		var n int64
		for _, k := range c.Keys {
			if e.store.Invalidate(k) {
				n++
			}
		}
		return resp.Integer(n)
	default:
		logger.L(ctx).Error("unsupported command type", "type", fmt.Sprintf("%T", cmd))
		return resp.SimpleError(domain.ReplyText(domain.ErrInternal))
	}
}

// textReply answers with a simple string. Payloads that cannot be framed
// as one (CR, LF or invalid UTF-8) go out as a bulk string.
func textReply(b []byte) resp.Value {
	if bytes.ContainsAny(b, "\r\n") || !utf8.Valid(b) {
		return resp.BulkBytes(b)
	}
	return resp.SimpleStringBytes(b)
}
