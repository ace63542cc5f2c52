package service

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/pkg/resp"
)

// maxExpiryMillis keeps now+PX representable as a time.Duration.
const maxExpiryMillis = math.MaxInt64 / int64(time.Millisecond)

var pxKeyword = []byte("px")

// ParseCommand interprets v as a client command. v must be a non-empty
// array whose elements are bulk strings; the first element is the command
// name, matched case-insensitively. now anchors relative expiries.
//
// Errors are domain errors: ErrInvalidCommand, ErrInvalidArguments,
// ErrInvalidExpiry or ErrUnknownCommand.
func ParseCommand(v resp.Value, now time.Time) (domain.Command, error) {
	if v.Kind() != resp.ArrayKind || v.Len() == 0 {
		return nil, domain.ErrInvalidCommand.WithDetails("not a command array")
	}
	elems := v.Elems()
	if elems[0].Kind() != resp.BulkStringKind {
		return nil, domain.ErrInvalidCommand.WithDetails("not a command array")
	}

	name := strings.ToLower(elems[0].Text())
	args := elems[1:]

	switch name {
	case domain.CmdPing:
		return parsePing(args)
	case domain.CmdEcho:
		return parseEcho(args)
	case domain.CmdSet:
		return parseSet(args, now)
	case domain.CmdGet:
		return parseGet(args)
	case domain.CmdDel:
		return parseDel(args)
	default:
		return nil, domain.ErrUnknownCommand.WithDetails("'" + elems[0].Text() + "'")
	}
}

func parsePing(args []resp.Value) (domain.Command, error) {
	switch len(args) {
	case 0:
		return domain.Ping{}, nil
	case 1:
		msg, err := bulkArg(domain.CmdPing, args[0])
		if err != nil {
			return nil, err
		}
		if msg == nil {
			msg = []byte{}
		}
		return domain.Ping{Message: msg}, nil
	default:
		return nil, arityError(domain.CmdPing)
	}
}

func parseEcho(args []resp.Value) (domain.Command, error) {
	if len(args) != 1 {
		return nil, arityError(domain.CmdEcho)
	}
	msg, err := bulkArg(domain.CmdEcho, args[0])
	if err != nil {
		return nil, err
	}
	return domain.Echo{Message: msg}, nil
}

// parseSet accepts "key value" and "key value PX <milliseconds>".
func parseSet(args []resp.Value, now time.Time) (domain.Command, error) {
	if len(args) != 2 && len(args) != 4 {
		return nil, arityError(domain.CmdSet)
	}
	for _, a := range args {
		if _, err := bulkArg(domain.CmdSet, a); err != nil {
			return nil, err
		}
	}

	cmd := domain.Set{
		Key:   args[0].Text(),
		Value: args[1].Bytes(),
	}
	if len(args) == 2 {
		return cmd, nil
	}

	if !bytes.EqualFold(args[2].Bytes(), pxKeyword) {
		return nil, domain.ErrInvalidArguments.WithDetails("syntax error near '" + args[2].Text() + "'")
	}
	ms, err := strconv.ParseUint(args[3].Text(), 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidExpiry.
			WithDetails("'" + args[3].Text() + "' in 'set' command").
			WithCause(err)
	}
	if ms > uint64(maxExpiryMillis) {
		return nil, domain.ErrInvalidExpiry.WithDetails("out of range in 'set' command")
	}
	cmd.ExpiresAt = now.Add(time.Duration(ms) * time.Millisecond)
	return cmd, nil
}

func parseGet(args []resp.Value) (domain.Command, error) {
	if len(args) != 1 {
		return nil, arityError(domain.CmdGet)
	}
	if _, err := bulkArg(domain.CmdGet, args[0]); err != nil {
		return nil, err
	}
	return domain.Get{Key: args[0].Text()}, nil
}

func parseDel(args []resp.Value) (domain.Command, error) {
	if len(args) == 0 {
		return nil, arityError(domain.CmdDel)
	}
	keys := make([]string, len(args))
	for i, a := range args {
		if _, err := bulkArg(domain.CmdDel, a); err != nil {
			return nil, err
		}
		keys[i] = a.Text()
	}
	return domain.Del{Keys: keys}, nil
}

func bulkArg(cmd string, v resp.Value) ([]byte, error) {
	if v.Kind() != resp.BulkStringKind {
		return nil, domain.ErrInvalidCommand.WithDetails("argument of '" + cmd + "' is " + v.Kind().String() + ", want bulk-string")
	}
	return v.Bytes(), nil
}

func arityError(cmd string) error {
	return domain.ErrInvalidArguments.WithDetails("'" + cmd + "' command")
}
