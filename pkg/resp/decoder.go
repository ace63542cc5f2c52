package resp

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"
)

// Protocol limits.
const (
	// MaxLength is the largest bulk string or array length accepted (512 MiB).
	MaxLength = 512 * 1024 * 1024

	// DefaultMaxDepth bounds array nesting. Client commands are flat arrays;
	// anything deeper than this is treated as hostile input.
	DefaultMaxDepth = 32

	// DefaultMaxLineLength bounds a single header or simple-string line.
	DefaultMaxLineLength = 64 * 1024

	// preallocLimit caps up-front allocations driven by a length header.
	// Larger payloads grow as bytes actually arrive.
	preallocLimit = 64 * 1024
)

// BulkMode selects how bulk string payloads are validated.
type BulkMode uint8

const (
	// BulkRaw accepts arbitrary bytes. Required when values must round-trip
	// binary data.
	BulkRaw BulkMode = iota
	// BulkText additionally requires bulk payloads to be valid UTF-8.
	BulkText
)

var crlf = []byte("\r\n")

// Option configures a Decoder.
type Option func(*Decoder)

// WithBulkMode sets the bulk string mode (default BulkRaw).
func WithBulkMode(m BulkMode) Option {
	return func(d *Decoder) {
		d.bulkMode = m
	}
}

// WithMaxDepth sets the maximum array nesting depth.
func WithMaxDepth(depth int) Option {
	return func(d *Decoder) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// WithMaxLength lowers the maximum bulk/array length. Values above
// MaxLength are ignored.
func WithMaxLength(n int64) Option {
	return func(d *Decoder) {
		if n >= 0 && n <= MaxLength {
			d.maxLength = n
		}
	}
}

// WithMaxLineLength sets the maximum length of a single line.
func WithMaxLineLength(n int) Option {
	return func(d *Decoder) {
		if n >= 3 {
			d.maxLine = n
		}
	}
}

// Decoder reads RESP values from a byte stream.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	r         *bufio.Reader
	bulkMode  BulkMode
	maxDepth  int
	maxLength int64
	maxLine   int
}

// NewDecoder returns a Decoder reading from r. If r is already a
// *bufio.Reader it is used directly.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	d := &Decoder{
		r:         br,
		bulkMode:  BulkRaw,
		maxDepth:  DefaultMaxDepth,
		maxLength: MaxLength,
		maxLine:   DefaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the next value.
//
// It returns io.EOF, unwrapped, when the stream ends cleanly at a value
// boundary. Malformed input yields an *Error matching ErrProtocol. Any
// other error comes from the underlying reader.
func (d *Decoder) Decode() (Value, error) {
	return d.decode(0)
}

func (d *Decoder) decode(depth int) (Value, error) {
	line, err := d.readLine()
	if err != nil {
		return Value{}, err
	}

	tag, body := line[0], line[1:len(line)-2]
	switch tag {
	case '+':
		s, err := d.text(body)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: SimpleStringKind, str: s}, nil
	case '-':
		s, err := d.text(body)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: SimpleErrorKind, str: s}, nil
	case ':':
		n, err := strconv.ParseInt(string(body), 10, 64)
		if err != nil {
			return Value{}, protoErr(ErrInvalidInteger, strconv.Quote(string(body)))
		}
		return Integer(n), nil
	case '$':
		n, err := d.length(body)
		if err != nil {
			return Value{}, err
		}
		if n == -1 {
			return NullBulk(), nil
		}
		return d.readBulk(n)
	case '*':
		n, err := d.length(body)
		if err != nil {
			return Value{}, err
		}
		if n == -1 {
			return NullArray(), nil
		}
		if depth+1 > d.maxDepth {
			return Value{}, protoErr(ErrDepthExceeded, "limit "+strconv.Itoa(d.maxDepth))
		}
		return d.readArray(n, depth+1)
	default:
		return Value{}, protoErr(ErrUnknownTag, strconv.QuoteRune(rune(tag)))
	}
}

// readLine returns one line including its CRLF. The shortest valid line
// is a bare tag followed by the terminator.
func (d *Decoder) readLine() ([]byte, error) {
	var buf []byte
	for {
		frag, err := d.r.ReadSlice('\n')
		// frag aliases the bufio buffer; append copies it out.
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > d.maxLine {
				return nil, protoErr(ErrLineTooLong, "limit "+strconv.Itoa(d.maxLine))
			}
			continue
		}
		buf = append(buf, frag...)
		if errors.Is(err, io.EOF) {
			if len(buf) == 0 {
				return nil, io.EOF
			}
			return nil, protoErr(ErrMissingTerminator, strconv.Quote(string(buf)))
		}
		return nil, err
	}

	if len(buf) > d.maxLine {
		return nil, protoErr(ErrLineTooLong, "limit "+strconv.Itoa(d.maxLine))
	}
	if len(buf) < 3 {
		return nil, protoErr(ErrMalformedLine, strconv.Quote(string(buf)))
	}
	if !bytes.HasSuffix(buf, crlf) {
		return nil, protoErr(ErrMissingTerminator, strconv.Quote(string(buf)))
	}
	return buf, nil
}

func (d *Decoder) text(b []byte) ([]byte, error) {
	if !utf8.Valid(b) {
		return nil, protoErr(ErrInvalidText, "")
	}
	return b, nil
}

// length parses a bulk or array header. The result is -1 or in [0, maxLength].
func (d *Decoder) length(body []byte) (int64, error) {
	n, err := strconv.ParseInt(string(body), 10, 64)
	if err != nil {
		return 0, protoErr(ErrInvalidLength, strconv.Quote(string(body)))
	}
	if n == -1 {
		return -1, nil
	}
	if n < 0 || n > d.maxLength {
		return 0, protoErr(ErrLengthOutOfBounds, strconv.FormatInt(n, 10))
	}
	return n, nil
}

func (d *Decoder) readBulk(n int64) (Value, error) {
	var payload []byte
	if n+2 <= preallocLimit {
		payload = make([]byte, n+2)
		if _, err := io.ReadFull(d.r, payload); err != nil {
			return Value{}, truncated(err)
		}
	} else {
		var buf bytes.Buffer
		buf.Grow(preallocLimit)
		if _, err := io.CopyN(&buf, d.r, n+2); err != nil {
			return Value{}, truncated(err)
		}
		payload = buf.Bytes()
	}

	if !bytes.HasSuffix(payload, crlf) {
		return Value{}, protoErr(ErrMissingTerminator, "after bulk payload")
	}
	payload = payload[:n]
	if d.bulkMode == BulkText && !utf8.Valid(payload) {
		return Value{}, protoErr(ErrInvalidText, "bulk payload")
	}
	return Value{kind: BulkStringKind, str: payload}, nil
}

func (d *Decoder) readArray(n int64, depth int) (Value, error) {
	elems := make([]Value, 0, min(n, preallocLimit/64))
	for i := int64(0); i < n; i++ {
		v, err := d.decode(depth)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Value{}, protoErr(ErrTruncatedArray,
					strconv.FormatInt(i, 10)+" of "+strconv.FormatInt(n, 10)+" elements")
			}
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return Value{kind: ArrayKind, elems: elems}, nil
}

// truncated maps a short read inside a value to a protocol error and
// passes transport errors through.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return protoErr(ErrTruncated, "")
	}
	return err
}
