package resp

import (
	"bufio"
	"io"
	"strconv"
)

// Encode returns the wire form of v.
func Encode(v Value) []byte {
	return AppendValue(nil, v)
}

// AppendValue appends the wire form of v to dst and returns the extended
// buffer.
func AppendValue(dst []byte, v Value) []byte {
	switch v.kind {
	case NullBulkKind:
		return append(dst, "$-1\r\n"...)
	case NullArrayKind:
		return append(dst, "*-1\r\n"...)
	case SimpleStringKind:
		dst = append(dst, '+')
		dst = append(dst, v.str...)
		return append(dst, crlf...)
	case SimpleErrorKind:
		dst = append(dst, '-')
		dst = append(dst, v.str...)
		return append(dst, crlf...)
	case IntegerKind:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, v.num, 10)
		return append(dst, crlf...)
	case BulkStringKind:
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(v.str)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, v.str...)
		return append(dst, crlf...)
	case ArrayKind:
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(v.elems)), 10)
		dst = append(dst, crlf...)
		for _, e := range v.elems {
			dst = AppendValue(dst, e)
		}
		return dst
	}
	// Unknown kinds cannot be built through the constructors.
	return append(dst, "$-1\r\n"...)
}

// Encoder writes values to a buffered stream. Call Flush to push buffered
// bytes to the underlying writer.
type Encoder struct {
	w       *bufio.Writer
	scratch []byte
}

// NewEncoder returns an Encoder writing to w. If w is already a
// *bufio.Writer it is used directly.
func NewEncoder(w io.Writer) *Encoder {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	return &Encoder{w: bw}
}

// Encode buffers the wire form of v. Bulk payloads are written straight
// through instead of being copied into a scratch buffer.
func (e *Encoder) Encode(v Value) error {
	switch v.kind {
	case BulkStringKind:
		if err := e.header('$', int64(len(v.str))); err != nil {
			return err
		}
		if _, err := e.w.Write(v.str); err != nil {
			return err
		}
		_, err := e.w.Write(crlf)
		return err
	case ArrayKind:
		if err := e.header('*', int64(len(v.elems))); err != nil {
			return err
		}
		for _, elem := range v.elems {
			if err := e.Encode(elem); err != nil {
				return err
			}
		}
		return nil
	default:
		e.scratch = AppendValue(e.scratch[:0], v)
		_, err := e.w.Write(e.scratch)
		return err
	}
}

// Flush writes any buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

func (e *Encoder) header(tag byte, n int64) error {
	e.scratch = append(e.scratch[:0], tag)
	e.scratch = strconv.AppendInt(e.scratch, n, 10)
	e.scratch = append(e.scratch, crlf...)
	_, err := e.w.Write(e.scratch)
	return err
}
