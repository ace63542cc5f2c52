package resp

import (
	"bytes"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds. The zero Kind is NullBulkKind so the zero Value is a null bulk.
const (
	NullBulkKind Kind = iota
	NullArrayKind
	SimpleStringKind
	SimpleErrorKind
	IntegerKind
	BulkStringKind
	ArrayKind
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case NullBulkKind:
		return "null-bulk"
	case NullArrayKind:
		return "null-array"
	case SimpleStringKind:
		return "simple-string"
	case SimpleErrorKind:
		return "simple-error"
	case IntegerKind:
		return "integer"
	case BulkStringKind:
		return "bulk-string"
	case ArrayKind:
		return "array"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single RESP value.
//
// Only the fields relevant to Kind are populated; use the constructors
// below rather than building a Value literal.
type Value struct {
	kind  Kind
	str   []byte
	num   int64
	elems []Value
}

// SimpleString returns a simple string value.
func SimpleString(s string) Value {
	return Value{kind: SimpleStringKind, str: []byte(s)}
}

// SimpleStringBytes returns a simple string value holding b as-is.
func SimpleStringBytes(b []byte) Value {
	return Value{kind: SimpleStringKind, str: b}
}

// SimpleError returns a simple error value.
func SimpleError(s string) Value {
	return Value{kind: SimpleErrorKind, str: []byte(s)}
}

// Integer returns an integer value.
func Integer(n int64) Value {
	return Value{kind: IntegerKind, num: n}
}

// BulkString returns a bulk string value from text.
func BulkString(s string) Value {
	return Value{kind: BulkStringKind, str: []byte(s)}
}

// BulkBytes returns a bulk string value holding b. A nil b still encodes
// as an empty bulk string, not as a null bulk.
func BulkBytes(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{kind: BulkStringKind, str: b}
}

// Array returns an array value holding elems.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: ArrayKind, elems: elems}
}

// NullBulk returns the null bulk string.
func NullBulk() Value {
	return Value{kind: NullBulkKind}
}

// NullArray returns the null array.
func NullArray() Value {
	return Value{kind: NullArrayKind}
}

// Command builds a request array of bulk strings, as clients send them.
func Command(args ...string) Value {
	elems := make([]Value, len(args))
	for i, a := range args {
		elems[i] = BulkString(a)
	}
	return Array(elems...)
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is a null bulk or a null array.
func (v Value) IsNull() bool {
	return v.kind == NullBulkKind || v.kind == NullArrayKind
}

// Text returns the payload of a simple string, simple error or bulk string
// as a string. It returns "" for other kinds.
func (v Value) Text() string {
	switch v.kind {
	case SimpleStringKind, SimpleErrorKind, BulkStringKind:
		return string(v.str)
	}
	return ""
}

// Bytes returns the raw payload of a simple string, simple error or bulk
// string. The slice is shared with v.
func (v Value) Bytes() []byte {
	switch v.kind {
	case SimpleStringKind, SimpleErrorKind, BulkStringKind:
		return v.str
	}
	return nil
}

// Int returns the integer payload; 0 for other kinds.
func (v Value) Int() int64 {
	if v.kind != IntegerKind {
		return 0
	}
	return v.num
}

// Elems returns the elements of an array; nil for other kinds.
func (v Value) Elems() []Value {
	if v.kind != ArrayKind {
		return nil
	}
	return v.elems
}

// Len returns the number of elements of an array or the payload length of
// a string kind.
func (v Value) Len() int {
	if v.kind == ArrayKind {
		return len(v.elems)
	}
	return len(v.Bytes())
}

// Equal reports whether v and o hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullBulkKind, NullArrayKind:
		return true
	case IntegerKind:
		return v.num == o.num
	case SimpleStringKind, SimpleErrorKind, BulkStringKind:
		return bytes.Equal(v.str, o.str)
	case ArrayKind:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v for debugging and test failure messages.
func (v Value) String() string {
	var sb strings.Builder
	v.writeDebug(&sb)
	return sb.String()
}

func (v Value) writeDebug(sb *strings.Builder) {
	switch v.kind {
	case NullBulkKind:
		sb.WriteString("(nil)")
	case NullArrayKind:
		sb.WriteString("(nil array)")
	case SimpleStringKind:
		sb.WriteString(strconv.Quote(string(v.str)))
	case SimpleErrorKind:
		sb.WriteString("(error) ")
		sb.Write(v.str)
	case IntegerKind:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(v.num, 10))
	case BulkStringKind:
		sb.WriteString("$")
		sb.WriteString(strconv.Quote(string(v.str)))
	case ArrayKind:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeDebug(sb)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString(v.kind.String())
	}
}
