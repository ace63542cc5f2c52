package resp

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"simple string", SimpleString("PONG"), "+PONG\r\n"},
		{"simple error", SimpleError("ERR boom"), "-ERR boom\r\n"},
		{"integer", Integer(-42), ":-42\r\n"},
		{"bulk string", BulkString("hello"), "$5\r\nhello\r\n"},
		{"empty bulk", BulkString(""), "$0\r\n\r\n"},
		{"nil bytes bulk", BulkBytes(nil), "$0\r\n\r\n"},
		{"multi-byte bulk length is bytes", BulkString("héllo"), "$6\r\nhéllo\r\n"},
		{"binary bulk", BulkBytes([]byte{0, 0xff, '\r', '\n'}), "$4\r\n\x00\xff\r\n\r\n"},
		{"null bulk", NullBulk(), "$-1\r\n"},
		{"null array", NullArray(), "*-1\r\n"},
		{"empty array", Array(), "*0\r\n"},
		{"command", Command("SET", "a", "1"), "*3\r\n$3\r\nSET\r\n$1\r\na\r\n$1\r\n1\r\n"},
		{
			"nested",
			Array(Array(Integer(1), Integer(2)), Array(SimpleString("Hello"), SimpleError("World"))),
			"*2\r\n*2\r\n:1\r\n:2\r\n*2\r\n+Hello\r\n-World\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Encode(tt.value)); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}

			var buf bytes.Buffer
			enc := NewEncoder(&buf)
			if err := enc.Encode(tt.value); err != nil {
				t.Fatalf("Encoder.Encode() error = %v", err)
			}
			if err := enc.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Encoder output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestAppendValue_Appends(t *testing.T) {
	dst := []byte("prefix:")
	got := AppendValue(dst, SimpleString("OK"))
	if string(got) != "prefix:+OK\r\n" {
		t.Errorf("AppendValue() = %q", got)
	}
}

func TestNewEncoder_ReusesBufferedWriter(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	enc := NewEncoder(bw)
	if enc.w != bw {
		t.Fatal("NewEncoder should use the given *bufio.Writer")
	}
	_ = enc.Encode(Integer(1))
	if buf.Len() != 0 {
		t.Error("output should stay buffered until Flush")
	}
	_ = bw.Flush()
	if buf.String() != ":1\r\n" {
		t.Errorf("output = %q", buf.String())
	}
}

// ============================================================
// Round-trip: Decode(Encode(v)) == v
// ============================================================

func TestRoundTrip(t *testing.T) {
	values := []Value{
		SimpleString("OK"),
		SimpleString(""),
		SimpleError("ERR something"),
		Integer(0),
		Integer(-9223372036854775808),
		Integer(9223372036854775807),
		BulkString(""),
		BulkString("hello world"),
		BulkBytes([]byte{0x00, 0x01, 0xfe, 0xff, '\r', '\n'}),
		BulkString(strings.Repeat("z", 200000)),
		NullBulk(),
		NullArray(),
		Array(),
		Command("SET", "key", "value", "PX", "100"),
		Array(Integer(1), Array(Array(NullBulk(), NullArray()), BulkString("deep")), SimpleError("x")),
	}

	for _, v := range values {
		encoded := Encode(v)
		got, err := NewDecoder(bytes.NewReader(encoded)).Decode()
		if err != nil {
			t.Errorf("Decode(Encode(%v)) error = %v", v, err)
			continue
		}
		if !got.Equal(v) {
			t.Errorf("Decode(Encode(%v)) = %v", v, got)
		}
	}
}

func TestRoundTrip_Stream(t *testing.T) {
	values := []Value{Command("PING"), SimpleString("PONG"), NullBulk(), Integer(3)}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	dec := NewDecoder(&buf)
	for i, want := range values {
		got, err := dec.Decode()
		if err != nil {
			t.Fatalf("Decode() #%d error = %v", i, err)
		}
		if !got.Equal(want) {
			t.Errorf("Decode() #%d = %v, want %v", i, got, want)
		}
	}
}
