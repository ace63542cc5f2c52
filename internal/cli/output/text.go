package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/yndnr/respkv/pkg/resp"
)

// TextFormatter prints replies the way interactive Redis clients do.
type TextFormatter struct{}

// Format writes v followed by a newline.
func (f *TextFormatter) Format(w io.Writer, v resp.Value) error {
	bw := bufio.NewWriter(w)
	writeText(bw, v, "")
	return bw.Flush()
}

func writeText(w *bufio.Writer, v resp.Value, indent string) {
	switch v.Kind() {
	case resp.SimpleStringKind:
		w.WriteString(v.Text())
	case resp.SimpleErrorKind:
		w.WriteString("(error) ")
		w.WriteString(v.Text())
	case resp.IntegerKind:
		w.WriteString("(integer) ")
		w.WriteString(strconv.FormatInt(v.Int(), 10))
	case resp.BulkStringKind:
		w.WriteString(strconv.Quote(v.Text()))
	case resp.NullBulkKind, resp.NullArrayKind:
		w.WriteString("(nil)")
	case resp.ArrayKind:
		elems := v.Elems()
		if len(elems) == 0 {
			w.WriteString("(empty array)")
			break
		}
		width := len(strconv.Itoa(len(elems)))
		for i, e := range elems {
			if i > 0 {
				w.WriteString(indent)
			}
			n := strconv.Itoa(i + 1)
			prefix := strings.Repeat(" ", width-len(n)) + n + ") "
			w.WriteString(prefix)
			// Nested arrays continue on the next line without the inner newline.
			writeText(w, e, indent+strings.Repeat(" ", len(prefix)))
			if e.Kind() != resp.ArrayKind {
				w.WriteByte('\n')
			}
		}
		return
	}
	w.WriteByte('\n')
}

// RawFormatter prints only the payload.
type RawFormatter struct{}

// Format writes the payload of v. Arrays print one element per line and
// null prints an empty line.
func (f *RawFormatter) Format(w io.Writer, v resp.Value) error {
	bw := bufio.NewWriter(w)
	writeRaw(bw, v)
	return bw.Flush()
}

func writeRaw(w *bufio.Writer, v resp.Value) {
	switch v.Kind() {
	case resp.IntegerKind:
		w.WriteString(strconv.FormatInt(v.Int(), 10))
	case resp.ArrayKind:
		for _, e := range v.Elems() {
			writeRaw(w, e)
		}
		return
	default:
		w.Write(v.Bytes())
	}
	w.WriteByte('\n')
}
