package output

import (
	"fmt"
	"io"

	"github.com/yndnr/respkv/pkg/resp"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatRaw  Format = "raw"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formatter writes one reply.
type Formatter interface {
	Format(w io.Writer, v resp.Value) error
}

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatText, nil
	case FormatText, FormatRaw, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, raw, json or yaml)", s)
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatRaw:
		return &RawFormatter{}
	default:
		return &TextFormatter{}
	}
}

// Reply is the structured form of a reply used by the json and yaml
// formatters.
type Reply struct {
	Type     string  `json:"type" yaml:"type"`
	Value    *string `json:"value,omitempty" yaml:"value,omitempty"`
	Integer  *int64  `json:"integer,omitempty" yaml:"integer,omitempty"`
	Elements []Reply `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// NewReply converts v into its structured form.
func NewReply(v resp.Value) Reply {
	r := Reply{Type: v.Kind().String()}
	switch v.Kind() {
	case resp.SimpleStringKind, resp.SimpleErrorKind, resp.BulkStringKind:
		s := v.Text()
		r.Value = &s
	case resp.IntegerKind:
		n := v.Int()
		r.Integer = &n
	case resp.ArrayKind:
		r.Elements = make([]Reply, 0, v.Len())
		for _, e := range v.Elems() {
			r.Elements = append(r.Elements, NewReply(e))
		}
	}
	return r
}
