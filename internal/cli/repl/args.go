package repl

import (
	"errors"
	"strings"
)

var (
	errUnbalancedQuotes = errors.New("unbalanced quotes")
	errTrailingEscape   = errors.New("trailing backslash")
)

// SplitArgs splits a line into arguments. Double-quoted arguments accept
// the escapes \n \r \t \" and \; single-quoted arguments are literal.
// An empty quoted string is kept as an empty argument.
func SplitArgs(line string) ([]string, error) {
	var (
		args   []string
		cur    strings.Builder
		inArg  bool
		quote  byte
		escape bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case escape:
			switch ch {
			case 'n':
				cur.WriteByte('\n')
			case 'r':
				cur.WriteByte('\r')
			case 't':
				cur.WriteByte('\t')
			default:
				cur.WriteByte(ch)
			}
			escape = false
		case quote == '"':
			switch ch {
			case '\\':
				escape = true
			case '"':
				quote = 0
			default:
				cur.WriteByte(ch)
			}
		case quote == '\'':
			if ch == '\'' {
				quote = 0
			} else {
				cur.WriteByte(ch)
			}
		case ch == '"' || ch == '\'':
			quote = ch
			inArg = true
		case ch == ' ' || ch == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteByte(ch)
			inArg = true
		}
	}

	if escape {
		return nil, errTrailingEscape
	}
	if quote != 0 {
		return nil, errUnbalancedQuotes
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
