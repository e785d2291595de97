package artifact

import (
	"strings"

	"github.com/arloliu/fossick/internal/pool"
)

// Card text tokens encode spaces and newlines so that one card always
// occupies one space-separated line: '\' introduces an escape, with "\s" for
// space, "\n" for newline and "\\" for a literal backslash.

// UnescapeText decodes the escape sequences of a card text token in a
// single left-to-right pass. Unknown escapes and a trailing lone backslash
// pass through unchanged.
func UnescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	buf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(buf)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			buf.MustWriteByte(c)
			continue
		}

		switch s[i+1] {
		case 's':
			buf.MustWriteByte(' ')
			i++
		case 'n':
			buf.MustWriteByte('\n')
			i++
		case '\\':
			buf.MustWriteByte('\\')
			i++
		default:
			buf.MustWriteByte(c)
		}
	}

	return buf.String()
}

// EscapeText is the inverse of UnescapeText. The reader never writes cards;
// the encoder exists for symmetry and for the round-trip test.
func EscapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case ' ':
			b.WriteString(`\s`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
