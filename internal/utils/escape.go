package utils

import "strings"

// EscapeCString prepares text for embedding in a double-quoted C string
// literal. Double quotes and the control characters newline, tab, carriage
// return and vertical tab become their two-character escape sequences.
//
// A backslash already followed by one of n, v, t, r, " or \ is treated as an
// escape sequence written out by the frontend and passes through unchanged;
// any other backslash, including one at the end of the input, is doubled.
// The function is idempotent: escaping already-escaped text changes nothing.
func EscapeCString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\v':
			b.WriteString(`\v`)
		case '\\':
			if i+1 < len(s) && isEscapeTail(s[i+1]) {
				b.WriteByte('\\')
				b.WriteByte(s[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func isEscapeTail(ch byte) bool {
	switch ch {
	case 'n', 'v', 't', 'r', '"', '\\':
		return true
	}
	return false
}
