package utils

import "strings"

// Uncamelize converts a CamelCase identifier to its lower_snake form, the
// shape C symbol names take. An uppercase letter opens a new word unless it
// starts the string; runs of uppercase stay together until a lowercase
// letter follows ("HTTPClient" becomes "http_client").
func Uncamelize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'A' && ch <= 'Z' {
			if i > 0 && (!isUpper(s[i-1]) || (i+1 < len(s) && isLower(s[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteByte(ch - 'A' + 'a')
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }
func isLower(ch byte) bool { return ch >= 'a' && ch <= 'z' }
