package targets

import (
	"strings"
	"testing"

	"github.com/zetalang/zeta/internal/utils"
)

// FuzzEscapeCString fuzzes the C string escaper. The escaper runs on every
// string literal and every embedded class name, so it must hold its
// invariants on arbitrary input.
func FuzzEscapeCString(f *testing.F) {
	// Add seed corpus
	f.Add("hello world")
	f.Add(`He said "hi"`)
	f.Add("line1\nline2\ttab")
	f.Add(`Vendor\Collections\Vector`)
	f.Add(`trailing\`)
	f.Add(`pre\nescaped\\pair`)

	f.Fuzz(func(t *testing.T, input string) {
		once := utils.EscapeCString(input)

		// Escaping must be idempotent: a second pass over already-escaped
		// text changes nothing.
		if twice := utils.EscapeCString(once); twice != once {
			t.Errorf("not idempotent for %q: first %q, second %q", input, once, twice)
		}

		// Control characters always leave as two-character escapes; a raw
		// one would break the generated C literal mid-line.
		if strings.ContainsAny(once, "\n\t\r\v") {
			t.Errorf("raw control character left in escaped output %q", once)
		}

		// Every double quote must arrive escaped or the literal terminates
		// early. Stripping the escaped pairs has to remove them all.
		if strings.Contains(strings.ReplaceAll(once, `\"`, ""), `"`) {
			t.Errorf("unescaped quote left in escaped output %q", once)
		}
	})
}
