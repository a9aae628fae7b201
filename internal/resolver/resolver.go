// Package resolver turns raw class and interface references into canonical
// fully qualified names. Resolution is a pure function of the reference, the
// unit's namespace and its use-alias table; identical inputs always produce
// identical names.
package resolver

import (
	"fmt"
	"strings"

	"github.com/zetalang/zeta/internal/config"
)

// InvalidIdentifierError reports a reference that is empty or not a
// well-formed namespaced identifier. It aborts the unit being compiled.
type InvalidIdentifierError struct {
	Raw string
}

func (e *InvalidIdentifierError) Error() string {
	if e.Raw == "" {
		return "invalid identifier: empty name"
	}
	return fmt.Sprintf("invalid identifier %q", e.Raw)
}

// Resolve converts a raw reference into a fully qualified name. The rules
// apply in priority order:
//
//  1. A name starting with the separator is absolute: exactly one leading
//     separator is stripped and the remainder is the FQN, ignoring both the
//     alias table and the current namespace.
//  2. A qualified name whose first segment is a registered alias substitutes
//     the alias target for that segment.
//  3. A bare name that is itself an alias resolves to the alias target,
//     unmodified.
//  4. Otherwise the name is prefixed with the current namespace when one is
//     active, and returned unchanged in the global namespace.
//
// Aliases match only on the first segment and never expand recursively. The
// returned name never carries a leading separator. currentNamespace is the
// unit's namespace with segments already joined and pre-checked with
// ValidName; "" means global. A nil aliases table behaves like an empty one.
func Resolve(raw, currentNamespace string, aliases AliasManager) (string, error) {
	if raw == "" {
		return "", &InvalidIdentifierError{Raw: raw}
	}

	if strings.HasPrefix(raw, config.NamespaceSeparator) {
		fqn := raw[len(config.NamespaceSeparator):]
		if !ValidName(fqn) {
			return "", &InvalidIdentifierError{Raw: raw}
		}
		return fqn, nil
	}

	if !ValidName(raw) {
		return "", &InvalidIdentifierError{Raw: raw}
	}

	if first, rest, qualified := strings.Cut(raw, config.NamespaceSeparator); qualified {
		if aliases != nil && aliases.IsAlias(first) {
			return aliases.Target(first) + config.NamespaceSeparator + rest, nil
		}
	} else if aliases != nil && aliases.IsAlias(raw) {
		return aliases.Target(raw), nil
	}

	if currentNamespace != "" {
		return currentNamespace + config.NamespaceSeparator + raw, nil
	}
	return raw, nil
}

// ValidName reports whether name is one or more valid segments joined by
// the separator, with no leading, trailing or doubled separators. The
// decoder runs it over unit namespaces so resolution can take its context
// on trust.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, config.NamespaceSeparator) {
		if !validSegment(seg) {
			return false
		}
	}
	return true
}

// validSegment reports whether seg is a single identifier: a letter or
// underscore followed by letters, digits or underscores.
func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		ch := seg[i]
		switch {
		case ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
