package resolver

import (
	"fmt"
	"strings"

	"github.com/zetalang/zeta/internal/config"
)

// AliasManager is the read side of the use-alias table. Resolution queries
// it, never mutates it; keys are case-sensitive and targets are used
// verbatim, with no alias-of-alias expansion.
type AliasManager interface {
	IsAlias(name string) bool
	Target(name string) string
}

// UseTable collects the use statements of one unit. It is built before
// resolution starts and read-only afterwards.
type UseTable struct {
	targets map[string]string
}

func NewUseTable() *UseTable {
	return &UseTable{targets: make(map[string]string)}
}

// Register binds an alias to a target namespace or class. An empty alias
// defaults to the target's last segment. Re-registering the same binding is
// a no-op; binding an existing alias to a different target is an error.
func (t *UseTable) Register(target, alias string) error {
	target = strings.TrimPrefix(target, config.NamespaceSeparator)
	if !ValidName(target) {
		return &InvalidIdentifierError{Raw: target}
	}
	if alias == "" {
		alias = lastSegment(target)
	}
	if !validSegment(alias) {
		return &InvalidIdentifierError{Raw: alias}
	}
	if existing, ok := t.targets[alias]; ok {
		if existing == target {
			return nil
		}
		return fmt.Errorf("alias %q already bound to %q, cannot rebind to %q", alias, existing, target)
	}
	t.targets[alias] = target
	return nil
}

// IsAlias reports whether name is a registered alias.
func (t *UseTable) IsAlias(name string) bool {
	_, ok := t.targets[name]
	return ok
}

// Target returns the namespace bound to name, or "" when name is not an
// alias.
func (t *UseTable) Target(name string) string {
	return t.targets[name]
}

// Len returns the number of registered aliases.
func (t *UseTable) Len() int {
	return len(t.targets)
}

func lastSegment(name string) string {
	if idx := strings.LastIndex(name, config.NamespaceSeparator); idx >= 0 {
		return name[idx+len(config.NamespaceSeparator):]
	}
	return name
}
