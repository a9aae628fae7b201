package optimizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zetalang/zeta/internal/codegen"
)

// DuplicateRegistrationError reports two descriptors sharing a name. It is
// a configuration defect raised while the registry is built, before any
// unit compiles.
type DuplicateRegistrationError struct {
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("optimizer %q registered twice", e.Name)
}

// Forwarder is the one strategy backing every registry entry: a call with
// exactly the configured arity compiles to a direct invocation of the
// configured runtime symbol; any other arity declines. A Forwarder carries
// no state beyond its configuration and is safe to share.
type Forwarder struct {
	symbol string
	arity  int
}

// Symbol returns the runtime symbol this strategy forwards to.
func (f *Forwarder) Symbol() string { return f.symbol }

// Arity returns the exact argument count this strategy accepts.
func (f *Forwarder) Arity() int { return f.arity }

// TryCompile forwards the call when the argument count matches and declines
// otherwise. Declining is not an error; the caller falls back to the
// generic dynamic call.
func (f *Forwarder) TryCompile(args []codegen.Compiled) (codegen.Compiled, bool) {
	if len(args) != f.arity {
		return codegen.Compiled{}, false
	}
	codes := make([]string, len(args))
	for i, arg := range args {
		codes[i] = arg.Code
	}
	return codegen.Compiled{
		Type: codegen.TypeDouble,
		Code: f.symbol + "(" + strings.Join(codes, ", ") + ")",
	}, true
}

// Registry maps call names to their strategies. It is built once before
// compilation starts and exposes no way to register afterwards, so it is
// safe to share across units without locking.
type Registry struct {
	entries map[string]*Forwarder
}

// NewRegistry builds a registry from descriptors. Names are lowercased; an
// invalid descriptor or a duplicate name fails the build, duplicates
// surfacing as *DuplicateRegistrationError.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	entries := make(map[string]*Forwarder, len(descriptors))
	for _, d := range descriptors {
		if err := d.validate(); err != nil {
			return nil, err
		}
		name := strings.ToLower(d.Name)
		if _, exists := entries[name]; exists {
			return nil, &DuplicateRegistrationError{Name: name}
		}
		entries[name] = &Forwarder{symbol: d.Symbol, arity: d.Arity}
	}
	return &Registry{entries: entries}, nil
}

// Lookup returns the strategy registered for name, normalizing case the
// same way registration does. A miss is a normal outcome.
func (r *Registry) Lookup(name string) (codegen.CallOptimizer, bool) {
	f, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return f, true
}

// Len returns the number of registered strategies.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Names returns the registered call names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
