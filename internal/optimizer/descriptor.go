// Package optimizer implements call-site specialization. Each registered
// strategy may replace a generic dynamic function call with a direct call
// to a runtime symbol; everything a strategy needs is data in its
// descriptor, so adding a forwarded function is a table entry, not code.
package optimizer

import (
	"errors"
	"fmt"
)

// Descriptor declares one forwarding strategy: calls to Name with exactly
// Arity arguments compile to a direct invocation of Symbol. Names are
// normalized to lower case at registration and lookup.
type Descriptor struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Arity  int    `yaml:"arity"`
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return errors.New("optimizer name must not be empty")
	}
	if d.Symbol == "" {
		return fmt.Errorf("optimizer %q: symbol must not be empty", d.Name)
	}
	if d.Arity < 1 {
		return fmt.Errorf("optimizer %q: arity must be at least 1, got %d", d.Name, d.Arity)
	}
	return nil
}
