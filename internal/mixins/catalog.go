// Package mixins provides the mixin catalog: the built-in library of
// shorthand CSS patterns overlaid with caller supplied implementations.
//
// A mixin is a plain function of its arguments and the catalog it is called
// through. Mixins compose by calling siblings through the catalog, so an
// override of "display" is also seen by "block", "hide" and "clearfix".
package mixins

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yacobolo/cssmix/internal/ast"
)

// ErrUnknownMixin is returned by Catalog.Call for names that are not
// registered.
var ErrUnknownMixin = errors.New("unknown mixin")

// Func is a mixin implementation. It returns the nodes that replace the call:
// a single declaration, a sequence of declarations and rules, or a rule.
type Func func(c *Catalog, args ast.Args) ([]ast.Node, error)

// Catalog maps mixin names to implementations. It is read-only after New and
// safe to share between documents and goroutines.
type Catalog struct {
	overrides map[string]Func
	builtins  map[string]Func
	vars      Variables
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithVariables replaces the default design tokens.
func WithVariables(vars Variables) Option {
	return func(c *Catalog) {
		c.vars = vars
	}
}

// WithoutBuiltins creates a catalog containing only the overrides.
func WithoutBuiltins() Option {
	return func(c *Catalog) {
		c.builtins = nil
	}
}

// New creates a catalog. Entries in overrides win over built-ins with the
// same name. The map is copied.
func New(overrides map[string]Func, opts ...Option) *Catalog {
	c := &Catalog{
		overrides: make(map[string]Func, len(overrides)),
		builtins:  builtins,
		vars:      DefaultVariables(),
	}
	for name, fn := range overrides {
		c.overrides[name] = fn
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve looks up name, checking overrides before built-ins.
func (c *Catalog) Resolve(name string) (Func, bool) {
	if fn, ok := c.overrides[name]; ok && fn != nil {
		return fn, true
	}
	fn, ok := c.builtins[name]
	return fn, ok
}

// Call invokes the mixin registered under name with c as its context.
func (c *Catalog) Call(name string, args ast.Args) ([]ast.Node, error) {
	fn, ok := c.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMixin, name)
	}
	if args == nil {
		args = ast.Positional{}
	}
	return fn(c, args)
}

// Vars returns the design tokens mixins read their defaults from.
func (c *Catalog) Vars() Variables {
	return c.vars
}

// Names returns every resolvable mixin name, sorted.
func (c *Catalog) Names() []string {
	seen := make(map[string]bool, len(c.builtins)+len(c.overrides))
	names := make([]string, 0, len(c.builtins)+len(c.overrides))
	for _, m := range []map[string]Func{c.overrides, c.builtins} {
		for name := range m {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// IsOverride reports whether name resolves to a caller supplied mixin.
func (c *Catalog) IsOverride(name string) bool {
	fn, ok := c.overrides[name]
	return ok && fn != nil
}
