// Package ast defines the syntax tree produced by the parser and consumed by
// the resolver and stringifier.
//
// A parsed style sheet holds three kinds of nodes:
//
//   - Declaration: a single `property: value` pair
//   - Rule:        a selector with ordered children (may reference "&")
//   - MixinCall:   a pending `name(args);` invocation
//
// MixinCall nodes only live between parsing and resolution. After
// resolution every call has been replaced by its expansion or dropped with
// a warning, so the stringifier only ever sees declarations and rules.
//
// Nodes are never mutated after construction; the resolver builds new rules
// instead of editing the parsed ones.
package ast

import "fmt"

// Pos is a location in the source text. Line and Column are 1-based.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set by the parser.
// Nodes synthesized by mixins carry the zero Pos.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Node is implemented by *Declaration, *Rule and *MixinCall.
type Node interface {
	Position() Pos
	node()
}

// Declaration is a property/value pair.
type Declaration struct {
	Property string // dash-cased, e.g. "margin-top"
	Value    Value
	Pos      Pos
}

// Rule is a selector with an ordered list of children.
type Rule struct {
	Selector string // may contain "&" for the enclosing selector
	Children []Node
	Pos      Pos
}

// MixinCall is an unresolved `name(args);` statement.
type MixinCall struct {
	Name string
	Args Args
	Pos  Pos
}

func (d *Declaration) Position() Pos { return d.Pos }
func (r *Rule) Position() Pos        { return r.Pos }
func (m *MixinCall) Position() Pos   { return m.Pos }

func (*Declaration) node() {}
func (*Rule) node()        {}
func (*MixinCall) node()   {}

// Stylesheet is the root of a parsed document.
type Stylesheet struct {
	Rules []*Rule
}

// Decl builds a declaration. It is the constructor mixins use.
func Decl(property string, value Value) *Declaration {
	return &Declaration{Property: property, Value: value}
}

// NewRule builds a rule from the given children.
func NewRule(selector string, children ...Node) *Rule {
	return &Rule{Selector: selector, Children: children}
}

// IsAtRule reports whether the rule is an at-rule block such as @media.
// At-rules are transparent when resolving "&".
func (r *Rule) IsAtRule() bool {
	return len(r.Selector) > 0 && r.Selector[0] == '@'
}
