package ast

import (
	"strconv"
	"strings"
)

// Kind classifies a Value.
type Kind int

const (
	// KindWord is a bare word, keyword, color or function token ("red", "#fff", "rgba(0, 0, 0, 0.5)").
	KindWord Kind = iota
	// KindString is a quoted string. Raw keeps the quotes.
	KindString
	// KindNumber is a unitless number. Num holds the parsed value.
	KindNumber
	// KindDimension is a number with a unit or percent sign ("10px", "20%"), passed through verbatim.
	KindDimension
	// KindVariable is an opaque variable reference ("$margin", "@gutter").
	KindVariable
	// KindList is a whitespace separated group of values within one argument.
	KindList
)

var kindNames = [...]string{"word", "string", "number", "dimension", "variable", "list"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a scalar argument or declaration value.
type Value struct {
	Kind  Kind
	Raw   string  // source text; empty for KindList
	Num   float64 // KindNumber and KindDimension
	Unit  string  // KindDimension: "px", "%", ...
	Parts []Value // KindList
}

// Str makes a word value.
func Str(s string) Value {
	return Value{Kind: KindWord, Raw: s}
}

// Num makes a unitless number value.
func Num(f float64) Value {
	return Value{Kind: KindNumber, Num: f, Raw: FormatNumber(f)}
}

// Dim makes a dimension value such as 5px.
func Dim(f float64, unit string) Value {
	return Value{Kind: KindDimension, Num: f, Unit: unit, Raw: FormatNumber(f) + unit}
}

// Var makes a variable reference.
func Var(name string) Value {
	return Value{Kind: KindVariable, Raw: name}
}

// List makes a whitespace separated list. A single part collapses to itself.
func List(parts ...Value) Value {
	if len(parts) == 1 {
		return parts[0]
	}
	return Value{Kind: KindList, Parts: parts}
}

// String renders the value as CSS text. Numbers use the shortest decimal
// form that round-trips, so ".4" renders as "0.4".
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Num)
	case KindList:
		return v.Join(" ")
	default:
		return v.Raw
	}
}

// Join renders list parts separated by sep. Non-lists render as String.
func (v Value) Join(sep string) string {
	if v.Kind != KindList {
		return v.String()
	}
	parts := make([]string, len(v.Parts))
	for i, p := range v.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, sep)
}

// IsZero reports whether v is the zero Value (an absent argument).
func (v Value) IsZero() bool {
	return v.Kind == KindWord && v.Raw == "" && v.Parts == nil
}

// FormatNumber formats f without trailing zeros or exponent.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Args is the argument list of a mixin call. It is either Positional or
// Keywords; the parser decides which once per call.
type Args interface {
	Len() int
	args()
}

// Positional is an ordered argument list: `margin(1, 2, 3, 4)`.
type Positional []Value

// Keyword is one `key: value` argument.
type Keyword struct {
	Key   string
	Value Value
}

// Keywords is a keyword-object argument list: `margin(top: 1, left: 2)`.
// Source order is preserved.
type Keywords []Keyword

func (p Positional) Len() int { return len(p) }
func (k Keywords) Len() int   { return len(k) }

func (Positional) args() {}
func (Keywords) args()   {}

// At returns the i-th argument, or the zero Value when absent.
func (p Positional) At(i int) Value {
	if i < 0 || i >= len(p) {
		return Value{}
	}
	return p[i]
}

// Get returns the value for key.
func (k Keywords) Get(key string) (Value, bool) {
	for _, kw := range k {
		if kw.Key == key {
			return kw.Value, true
		}
	}
	return Value{}, false
}
