package mixins

import (
	"fmt"

	"github.com/yacobolo/cssmix/internal/ast"
	"github.com/yacobolo/cssmix/internal/cssval"
)

// builtins is the built-in library, keyed by the name used in style sheets.
var builtins = map[string]Func{
	// positioning and box
	"absolute":      offsets("absolute"),
	"fixed":         offsets("fixed"),
	"left":          floatOrOffset("left"),
	"right":         floatOrOffset("right"),
	"block":         sized("block"),
	"inlineBlock":   sized("inline-block"),
	"centeredBlock": centeredBlock,
	"margin":        margin,
	"spaced":        spaced,
	"spacedBlock":   spacedBlock,
	"size":          dimensions(""),
	"minSize":       dimensions("min"),

	// grid
	"column":    column,
	"row":       row,
	"rowModify": rowModify,
	"rowReset":  rowReset,
	"clear":     clearFloat,
	"clearfix":  clearfix,
	"content":   content,

	// display and visibility
	"display":    single("display", ""),
	"inline":     alias("display", "inline"),
	"hide":       alias("display", "none"),
	"show":       alias("display", "inherit"),
	"visibility": single("visibility", ""),
	"hidden":     alias("visibility", "hidden"),
	"visible":    alias("visibility", "visible"),

	// typography
	"font":     font,
	"bold":     bold,
	"italic":   constant("font-style", "italic"),
	"align":    single("text-align", ""),
	"vAlign":   single("vertical-align", ""),
	"unstyled": constant("list-style", "none"),

	// color and effects
	"color":       single("color", ""),
	"lighten":     shade(cssval.Lighten),
	"darken":      shade(cssval.Darken),
	"background":  background,
	"border":      border,
	"opacity":     opacity,
	"opaque":      fixedOpacity(1),
	"transparent": fixedOpacity(0),
}

// arg returns the i-th positional argument or, for keyword calls, the
// argument named key.
func arg(args ast.Args, i int, key string) ast.Value {
	switch a := args.(type) {
	case ast.Positional:
		return a.At(i)
	case ast.Keywords:
		v, _ := a.Get(key)
		return v
	}
	return ast.Value{}
}

// maxArgs rejects positional calls with more than n arguments.
func maxArgs(name string, args ast.Args, n int) error {
	if p, ok := args.(ast.Positional); ok && len(p) > n {
		return fmt.Errorf("%s: expected at most %d arguments, got %d", name, n, len(p))
	}
	return nil
}

// decl wraps a single declaration as an expansion.
func decl(property string, v ast.Value) []ast.Node {
	return []ast.Node{ast.Decl(property, v)}
}

// buildProps emits one declaration per keyword, in call order.
func buildProps(kw ast.Keywords, prefix string, ignored ...string) []ast.Node {
	nodes := make([]ast.Node, 0, len(kw))
	for _, k := range kw {
		nodes = append(nodes, ast.Decl(cssval.Prefix(k.Key, prefix, ignored...), k.Value))
	}
	return nodes
}

// buildOrderedProps pairs properties with positional values.
func buildOrderedProps(props []string, values ast.Positional) []ast.Node {
	nodes := make([]ast.Node, 0, len(values))
	for i, v := range values {
		if i >= len(props) {
			break
		}
		nodes = append(nodes, ast.Decl(props[i], v))
	}
	return nodes
}

// fillProps assigns the same value to every property.
func fillProps(props []string, v ast.Value) []ast.Node {
	nodes := make([]ast.Node, 0, len(props))
	for _, p := range props {
		nodes = append(nodes, ast.Decl(p, v))
	}
	return nodes
}

// single is a one-declaration mixin taking its value as the first argument
// (or keyword "value"). A non-empty fallback is used when none is given.
func single(property, fallback string) Func {
	return func(_ *Catalog, args ast.Args) ([]ast.Node, error) {
		v := arg(args, 0, "value")
		if cssval.IsEmpty(v) {
			if fallback == "" {
				return nil, fmt.Errorf("%s: missing value", property)
			}
			v = ast.Str(fallback)
		}
		return decl(property, v), nil
	}
}

// constant always emits the same declaration.
func constant(property, value string) Func {
	return func(*Catalog, ast.Args) ([]ast.Node, error) {
		return decl(property, ast.Str(value)), nil
	}
}

// alias calls another mixin with a fixed argument.
func alias(name, value string) Func {
	return func(c *Catalog, _ ast.Args) ([]ast.Node, error) {
		return c.Call(name, ast.Positional{ast.Str(value)})
	}
}

// callAll concatenates the expansions of several sibling calls.
func callAll(c *Catalog, calls ...func(*Catalog) ([]ast.Node, error)) ([]ast.Node, error) {
	var nodes []ast.Node
	for _, call := range calls {
		out, err := call(c)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, out...)
	}
	return nodes, nil
}

// to builds a deferred sibling call for callAll.
func to(name string, args ast.Args) func(*Catalog) ([]ast.Node, error) {
	return func(c *Catalog) ([]ast.Node, error) {
		return c.Call(name, args)
	}
}

func errMissing(what string) error {
	return fmt.Errorf("missing %s", what)
}
