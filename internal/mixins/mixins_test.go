package mixins

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssmix/internal/ast"
)

// flatten renders an expansion as "property: value" lines, with rules as
// "selector { ... }".
func flatten(nodes []ast.Node) []string {
	var out []string
	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.Declaration:
			out = append(out, n.Property+": "+n.Value.String())
		case *ast.Rule:
			out = append(out, fmt.Sprintf("%s { %s }", n.Selector, strings.Join(flatten(n.Children), "; ")))
		case *ast.MixinCall:
			out = append(out, n.Name+"()")
		}
	}
	return out
}

func pos(vals ...ast.Value) ast.Positional {
	return ast.Positional(vals)
}

func kw(pairs ...any) ast.Keywords {
	var k ast.Keywords
	for i := 0; i+1 < len(pairs); i += 2 {
		k = append(k, ast.Keyword{Key: pairs[i].(string), Value: pairs[i+1].(ast.Value)})
	}
	return k
}

var (
	w = ast.Str
	n = ast.Num
)

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name     string
		mixin    string
		args     ast.Args
		expected []string
	}{
		// box
		{"absolute positional", "absolute", pos(n(0), n(1), n(2), n(3)),
			[]string{"position: absolute", "top: 0", "right: 1", "left: 2", "bottom: 3"}},
		{"fixed keywords", "fixed", kw("top", n(0), "zIndex", n(2)),
			[]string{"position: fixed", "top: 0", "z-index: 2"}},
		{"left floats when empty", "left", pos(), []string{"float: left"}},
		{"right offset", "right", pos(ast.Dim(10, "px")), []string{"right: 10px"}},
		{"block without size", "block", pos(), []string{"display: block"}},
		{"block width and height", "block", pos(n(10), n(5)),
			[]string{"display: block", "width: 10", "height: 5"}},
		{"block zero height is skipped", "block", pos(n(10), n(0)),
			[]string{"display: block", "width: 10"}},
		{"inlineBlock keywords", "inlineBlock", kw("width", w("50%")),
			[]string{"display: inline-block", "width: 50%"}},
		{"centeredBlock", "centeredBlock", pos(n(20)),
			[]string{"display: block", "width: 20", "margin-left: auto", "margin-right: auto"}},
		{"margin ordered", "margin", pos(n(1), n(2), n(3), n(4)),
			[]string{"margin-top: 1", "margin-right: 2", "margin-left: 3", "margin-bottom: 4"}},
		{"margin shorthand", "margin", pos(w("auto")), []string{"margin: auto"}},
		{"margin keywords keep call order", "margin", kw("top", n(1), "bottom", n(4), "right", n(2)),
			[]string{"margin-top: 1", "margin-bottom: 4", "margin-right: 2"}},
		{"spaced default", "spaced", pos(), []string{"margin-bottom: 1rem"}},
		{"spaced number gets unit", "spaced", pos(n(2)), []string{"margin-bottom: 2rem"}},
		{"spaced variable verbatim", "spaced", pos(ast.Var("$gap")), []string{"margin-bottom: $gap"}},
		{"spacedBlock shifts arguments", "spacedBlock", pos(ast.Var("$margin"), n(10)),
			[]string{"margin-bottom: $margin", "display: block", "width: 10"}},
		{"size square", "size", pos(n(4)), []string{"width: 4", "height: 4"}},
		{"minSize", "minSize", pos(n(4), n(2)), []string{"min-width: 4", "min-height: 2"}},

		// grid
		{"column full width", "column", pos(), []string{"float: left", "width: 100%"}},
		{"column percentage", "column", pos(w("25%")), []string{"float: left", "width: 25%"}},
		{"column span", "column", pos(n(3)), []string{"float: left", "width: 25%"}},
		{"column span of columns", "column", pos(n(3), n(16)), []string{"float: left", "width: 18.75%"}},
		{"column spaced", "column", pos(w("spaced"), n(6)),
			[]string{"float: left", "width: 50%", "margin-left: 5%"}},
		{"column keywords", "column", kw("span", n(1), "columns", n(4), "spaced", w("true"), "margin", w("2%")),
			[]string{"float: left", "width: 25%", "margin-left: 2%"}},
		{"row default margin", "row", pos(),
			[]string{"margin-left: -5%", "max-width: 105%", "&:after { clear: both; content: ''; display: block }"}},
		{"rowModify", "rowModify", pos(w("3%")), []string{"margin-left: -3%", "max-width: 103%"}},
		{"rowReset", "rowReset", pos(), []string{"margin-left: 0", "max-width: none"}},
		{"clear default", "clear", pos(), []string{"clear: both"}},
		{"clear value", "clear", pos(w("left")), []string{"clear: left"}},

		// display
		{"inline", "inline", pos(), []string{"display: inline"}},
		{"hide", "hide", pos(), []string{"display: none"}},
		{"show", "show", pos(), []string{"display: inherit"}},
		{"hidden", "hidden", pos(), []string{"visibility: hidden"}},
		{"visible", "visible", pos(), []string{"visibility: visible"}},

		// typography
		{"font positional", "font", pos(ast.List(ast.Value{Kind: ast.KindString, Raw: "'Open Sans'"}, w("Arial"), w("sans-serif")), n(5), w("bold"), n(1.2)),
			[]string{"font-family: 'Open Sans', Arial, sans-serif", "font-size: 5", "font-weight: bold", "line-height: 1.2"}},
		{"font keywords", "font", kw("family", w("Arial"), "lineHeight", n(1.5)),
			[]string{"font-family: Arial", "line-height: 1.5"}},
		{"bold", "bold", pos(), []string{"font-weight: bold"}},
		{"italic", "italic", pos(), []string{"font-style: italic"}},
		{"align", "align", pos(w("center")), []string{"text-align: center"}},
		{"vAlign", "vAlign", pos(w("top")), []string{"vertical-align: top"}},
		{"unstyled", "unstyled", pos(), []string{"list-style: none"}},

		// color
		{"color", "color", pos(w("#fff")), []string{"color: #fff"}},
		{"lighten", "lighten", pos(w("#000000"), w("50%")), []string{"color: #808080"}},
		{"darken", "darken", pos(w("#ffffff"), n(100)), []string{"color: #000000"}},
		{"background empty", "background", pos(), nil},
		{"background opacity folded", "background", pos(w("#fff"), n(0.5)),
			[]string{"background: rgba(255, 255, 255, 0.5)"}},
		{"background zero opacity folded", "background", pos(w("#fff"), n(0)),
			[]string{"background: rgba(255, 255, 255, 0)"}},
		{"background percentage opacity is not folded", "background", pos(w("#fff"), ast.Dim(50, "%")),
			[]string{"background: #fff 50%"}},
		{"background parts joined", "background", pos(w("#fff"), w("url(a.png)"), w("no-repeat")),
			[]string{"background: #fff url(a.png) no-repeat"}},
		{"background variable is not folded", "background", pos(ast.Var("$bg"), n(20)),
			[]string{"background: $bg 20"}},
		{"background keywords", "background", kw("color", w("red"), "repeat", w("no-repeat")),
			[]string{"background-color: red", "background-repeat: no-repeat"}},
		{"border default", "border", pos(), []string{"border: 1px solid #d2d2d2"}},
		{"border none", "border", pos(n(0)), []string{"border: none"}},
		{"border color", "border", pos(w("red")), []string{"border: 1px solid red"}},
		{"border verbatim", "border", pos(w("2px dashed red")), []string{"border: 2px dashed red"}},
		{"border side", "border", pos(w("top")), []string{"border-top: 1px solid #d2d2d2"}},
		{"border axis", "border", pos(w("vertical")),
			[]string{"border-left: 1px solid #d2d2d2", "border-right: 1px solid #d2d2d2"}},
		{"border axis with color", "border", pos(w("horizontal"), w("#000")),
			[]string{"border-top: 1px solid #000", "border-bottom: 1px solid #000"}},
		{"border side with value", "border", pos(w("bottom"), w("none")), []string{"border-bottom: none"}},
		{"border keywords", "border", kw("topColor", w("red")), []string{"border-top-color: red"}},
		{"opacity percentage", "opacity", pos(w("20%")), []string{"opacity: 0.2"}},
		{"opacity over one", "opacity", pos(n(20)), []string{"opacity: 0.2"}},
		{"opaque", "opaque", pos(), []string{"opacity: 1"}},
		{"transparent", "transparent", pos(), []string{"opacity: 0"}},
	}

	c := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := c.Call(tt.mixin, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flatten(nodes))
		})
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name  string
		mixin string
		args  ast.Args
		want  string
	}{
		{"display needs a value", "display", pos(), "display: missing value"},
		{"margin arity", "margin", pos(n(1), n(2), n(3), n(4), n(5)), "margin: expected at most 4 arguments, got 5"},
		{"border arity", "border", pos(w("top"), w("red"), w("x")), "border: expected at most 2 arguments, got 3"},
		{"size needs width", "size", pos(), "missing width"},
		{"column span not a number", "column", pos(w("wide")), `column: span "wide" is not a number`},
		{"lighten bad color", "lighten", pos(w("notacolor"), n(10)), `invalid color "notacolor"`},
	}

	c := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Call(tt.mixin, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCatalog(t *testing.T) {
	t.Run("overrides win and compose", func(t *testing.T) {
		c := New(map[string]Func{
			"display": func(_ *Catalog, args ast.Args) ([]ast.Node, error) {
				return []ast.Node{ast.Decl("display", ast.Str("flex"))}, nil
			},
		})

		nodes, err := c.Call("block", pos(n(10)))
		require.NoError(t, err)
		assert.Equal(t, []string{"display: flex", "width: 10"}, flatten(nodes))
		assert.True(t, c.IsOverride("display"))
		assert.False(t, c.IsOverride("block"))
	})

	t.Run("unknown name", func(t *testing.T) {
		c := New(nil)
		_, ok := c.Resolve("customMixin")
		assert.False(t, ok)

		_, err := c.Call("customMixin", nil)
		assert.True(t, errors.Is(err, ErrUnknownMixin))
	})

	t.Run("without builtins", func(t *testing.T) {
		c := New(map[string]Func{"x": func(*Catalog, ast.Args) ([]ast.Node, error) { return nil, nil }}, WithoutBuiltins())
		assert.Equal(t, []string{"x"}, c.Names())
	})

	t.Run("names are sorted and unique", func(t *testing.T) {
		c := New(map[string]Func{"zz": bold, "bold": bold})
		names := c.Names()
		assert.Len(t, names, len(builtins)+1)
		assert.Equal(t, "absolute", names[0])
		assert.Equal(t, "zz", names[len(names)-1])
	})

	t.Run("variables", func(t *testing.T) {
		vars := Variables{BorderColor: "#000", GridColumns: 4}.Merge(DefaultVariables())
		c := New(nil, WithVariables(vars))

		nodes, err := c.Call("border", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"border: 1px solid #000"}, flatten(nodes))

		nodes, err = c.Call("column", pos(n(1)))
		require.NoError(t, err)
		assert.Equal(t, []string{"float: left", "width: 25%"}, flatten(nodes))

		assert.Equal(t, "bold", c.Vars().FontWeightBold)
	})
}
