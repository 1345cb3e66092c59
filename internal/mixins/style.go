package mixins

import (
	"fmt"
	"strings"

	"github.com/yacobolo/cssmix/internal/ast"
	"github.com/yacobolo/cssmix/internal/cssval"
)

var fontOrder = []string{"font-family", "font-size", "font-weight", "line-height", "font-style"}

// font accepts keywords (family, size, weight, lineHeight, style) or the
// positional order in fontOrder. Positional values are only emitted when
// truthy.
func font(_ *Catalog, args ast.Args) ([]ast.Node, error) {
	if err := maxArgs("font", args, len(fontOrder)); err != nil {
		return nil, err
	}

	switch a := args.(type) {
	case ast.Keywords:
		return buildProps(a, "font", "lineHeight", "line-height"), nil
	case ast.Positional:
		var nodes []ast.Node
		for i, v := range a {
			if !cssval.Truthy(v) {
				continue
			}
			if i == 0 && v.Kind == ast.KindList {
				v = ast.Str(v.Join(", "))
			}
			nodes = append(nodes, ast.Decl(fontOrder[i], v))
		}
		return nodes, nil
	}
	return nil, nil
}

func bold(c *Catalog, _ ast.Args) ([]ast.Node, error) {
	return decl("font-weight", ast.Str(c.Vars().FontWeightBold)), nil
}

// shade adapts a color transform into a mixin emitting `color`.
func shade(fn func(color string, percent float64) (string, error)) Func {
	return func(_ *Catalog, args ast.Args) ([]ast.Node, error) {
		color := arg(args, 0, "color")
		amount := arg(args, 1, "amount")
		if cssval.IsEmpty(color) {
			return nil, errMissing("color")
		}

		pct := 10.0
		if !cssval.IsEmpty(amount) {
			s := strings.TrimSuffix(amount.String(), "%")
			n, ok := cssval.Number(ast.Str(s))
			if !ok {
				return nil, fmt.Errorf("amount %q is not a number", amount.String())
			}
			pct = n
		}

		out, err := fn(color.String(), pct)
		if err != nil {
			return nil, err
		}
		return decl("color", ast.Str(out)), nil
	}
}

// background builds the shorthand from positional parts. A numeric second
// argument after a color is folded into an rgba() of that color.
func background(_ *Catalog, args ast.Args) ([]ast.Node, error) {
	switch a := args.(type) {
	case ast.Keywords:
		return buildProps(a, "background"), nil
	case ast.Positional:
		if len(a) == 0 || !cssval.Truthy(a[0]) {
			return nil, nil
		}

		parts := make([]string, 0, len(a))
		var rest ast.Positional
		if op, ok := cssval.Number(a.At(1)); ok && cssval.IsColorValue(a[0]) {
			rgba, err := cssval.HexToRgba(a[0].Raw, op)
			if err != nil {
				return nil, err
			}
			parts = append(parts, rgba)
			rest = a[2:]
		} else {
			parts = append(parts, a[0].String())
			rest = a[1:]
		}
		for _, v := range rest {
			parts = append(parts, v.String())
		}
		return decl("background", ast.Str(strings.Join(parts, " "))), nil
	}
	return nil, nil
}

var borderSides = map[string][]string{
	"top":        {"border-top"},
	"right":      {"border-right"},
	"bottom":     {"border-bottom"},
	"left":       {"border-left"},
	"vertical":   {"border-left", "border-right"},
	"horizontal": {"border-top", "border-bottom"},
}

func border(c *Catalog, args ast.Args) ([]ast.Node, error) {
	if err := maxArgs("border", args, 2); err != nil {
		return nil, err
	}

	standard := ast.Str("1px solid " + c.Vars().BorderColor)

	if kw, ok := args.(ast.Keywords); ok {
		return buildProps(kw, "border"), nil
	}
	a, _ := args.(ast.Positional)

	switch len(a) {
	case 0:
		return decl("border", standard), nil
	case 1:
		if props, ok := borderSides[a[0].String()]; ok {
			return fillProps(props, standard), nil
		}
		switch {
		case a[0].String() == "0" || a[0].String() == "none":
			return decl("border", ast.Str("none")), nil
		case cssval.IsColorValue(a[0]):
			return decl("border", ast.Str("1px solid "+a[0].Raw)), nil
		default:
			return decl("border", a[0]), nil
		}
	}

	value := a[1]
	if cssval.IsColorValue(value) {
		value = ast.Str("1px solid " + value.Raw)
	}
	if props, ok := borderSides[a[0].String()]; ok {
		return fillProps(props, value), nil
	}
	return decl(cssval.Prefix(a[0].String(), "border"), value), nil
}

func opacity(_ *Catalog, args ast.Args) ([]ast.Node, error) {
	v := arg(args, 0, "value")
	if cssval.IsEmpty(v) {
		return nil, errMissing("opacity")
	}
	return decl("opacity", cssval.CalcOpacity(v)), nil
}

func fixedOpacity(n float64) Func {
	return func(c *Catalog, _ ast.Args) ([]ast.Node, error) {
		return c.Call("opacity", ast.Positional{ast.Num(n)})
	}
}
