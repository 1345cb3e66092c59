package mixins

import (
	"github.com/yacobolo/cssmix/internal/ast"
	"github.com/yacobolo/cssmix/internal/cssval"
)

// Positional order for box offsets. Left comes before bottom.
var offsetOrder = []string{"top", "right", "left", "bottom"}

var marginOrder = []string{"margin-top", "margin-right", "margin-left", "margin-bottom"}

// offsets emits `position` followed by offsets given either as keywords or
// positionally in offsetOrder.
func offsets(position string) Func {
	return func(_ *Catalog, args ast.Args) ([]ast.Node, error) {
		if err := maxArgs(position, args, len(offsetOrder)); err != nil {
			return nil, err
		}

		nodes := decl("position", ast.Str(position))
		switch a := args.(type) {
		case ast.Keywords:
			nodes = append(nodes, buildProps(a, "")...)
		case ast.Positional:
			nodes = append(nodes, buildOrderedProps(offsetOrder, a)...)
		}
		return nodes, nil
	}
}

// floatOrOffset floats the element to side when called without a value,
// otherwise sets the side offset.
func floatOrOffset(side string) Func {
	return func(_ *Catalog, args ast.Args) ([]ast.Node, error) {
		v := arg(args, 0, "value")
		if cssval.IsEmpty(v) {
			return decl("float", ast.Str(side)), nil
		}
		return decl(side, v), nil
	}
}

// sized sets display followed by optional width and height.
func sized(display string) Func {
	return func(c *Catalog, args ast.Args) ([]ast.Node, error) {
		nodes, err := c.Call("display", ast.Positional{ast.Str(display)})
		if err != nil {
			return nil, err
		}

		switch a := args.(type) {
		case ast.Keywords:
			nodes = append(nodes, buildProps(a, "")...)
		case ast.Positional:
			if len(a) == 0 {
				break
			}
			nodes = append(nodes, ast.Decl("width", a[0]))
			if cssval.Truthy(a.At(1)) {
				nodes = append(nodes, ast.Decl("height", a[1]))
			}
		}
		return nodes, nil
	}
}

func centeredBlock(c *Catalog, args ast.Args) ([]ast.Node, error) {
	return callAll(c,
		to("block", args),
		to("margin", ast.Keywords{
			{Key: "left", Value: ast.Str("auto")},
			{Key: "right", Value: ast.Str("auto")},
		}),
	)
}

// margin accepts keywords (top, right, bottom, left), four ordered values, or
// a single shorthand value.
func margin(_ *Catalog, args ast.Args) ([]ast.Node, error) {
	if err := maxArgs("margin", args, len(marginOrder)); err != nil {
		return nil, err
	}

	switch a := args.(type) {
	case ast.Keywords:
		return buildProps(a, "margin"), nil
	case ast.Positional:
		switch len(a) {
		case 0:
			return nil, nil
		case 1:
			return decl("margin", a[0]), nil
		default:
			return buildOrderedProps(marginOrder, a), nil
		}
	}
	return nil, nil
}

// spaced adds a bottom margin, defaulting to the configured block spacing.
func spaced(c *Catalog, args ast.Args) ([]ast.Node, error) {
	var v ast.Value
	if p, ok := args.(ast.Positional); ok {
		v = p.At(0)
	}
	if cssval.IsEmpty(v) {
		v = token(c.Vars().BlockMarginBottom)
	}

	return c.Call("margin", ast.Keywords{{Key: "bottom", Value: cssval.Unit(v, c.Vars().Unit)}})
}

// spacedBlock is spaced followed by block. A positional call shifts off the
// spacing so the remaining arguments become block's width and height.
func spacedBlock(c *Catalog, args ast.Args) ([]ast.Node, error) {
	nodes, err := c.Call("spaced", args)
	if err != nil {
		return nil, err
	}

	var rest []ast.Node
	switch a := args.(type) {
	case ast.Keywords:
		nodes = append(nodes, buildProps(a, "")...)
		rest, err = c.Call("block", ast.Positional{})
	case ast.Positional:
		if len(a) > 1 {
			rest, err = c.Call("block", a[1:])
		} else {
			rest, err = c.Call("block", ast.Positional{})
		}
	}
	if err != nil {
		return nil, err
	}
	return append(nodes, rest...), nil
}

// dimensions emits width and height (or their min- variants); height
// defaults to width.
func dimensions(prefix string) Func {
	name := func(p string) string {
		if prefix == "" {
			return p
		}
		return prefix + "-" + p
	}

	return func(_ *Catalog, args ast.Args) ([]ast.Node, error) {
		width := arg(args, 0, "width")
		height := arg(args, 1, "height")
		if cssval.IsEmpty(width) {
			return nil, errMissing(name("width"))
		}
		if !cssval.Truthy(height) {
			height = width
		}
		return []ast.Node{
			ast.Decl(name("width"), width),
			ast.Decl(name("height"), height),
		}, nil
	}
}
