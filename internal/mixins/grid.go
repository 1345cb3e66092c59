package mixins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yacobolo/cssmix/internal/ast"
	"github.com/yacobolo/cssmix/internal/cssval"
)

// column floats a grid column and sizes it as a share of the grid:
//
//	column()                        width: 100%
//	column(25%)                     width: 25%
//	column(3)                       3 of the configured columns
//	column(3, 16)                   3 of 16 columns
//	column(spaced, 3, 12, 2%)       adds margin-left (defaults to the grid margin)
//	column(span: 3, columns: 12, spaced: true, margin: 2%)
func column(c *Catalog, args ast.Args) ([]ast.Node, error) {
	var (
		span, columns, gutter ast.Value
		isSpaced              bool
	)

	switch a := args.(type) {
	case ast.Keywords:
		span, _ = a.Get("span")
		columns, _ = a.Get("columns")
		gutter, _ = a.Get("margin")
		flag, _ := a.Get("spaced")
		isSpaced = cssval.Truthy(flag) && flag.String() != "false"
		if cssval.IsEmpty(span) {
			return nil, errMissing("column span")
		}
	case ast.Positional:
		switch {
		case len(a) == 0:
			return floated(ast.Str("100%")), nil
		case cssval.IsPercentage(a[0]):
			return floated(a[0]), nil
		case a[0].String() == "spaced":
			isSpaced = true
			span, columns, gutter = a.At(1), a.At(2), a.At(3)
			if cssval.IsEmpty(span) {
				return nil, errMissing("column span")
			}
		default:
			span, columns = a[0], a.At(1)
		}
	}

	width, err := columnWidth(c, span, columns)
	if err != nil {
		return nil, err
	}

	nodes := floated(width)
	if !isSpaced {
		return nodes, nil
	}

	if cssval.IsEmpty(gutter) {
		gutter = ast.Str(c.Vars().GridMargin)
	}
	left, err := c.Call("margin", ast.Keywords{{Key: "left", Value: gutter}})
	if err != nil {
		return nil, err
	}
	return append(nodes, left...), nil
}

func floated(width ast.Value) []ast.Node {
	return []ast.Node{
		ast.Decl("float", ast.Str("left")),
		ast.Decl("width", width),
	}
}

// columnWidth computes 100 / columns * span as a percentage.
func columnWidth(c *Catalog, span, columns ast.Value) (ast.Value, error) {
	n, ok := cssval.Number(span)
	if !ok {
		return ast.Value{}, fmt.Errorf("column: span %q is not a number", span.String())
	}

	total := c.Vars().GridColumns
	if !cssval.IsEmpty(columns) {
		if total, ok = cssval.Number(columns); !ok {
			return ast.Value{}, fmt.Errorf("column: columns %q is not a number", columns.String())
		}
	}
	if total == 0 {
		return ast.Value{}, fmt.Errorf("column: grid has zero columns")
	}

	return ast.Str(ast.FormatNumber(100/total*n) + "%"), nil
}

// gridMargin returns the integer part of a row margin, falling back to the
// configured grid margin.
func gridMargin(c *Catalog, args ast.Args) (int, error) {
	v := arg(args, 0, "margin")
	if !cssval.Truthy(v) {
		v = ast.Str(c.Vars().GridMargin)
	}

	s := strings.TrimSuffix(v.String(), "%")
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || (i == 0 && (r == '-' || r == '+')) {
			end = i + 1
			continue
		}
		break
	}

	m, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("row: margin %q is not a number", v.String())
	}
	return m, nil
}

// rowOffsets pulls a row out by the column margin.
func rowOffsets(c *Catalog, args ast.Args) ([]ast.Node, error) {
	m, err := gridMargin(c, args)
	if err != nil {
		return nil, err
	}

	nodes, err := c.Call("margin", ast.Keywords{{Key: "left", Value: ast.Str(fmt.Sprintf("%d%%", -m))}})
	if err != nil {
		return nil, err
	}
	return append(nodes, ast.Decl("max-width", ast.Str(fmt.Sprintf("%d%%", 100+m)))), nil
}

func row(c *Catalog, args ast.Args) ([]ast.Node, error) {
	nodes, err := rowOffsets(c, args)
	if err != nil {
		return nil, err
	}

	fix, err := c.Call("clearfix", ast.Positional{})
	if err != nil {
		return nil, err
	}
	return append(nodes, fix...), nil
}

func rowModify(c *Catalog, args ast.Args) ([]ast.Node, error) {
	return rowOffsets(c, args)
}

func rowReset(c *Catalog, _ ast.Args) ([]ast.Node, error) {
	nodes, err := c.Call("margin", ast.Keywords{{Key: "left", Value: ast.Str("0")}})
	if err != nil {
		return nil, err
	}
	return append(nodes, ast.Decl("max-width", ast.Str("none"))), nil
}

func clearFloat(c *Catalog, args ast.Args) ([]ast.Node, error) {
	return single("clear", "both")(c, args)
}

func content(*Catalog, ast.Args) ([]ast.Node, error) {
	return decl("content", ast.Value{Kind: ast.KindString, Raw: "''"}), nil
}

// clearfix emits a synthetic "&:after" rule.
func clearfix(c *Catalog, _ ast.Args) ([]ast.Node, error) {
	children, err := callAll(c,
		to("clear", ast.Positional{}),
		to("content", ast.Positional{}),
		to("display", ast.Positional{ast.Str("block")}),
	)
	if err != nil {
		return nil, err
	}
	return []ast.Node{ast.NewRule("&:after", children...)}, nil
}
