package mixins

import (
	"strconv"

	"github.com/yacobolo/cssmix/internal/ast"
)

// Variables is the static design-token table the built-ins fall back to.
type Variables struct {
	FontWeightBold    string  `koanf:"font-weight-bold"`
	BorderColor       string  `koanf:"border-color"`
	GridColumns       float64 `koanf:"grid-columns"`
	GridMargin        string  `koanf:"grid-margin"`         // percentage, e.g. "5%"
	BlockMarginBottom string  `koanf:"block-margin-bottom"` // unitless numbers get Unit
	Unit              string  `koanf:"unit"`                // unit applied by spaced()
}

// DefaultVariables returns the built-in design tokens.
func DefaultVariables() Variables {
	return Variables{
		FontWeightBold:    "bold",
		BorderColor:       "#d2d2d2",
		GridColumns:       12,
		GridMargin:        "5%",
		BlockMarginBottom: "1",
		Unit:              "rem",
	}
}

// Merge fills zero fields of v from defaults.
func (v Variables) Merge(defaults Variables) Variables {
	if v.FontWeightBold == "" {
		v.FontWeightBold = defaults.FontWeightBold
	}
	if v.BorderColor == "" {
		v.BorderColor = defaults.BorderColor
	}
	if v.GridColumns == 0 {
		v.GridColumns = defaults.GridColumns
	}
	if v.GridMargin == "" {
		v.GridMargin = defaults.GridMargin
	}
	if v.BlockMarginBottom == "" {
		v.BlockMarginBottom = defaults.BlockMarginBottom
	}
	if v.Unit == "" {
		v.Unit = defaults.Unit
	}
	return v
}

// token turns a configured string into a value, typing plain numbers.
func token(s string) ast.Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ast.Num(f)
	}
	return ast.Str(s)
}
