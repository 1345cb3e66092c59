// Package cssval holds the value predicates and conversions shared by the
// mixin library: emptiness and number checks, percentage and opacity
// handling, property name casing and unit application.
package cssval

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/yacobolo/cssmix/internal/ast"
)

var (
	percentagePattern = regexp.MustCompile(`^\d+%$`)
	// numberPattern is the CSS <number> shape; "inf", "nan" and hex
	// floats are words.
	numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// IsEmpty reports whether an argument was not supplied.
func IsEmpty(v ast.Value) bool {
	return v.IsZero()
}

// Truthy reports whether an optional argument counts as given.
// A missing value, an empty string and the number zero do not.
func Truthy(v ast.Value) bool {
	if v.IsZero() {
		return false
	}
	if n, ok := Number(v); ok && n == 0 && v.Kind != ast.KindDimension {
		return false
	}
	return v.String() != ""
}

// Number returns the numeric value of a unitless number, including numeric
// words such as "2".
func Number(v ast.Value) (float64, bool) {
	switch v.Kind {
	case ast.KindNumber:
		return v.Num, true
	case ast.KindWord:
		if !numberPattern.MatchString(v.Raw) {
			return 0, false
		}
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumber reports whether v is a unitless number.
func IsNumber(v ast.Value) bool {
	_, ok := Number(v)
	return ok
}

// IsPercentage reports whether v is an integer percentage such as "20%".
func IsPercentage(v ast.Value) bool {
	return percentagePattern.MatchString(v.String())
}

// IsVariable reports whether v is an opaque variable reference.
func IsVariable(v ast.Value) bool {
	return v.Kind == ast.KindVariable
}

// CalcOpacity normalizes an opacity argument into the 0..1 range.
// "20%" and 20 both become 0.2; values already in range pass through, as
// does anything that is not numeric.
func CalcOpacity(v ast.Value) ast.Value {
	if IsPercentage(v) {
		n, _ := strconv.ParseFloat(strings.TrimSuffix(v.String(), "%"), 64)
		return ast.Num(n / 100)
	}
	n, ok := Number(v)
	if !ok {
		return v
	}
	if n > 1 {
		return ast.Num(n / 100)
	}
	return ast.Num(n)
}

// DashCase converts camelCase keys into dash-case property names:
// "lineHeight" becomes "line-height".
func DashCase(s string) string {
	return strcase.ToKebab(s)
}

// Prefix builds a prefixed property name such as "margin-top" from "top".
// Keys listed in ignored are only dash-cased. An empty prefix returns the
// dash-cased key.
func Prefix(key, prefix string, ignored ...string) string {
	if prefix == "" {
		return DashCase(key)
	}
	for _, ig := range ignored {
		if ig == key {
			return DashCase(key)
		}
	}
	return prefix + "-" + DashCase(key)
}

// Unit appends unit to a unitless number. Every other value, including
// variable references, is returned unchanged.
func Unit(v ast.Value, unit string) ast.Value {
	if v.Kind != ast.KindNumber {
		return v
	}
	return ast.Dim(v.Num, unit)
}
