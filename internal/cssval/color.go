package cssval

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"github.com/yacobolo/cssmix/internal/ast"
)

var colorFunctions = []string{"rgb(", "rgba(", "hsl(", "hsla(", "hwb("}

// IsColor reports whether s is a recognized CSS color: a hex value, an
// rgb/rgba/hsl/hsla/hwb function or a named color.
func IsColor(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return false
	}

	switch {
	case strings.HasPrefix(s, "#"):
	case hasColorFunction(s):
	case isNamedCandidate(s):
	default:
		return false
	}

	_, err := csscolorparser.Parse(s)
	return err == nil
}

// IsColorValue is IsColor for a parsed value. Variables are never colors.
func IsColorValue(v ast.Value) bool {
	if v.Kind != ast.KindWord {
		return false
	}
	return IsColor(v.Raw)
}

func hasColorFunction(s string) bool {
	for _, fn := range colorFunctions {
		if strings.HasPrefix(s, fn) {
			return true
		}
	}
	return false
}

// isNamedCandidate filters words before asking the parser, which would
// otherwise accept bare hex digits such as "fade" or "100".
func isNamedCandidate(s string) bool {
	hexOnly := true
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
		if r > 'f' {
			hexOnly = false
		}
	}
	return !hexOnly
}

// HexToRgb converts a color into rgb() notation. Three digit hex values are
// expanded first: "#fff" becomes "rgb(255, 255, 255)".
func HexToRgb(color string) (string, error) {
	r, g, b, err := channels(color)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), nil
}

// HexToRgba converts a color into rgba() notation with the given opacity,
// which is normalized with CalcOpacity first.
func HexToRgba(color string, opacity float64) (string, error) {
	r, g, b, err := channels(color)
	if err != nil {
		return "", err
	}
	alpha := CalcOpacity(ast.Num(opacity))
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, alpha.String()), nil
}

func channels(color string) (int, int, int, error) {
	c, err := csscolorparser.Parse(strings.TrimSpace(color))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", color, err)
	}
	return to255(c.R), to255(c.G), to255(c.B), nil
}

func to255(f float64) int {
	return int(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

// Lighten returns color with its HSL lightness raised by percent points.
func Lighten(color string, percent float64) (string, error) {
	return shade(color, percent)
}

// Darken returns color with its HSL lightness lowered by percent points.
func Darken(color string, percent float64) (string, error) {
	return shade(color, -percent)
}

func shade(color string, percent float64) (string, error) {
	c, err := csscolorparser.Parse(strings.TrimSpace(color))
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", color, err)
	}

	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	l = math.Max(0, math.Min(1, l+percent/100))

	return colorful.Hsl(h, s, l).Clamped().Hex(), nil
}
