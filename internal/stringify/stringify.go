// Package stringify renders a resolved style sheet as CSS text.
package stringify

import (
	"io"
	"strings"

	"github.com/yacobolo/cssmix/internal/ast"
)

const (
	DefaultUnit           = "rem"
	DefaultLineHeightUnit = "em"
)

// unitless lists properties whose numbers never take a unit.
var unitless = map[string]bool{
	"opacity":        true,
	"z-index":        true,
	"font-weight":    true,
	"flex":           true,
	"flex-grow":      true,
	"flex-shrink":    true,
	"order":          true,
	"zoom":           true,
	"orphans":        true,
	"widows":         true,
	"fill-opacity":   true,
	"stroke-opacity": true,
}

// Options controls unit formatting.
type Options struct {
	DefaultUnit    string // appended to unitless numbers, default "rem"
	LineHeightUnit string // used for line-height instead, default "em"
}

func (o Options) withDefaults() Options {
	if o.DefaultUnit == "" {
		o.DefaultUnit = DefaultUnit
	}
	if o.LineHeightUnit == "" {
		o.LineHeightUnit = DefaultLineHeightUnit
	}
	return o
}

// String renders sheet. Top-level rules are separated by a blank line and
// the output has no trailing newline.
func String(sheet *ast.Stylesheet, opts Options) string {
	var sb strings.Builder
	p := printer{sb: &sb, opts: opts.withDefaults()}
	for i, rule := range sheet.Rules {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		p.rule(rule, "", 0)
	}
	return sb.String()
}

// Write renders sheet to w.
func Write(w io.Writer, sheet *ast.Stylesheet, opts Options) error {
	_, err := io.WriteString(w, String(sheet, opts))
	return err
}

type printer struct {
	sb   *strings.Builder
	opts Options
}

func (p *printer) indent(depth int) {
	for i := 0; i < depth; i++ {
		p.sb.WriteByte('\t')
	}
}

// rule writes r. parent is the nearest enclosing literal selector.
func (p *printer) rule(r *ast.Rule, parent string, depth int) {
	selector := r.Selector
	context := parent
	if !r.IsAtRule() {
		selector = Substitute(r.Selector, parent)
		context = selector
	}

	p.indent(depth)
	p.sb.WriteString(selector)
	p.sb.WriteString(" {\n")

	for _, child := range r.Children {
		switch c := child.(type) {
		case *ast.Declaration:
			p.indent(depth + 1)
			p.sb.WriteString(c.Property)
			p.sb.WriteString(": ")
			p.sb.WriteString(p.value(c.Property, c.Value))
			p.sb.WriteString(";\n")
		case *ast.Rule:
			p.rule(c, context, depth+1)
			p.sb.WriteByte('\n')
		}
	}

	p.indent(depth)
	p.sb.WriteByte('}')
}

// value formats v for property, adding the configured unit to unitless
// numbers.
func (p *printer) value(property string, v ast.Value) string {
	switch v.Kind {
	case ast.KindNumber:
		if unitless[property] {
			return v.String()
		}
		unit := p.opts.DefaultUnit
		if property == "line-height" {
			unit = p.opts.LineHeightUnit
		}
		return ast.FormatNumber(v.Num) + unit
	case ast.KindList:
		parts := make([]string, len(v.Parts))
		for i, part := range v.Parts {
			parts[i] = p.value(property, part)
		}
		return strings.Join(parts, " ")
	default:
		return v.String()
	}
}

// Substitute replaces "&" in selector with parent. Comma separated lists
// on either side expand to every combination. A selector without "&", or
// one with no parent, is returned unchanged.
func Substitute(selector, parent string) string {
	if parent == "" || !strings.Contains(selector, "&") {
		return selector
	}

	parents := splitList(parent)
	var out []string
	for _, s := range splitList(selector) {
		if !strings.Contains(s, "&") {
			out = append(out, s)
			continue
		}
		for _, ps := range parents {
			out = append(out, strings.ReplaceAll(s, "&", ps))
		}
	}
	return strings.Join(out, ", ")
}

// splitList splits a selector list at top-level commas.
func splitList(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
