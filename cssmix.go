// Package cssmix compiles style sheets written in a CSS superset with
// parametrized mixin calls.
//
// A source document contains ordinary declarations and nested rules plus
// mixin calls that expand at compile time:
//
//	.card {
//		block(20, 10);
//		border(vertical, #ccc);
//		&:hover { opacity(80%); }
//	}
//
// # Compiling
//
// Compile one document:
//
//	result, err := cssmix.Compile(src, cssmix.Options{})
//	fmt.Println(result.CSS)
//	for _, w := range result.Warnings {
//		log.Println(w)
//	}
//
// Compilation runs in three stages: the parser builds a tree of
// declarations, rules and pending calls; the resolver replaces every call
// with its expansion from the mixin catalog; the stringifier renders the
// result, adding the default unit to unitless numbers.
//
// # Custom mixins
//
// Options.Mixins overlays the built-in library. A custom mixin receives its
// arguments and the catalog it was called through, so it can compose
// other mixins:
//
//	opts := cssmix.Options{
//		Mixins: map[string]cssmix.Mixin{
//			"card": func(c *cssmix.Catalog, args cssmix.Args) ([]cssmix.Node, error) {
//				return c.Call("block", args)
//			},
//		},
//	}
//
// # Building a tree
//
// Build compiles every matching file under a directory:
//
//	result, err := cssmix.Build(cssmix.Config{
//		SourceDir: "styles",
//		OutputDir: "public/css",
//		Includes:  []string{"**/*.mcss"},
//	})
//
// # CLI Tool
//
// See cmd/cssmix for the command line interface (build, check, mixins).
package cssmix

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yacobolo/cssmix/internal/mixins"
	"github.com/yacobolo/cssmix/internal/parser"
	"github.com/yacobolo/cssmix/internal/resolve"
	"github.com/yacobolo/cssmix/internal/stringify"
)

// Units configures the units added to unitless numbers.
type Units struct {
	Default    string // "rem" when empty
	LineHeight string // "em" when empty
}

// Options configures a compilation.
type Options struct {
	Mixins    map[string]Mixin // overlaid on the built-ins
	Units     Units
	Variables *Variables  // design tokens, nil for the defaults
	Logger    *zap.Logger // nil disables logging
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Catalog builds the mixin catalog described by the options. The unit
// applied by mixins follows Units.Default unless Variables.Unit is set.
func (o Options) Catalog() *Catalog {
	vars := mixins.DefaultVariables()
	if o.Units.Default != "" {
		vars.Unit = o.Units.Default
	}
	if o.Variables != nil {
		vars = o.Variables.Merge(vars)
	}
	return mixins.New(o.Mixins, mixins.WithVariables(vars))
}

// Result is the output of Compile.
type Result struct {
	CSS      string
	Warnings []Warning
}

// Compile parses src, expands its mixin calls and renders the CSS.
//
// A syntax error is returned as a *ParseError and a failing mixin as a
// *MixinError; both abort the document. Unknown mixins are dropped and
// reported in Result.Warnings.
func Compile(src string, opts Options) (*Result, error) {
	return compile(src, opts.Catalog(), opts)
}

func compile(src string, catalog *Catalog, opts Options) (*Result, error) {
	log := opts.logger()

	sheet, err := parser.New(log).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	resolved, warnings, err := resolve.Resolve(sheet, catalog, resolve.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	css := stringify.String(resolved, stringify.Options{
		DefaultUnit:    opts.Units.Default,
		LineHeightUnit: opts.Units.LineHeight,
	})

	return &Result{CSS: css, Warnings: warnings}, nil
}
