package cssmix

import (
	"github.com/yacobolo/cssmix/internal/ast"
	"github.com/yacobolo/cssmix/internal/mixins"
	"github.com/yacobolo/cssmix/internal/parser"
	"github.com/yacobolo/cssmix/internal/resolve"
)

// Syntax tree types, for writing custom mixins.
type (
	Node        = ast.Node
	Declaration = ast.Declaration
	Rule        = ast.Rule
	MixinCall   = ast.MixinCall
	Value       = ast.Value
	Args        = ast.Args
	Positional  = ast.Positional
	Keywords    = ast.Keywords
	Keyword     = ast.Keyword
	Pos         = ast.Pos
)

// Mixin catalog types.
type (
	Mixin     = mixins.Func
	Catalog   = mixins.Catalog
	Variables = mixins.Variables
)

// Diagnostics.
type (
	Warning    = resolve.Warning
	ParseError = parser.Error
	MixinError = resolve.MixinError
)

// ErrUnknownMixin is returned by Catalog.Call for unregistered names.
var ErrUnknownMixin = mixins.ErrUnknownMixin

var (
	Decl             = ast.Decl
	NewRule          = ast.NewRule
	Str              = ast.Str
	Num              = ast.Num
	Dim              = ast.Dim
	DefaultVariables = mixins.DefaultVariables
)
