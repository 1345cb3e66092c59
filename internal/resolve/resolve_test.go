package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yacobolo/cssmix/internal/ast"
	"github.com/yacobolo/cssmix/internal/mixins"
	"github.com/yacobolo/cssmix/internal/parser"
)

func properties(nodes []ast.Node) []string {
	var out []string
	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.Declaration:
			out = append(out, n.Property)
		case *ast.Rule:
			out = append(out, n.Selector+"{}")
		case *ast.MixinCall:
			out = append(out, n.Name+"()")
		}
	}
	return out
}

func mustParse(t *testing.T, src string) *ast.Stylesheet {
	t.Helper()
	sheet, err := parser.Parse(src)
	require.NoError(t, err)
	return sheet
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
		warnings []string
	}{
		{
			name:     "declarations pass through",
			src:      `.a { color: red; }`,
			expected: []string{"color"},
		},
		{
			name:     "call is spliced in place",
			src:      `.a { color: red; margin(1, 2, 3, 4); z-index: 2; }`,
			expected: []string{"color", "margin-top", "margin-right", "margin-left", "margin-bottom", "z-index"},
		},
		{
			name:     "unknown mixin is dropped with a warning",
			src:      ".block {\n  customMixin(#fff);\n}",
			expected: nil,
			warnings: []string{"2:3: unknown mixin: customMixin"},
		},
		{
			name:     "warnings keep document order",
			src:      `.a { one(); bold(); two(); }`,
			expected: []string{"font-weight"},
			warnings: []string{"1:6: unknown mixin: one", "1:21: unknown mixin: two"},
		},
		{
			name:     "emitted rules are kept",
			src:      `.a { row(); }`,
			expected: []string{"margin-left", "max-width", "&:after{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, warnings, err := Resolve(mustParse(t, tt.src), mixins.New(nil))
			require.NoError(t, err)
			require.Len(t, out.Rules, 1)
			assert.Equal(t, tt.expected, properties(out.Rules[0].Children))

			var got []string
			for _, w := range warnings {
				got = append(got, w.String())
			}
			assert.Equal(t, tt.warnings, got)
		})
	}
}

func TestResolveDoesNotModifyInput(t *testing.T) {
	sheet := mustParse(t, `.a { bold(); .b { hide(); } }`)

	out, _, err := Resolve(sheet, mixins.New(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"bold()", ".b{}"}, properties(sheet.Rules[0].Children))
	assert.Equal(t, []string{"font-weight", ".b{}"}, properties(out.Rules[0].Children))

	nested := out.Rules[0].Children[1].(*ast.Rule)
	assert.Equal(t, []string{"display"}, properties(nested.Children))
}

func TestResolveRewalksExpansions(t *testing.T) {
	catalog := mixins.New(map[string]mixins.Func{
		"hover": func(_ *mixins.Catalog, args ast.Args) ([]ast.Node, error) {
			return []ast.Node{
				ast.NewRule("&:hover",
					&ast.MixinCall{Name: "bold", Args: ast.Positional{}},
					&ast.MixinCall{Name: "missing", Args: ast.Positional{}},
				),
			}, nil
		},
		"both": func(_ *mixins.Catalog, args ast.Args) ([]ast.Node, error) {
			return []ast.Node{
				&ast.MixinCall{Name: "italic", Args: ast.Positional{}},
				&ast.MixinCall{Name: "bold", Args: ast.Positional{}},
			}, nil
		},
	})

	out, warnings, err := Resolve(mustParse(t, `.a { hover(); both(); }`), catalog)
	require.NoError(t, err)

	children := out.Rules[0].Children
	assert.Equal(t, []string{"&:hover{}", "font-style", "font-weight"}, properties(children))
	assert.Equal(t, []string{"font-weight"}, properties(children[0].(*ast.Rule).Children))

	require.Len(t, warnings, 1)
	assert.Equal(t, "unknown mixin: missing", warnings[0].Message)
}

func TestResolveMixinErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		mixins map[string]mixins.Func
		src    string
		target error
		msg    string
	}{
		{
			name: "returned error",
			mixins: map[string]mixins.Func{
				"fail": func(*mixins.Catalog, ast.Args) ([]ast.Node, error) { return nil, boom },
			},
			src:    `.a { fail(); }`,
			target: boom,
			msg:    "1:6: mixin fail: boom",
		},
		{
			name: "panic is recovered",
			mixins: map[string]mixins.Func{
				"explode": func(*mixins.Catalog, ast.Args) ([]ast.Node, error) { panic("kaboom") },
			},
			src: `.a { explode(); }`,
			msg: "1:6: mixin explode: panic: kaboom",
		},
		{
			name: "runaway recursion",
			mixins: map[string]mixins.Func{
				"loop": func(*mixins.Catalog, ast.Args) ([]ast.Node, error) {
					return []ast.Node{&ast.MixinCall{Name: "loop"}}, nil
				},
			},
			src:    `.a { loop(); }`,
			target: ErrTooDeep,
			msg:    "mixin loop: mixin expansion too deep",
		},
		{
			name:   "builtin argument error",
			src:    `.a { display(); }`,
			msg:    "1:6: mixin display: display: missing value",
			mixins: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := Resolve(mustParse(t, tt.src), mixins.New(tt.mixins))
			require.Error(t, err)
			assert.Nil(t, out)

			var me *MixinError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.msg, err.Error())
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestResolveLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	_, _, err := Resolve(mustParse(t, `.a { bold(); nope(); }`), mixins.New(nil), WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("expanded mixin").Len())
	unknown := logs.FilterMessage("unknown mixin").All()
	require.Len(t, unknown, 1)
	assert.Equal(t, "resolve", unknown[0].LoggerName)
	assert.Equal(t, "nope", unknown[0].ContextMap()["name"])
}
