// Package resolve expands mixin calls in a parsed style sheet.
//
// The walk is depth-first and pre-order. Each call is looked up in the
// catalog; unknown names are dropped with a warning, known ones are replaced
// in place by their expansion. Expansions are walked again, so a mixin may
// return rules that contain further calls.
package resolve

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yacobolo/cssmix/internal/ast"
	"github.com/yacobolo/cssmix/internal/mixins"
)

// DefaultMaxDepth bounds nested expansions.
const DefaultMaxDepth = 64

// ErrTooDeep is wrapped by the MixinError returned when expansions nest
// deeper than the configured limit.
var ErrTooDeep = errors.New("mixin expansion too deep")

// Warning is a non-fatal problem found while resolving.
type Warning struct {
	Message string
	Node    ast.Node
}

func (w Warning) String() string {
	if w.Node != nil && w.Node.Position().IsValid() {
		return w.Node.Position().String() + ": " + w.Message
	}
	return w.Message
}

// MixinError reports a mixin that failed or panicked. It aborts the
// document being resolved.
type MixinError struct {
	Name string
	Pos  ast.Pos
	Err  error
}

func (e *MixinError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: mixin %s: %v", e.Pos, e.Name, e.Err)
	}
	return fmt.Sprintf("mixin %s: %v", e.Name, e.Err)
}

func (e *MixinError) Unwrap() error {
	return e.Err
}

// Option configures Resolve.
type Option func(*resolver)

// WithLogger sets the logger for expansion events.
func WithLogger(log *zap.Logger) Option {
	return func(r *resolver) {
		if log != nil {
			r.log = log.Named("resolve")
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(r *resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

type resolver struct {
	catalog  *mixins.Catalog
	log      *zap.Logger
	maxDepth int
	warnings []Warning
}

// Resolve returns a new style sheet with every mixin call expanded. The
// input is not modified. Warnings are returned in document order.
func Resolve(sheet *ast.Stylesheet, catalog *mixins.Catalog, opts ...Option) (*ast.Stylesheet, []Warning, error) {
	r := &resolver{
		catalog:  catalog,
		log:      zap.NewNop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.catalog == nil {
		r.catalog = mixins.New(nil)
	}

	out := &ast.Stylesheet{Rules: make([]*ast.Rule, 0, len(sheet.Rules))}
	for _, rule := range sheet.Rules {
		resolved, err := r.rule(rule, 0)
		if err != nil {
			return nil, r.warnings, err
		}
		out.Rules = append(out.Rules, resolved)
	}

	return out, r.warnings, nil
}

func (r *resolver) rule(rule *ast.Rule, depth int) (*ast.Rule, error) {
	children, err := r.walk(rule.Children, depth)
	if err != nil {
		return nil, err
	}
	return &ast.Rule{Selector: rule.Selector, Children: children, Pos: rule.Pos}, nil
}

func (r *resolver) walk(nodes []ast.Node, depth int) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(nodes))
	for _, node := range nodes {
		switch n := node.(type) {
		case nil:
			continue
		case *ast.Declaration:
			out = append(out, n)
		case *ast.Rule:
			resolved, err := r.rule(n, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, resolved)
		case *ast.MixinCall:
			expanded, err := r.call(n, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		default:
			return nil, fmt.Errorf("unexpected node %T", node)
		}
	}
	return out, nil
}

func (r *resolver) call(call *ast.MixinCall, depth int) ([]ast.Node, error) {
	fn, ok := r.catalog.Resolve(call.Name)
	if !ok {
		r.log.Warn("unknown mixin",
			zap.String("name", call.Name),
			zap.Stringer("pos", call.Pos))
		r.warnings = append(r.warnings, Warning{
			Message: "unknown mixin: " + call.Name,
			Node:    call,
		})
		return nil, nil
	}

	if depth >= r.maxDepth {
		return nil, &MixinError{Name: call.Name, Pos: call.Pos, Err: ErrTooDeep}
	}

	nodes, err := r.invoke(fn, call)
	if err != nil {
		return nil, &MixinError{Name: call.Name, Pos: call.Pos, Err: err}
	}

	r.log.Debug("expanded mixin",
		zap.String("name", call.Name),
		zap.Stringer("pos", call.Pos),
		zap.Int("nodes", len(nodes)),
		zap.Int("depth", depth))

	expanded, err := r.walk(nodes, depth+1)
	if err != nil {
		var me *MixinError
		if errors.As(err, &me) {
			return nil, err
		}
		return nil, &MixinError{Name: call.Name, Pos: call.Pos, Err: err}
	}
	return expanded, nil
}

// invoke runs a mixin, turning a panic into an error.
func (r *resolver) invoke(fn mixins.Func, call *ast.MixinCall) (nodes []ast.Node, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	args := call.Args
	if args == nil {
		args = ast.Positional{}
	}
	return fn(r.catalog, args)
}
