// Package parser turns style sheet source into an ast.Stylesheet.
//
// Tokenizing is delegated to the tdewolff CSS lexer. On top of the tokens the
// parser recognizes three statements inside a block:
//
//	name(args);          mixin call
//	property: value;     declaration
//	selector { ... }     nested rule ("&" refers to the parent selector)
//
// A call whose arguments use `key: value` form becomes an ast.Keywords call;
// otherwise it is ast.Positional. The two forms cannot be mixed.
//
// Any syntax error aborts the whole document with an *Error.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"github.com/yacobolo/cssmix/internal/ast"
)

// Parser parses style sheets. It is stateless and safe for concurrent use.
type Parser struct {
	log *zap.Logger
}

// New creates a parser. A nil logger disables logging.
func New(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("parser")}
}

// Parse parses src with a parser that does not log.
func Parse(src string) (*ast.Stylesheet, error) {
	return New(nil).Parse(src)
}

// Parse parses a whole document.
func (p *Parser) Parse(src string) (*ast.Stylesheet, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	st := &state{
		src:   src,
		toks:  toks,
		lines: lineStarts(src),
	}

	sheet := &ast.Stylesheet{}
	for {
		st.skipSpace()
		if st.eof() {
			break
		}

		node, err := st.statement(nil)
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}

		rule, ok := node.(*ast.Rule)
		if !ok {
			return nil, st.errorAt(node.Position().Offset, "expected a rule, found a statement outside of any block")
		}
		sheet.Rules = append(sheet.Rules, rule)
	}

	p.log.Debug("Parsed stylesheet", zap.Int("bytes", len(src)), zap.Int("rules", len(sheet.Rules)))

	return sheet, nil
}

// token is a lexed token with its byte offset in the source.
type token struct {
	tt   css.TokenType
	text string
	off  int
}

func (t token) is(tt css.TokenType) bool {
	return t.tt == tt
}

// tokenize runs the lexer over the whole input, dropping comments.
func tokenize(src string) ([]token, error) {
	lexer := css.NewLexer(parse.NewInputString(src))

	var toks []token
	off := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, newError(src, off, "invalid input: %v", err)
			}
			break
		}

		text := string(data)
		switch tt {
		case css.CommentToken:
			// skip
		case css.BadStringToken:
			return nil, newError(src, off, "unterminated string %s", text)
		case css.BadURLToken:
			return nil, newError(src, off, "invalid url %s", text)
		default:
			toks = append(toks, token{tt: tt, text: text, off: off})
		}
		off += len(data)
	}

	return toks, nil
}

// state walks the token slice.
type state struct {
	src   string
	toks  []token
	i     int
	lines []int
}

func (s *state) eof() bool {
	return s.i >= len(s.toks)
}

func (s *state) peek() token {
	return s.toks[s.i]
}

func (s *state) skipSpace() {
	for !s.eof() && s.peek().is(css.WhitespaceToken) {
		s.i++
	}
}

// statement parses one statement. parent is nil at the top level.
// It returns a nil node for an empty statement (a lone ";").
func (s *state) statement(parent *ast.Rule) (ast.Node, error) {
	start := s.i
	depth := 0

	for ; !s.eof(); s.i++ {
		t := s.peek()
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
			continue
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
			if depth < 0 {
				return nil, s.errorAt(t.off, "unexpected %q", t.text)
			}
			continue
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken:
		default:
			continue
		}

		body := s.toks[start:s.i]
		if depth != 0 {
			return nil, s.unterminated(body)
		}

		switch t.tt {
		case css.LeftBraceToken:
			s.i++
			return s.rule(body, parent)
		case css.SemicolonToken:
			s.i++
			if len(body) == 0 {
				return nil, nil
			}
			return s.inline(body, parent, true)
		default:
			// "}" closes the enclosing block; leave it for rule().
			if parent == nil {
				return nil, s.errorAt(t.off, "unexpected \"}\"")
			}
			return s.inline(body, parent, false)
		}
	}

	body := trimSpace(s.toks[start:])
	if depth != 0 {
		return nil, s.unterminated(body)
	}
	if parent == nil {
		return nil, s.errorAt(body[0].off, "unexpected end of input after %q", rawText(body))
	}
	return s.inline(body, parent, false)
}

func (s *state) unterminated(body []token) error {
	body = trimSpace(body)
	if len(body) > 0 && body[0].is(css.FunctionToken) {
		return s.errorAt(body[0].off, "unterminated mixin call %s", strings.TrimSuffix(body[0].text, "("))
	}
	return s.errorAt(body[0].off, "unbalanced parentheses in %q", rawText(body))
}

// rule parses `selector { ... }`; the "{" is already consumed.
func (s *state) rule(selectorToks []token, parent *ast.Rule) (*ast.Rule, error) {
	selectorToks = trimSpace(selectorToks)
	if len(selectorToks) == 0 {
		return nil, s.errorAt(s.toks[s.i-1].off, "missing selector before \"{\"")
	}

	selector := rawText(selectorToks)
	if parent == nil && strings.Contains(selector, "&") {
		return nil, s.errorAt(selectorToks[0].off, "\"&\" in top-level selector %q has no parent", selector)
	}

	rule := &ast.Rule{
		Selector: selector,
		Pos:      s.pos(selectorToks[0].off),
	}

	for {
		s.skipSpace()
		if s.eof() {
			return nil, s.errorAt(selectorToks[0].off, "unterminated block for %q", selector)
		}
		if s.peek().is(css.RightBraceToken) {
			s.i++
			return rule, nil
		}

		child, err := s.statement(rule)
		if err != nil {
			return nil, err
		}
		if child != nil {
			rule.Children = append(rule.Children, child)
		}
	}
}

// inline parses a declaration or mixin call. terminated is false when the
// statement ended at "}" or end of input without a semicolon.
func (s *state) inline(body []token, parent *ast.Rule, terminated bool) (ast.Node, error) {
	body = trimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	first := body[0]
	if parent == nil {
		return nil, s.errorAt(first.off, "expected a rule, found %q outside of any block", rawText(body))
	}

	switch first.tt {
	case css.FunctionToken:
		if !terminated {
			return nil, s.errorAt(first.off, "expected \";\" after mixin call %s", strings.TrimSuffix(first.text, "("))
		}
		return s.call(body)
	case css.IdentToken, css.CustomPropertyNameToken:
		return s.declaration(body)
	default:
		return nil, s.errorAt(first.off, "invalid token %q", first.text)
	}
}

// declaration parses `property: value`.
func (s *state) declaration(body []token) (*ast.Declaration, error) {
	prop := body[0]
	rest := trimSpace(body[1:])
	if len(rest) == 0 || !rest[0].is(css.ColonToken) {
		return nil, s.errorAt(prop.off, "expected \":\" after %q", prop.text)
	}

	valueToks := trimSpace(rest[1:])
	if len(valueToks) == 0 {
		return nil, s.errorAt(prop.off, "missing value for %q", prop.text)
	}

	return &ast.Declaration{
		Property: prop.text,
		Value:    declarationValue(valueToks),
		Pos:      s.pos(prop.off),
	}, nil
}

// declarationValue keeps literal values unchanged, except that a lone
// unitless number or variable is typed so the stringifier can apply units.
func declarationValue(toks []token) ast.Value {
	if len(toks) == 1 && toks[0].is(css.NumberToken) {
		if v, ok := number(toks[0]); ok {
			return v
		}
	}
	if v, ok := variable(toks); ok {
		return v
	}
	return ast.Str(rawText(toks))
}

// call parses `name(args)`. The trailing ";" is already consumed.
func (s *state) call(body []token) (*ast.MixinCall, error) {
	head := body[0]
	name := strings.TrimSuffix(head.text, "(")

	closing := matchingParen(body)
	if closing < 0 {
		return nil, s.errorAt(head.off, "unterminated mixin call %s", name)
	}
	if extra := trimSpace(body[closing+1:]); len(extra) > 0 {
		return nil, s.errorAt(extra[0].off, "unexpected %q after mixin call %s", extra[0].text, name)
	}

	args, err := s.arguments(name, head, body[1:closing])
	if err != nil {
		return nil, err
	}

	return &ast.MixinCall{
		Name: name,
		Args: args,
		Pos:  s.pos(head.off),
	}, nil
}

// arguments splits the call body at top-level commas and decides between
// positional and keyword form.
func (s *state) arguments(name string, head token, toks []token) (ast.Args, error) {
	groups := splitTopLevel(toks, css.CommaToken)
	if len(groups) == 1 && len(trimSpace(groups[0])) == 0 {
		return ast.Positional{}, nil
	}

	var (
		positional ast.Positional
		keywords   ast.Keywords
	)
	for _, g := range groups {
		g = trimSpace(g)
		if len(g) == 0 {
			return nil, s.errorAt(head.off, "empty argument in mixin call %s", name)
		}

		key, valueToks, isKeyword := splitKeyword(g)
		if isKeyword {
			if len(valueToks) == 0 {
				return nil, s.errorAt(g[0].off, "missing value for keyword argument %q", key)
			}
			if _, dup := keywords.Get(key); dup {
				return nil, s.errorAt(g[0].off, "duplicate keyword argument %q", key)
			}
			keywords = append(keywords, ast.Keyword{Key: key, Value: argumentValue(valueToks)})
			continue
		}
		positional = append(positional, argumentValue(g))
	}

	switch {
	case len(keywords) > 0 && len(positional) > 0:
		return nil, s.errorAt(head.off, "mixin call %s mixes positional and keyword arguments", name)
	case len(keywords) > 0:
		return keywords, nil
	default:
		return positional, nil
	}
}

// splitKeyword recognizes `ident: value`.
func splitKeyword(toks []token) (string, []token, bool) {
	if !toks[0].is(css.IdentToken) {
		return "", nil, false
	}
	rest := trimSpace(toks[1:])
	if len(rest) == 0 || !rest[0].is(css.ColonToken) {
		return "", nil, false
	}
	return toks[0].text, trimSpace(rest[1:]), true
}

// argumentValue types a single argument. Whitespace separated parts become
// an ast.KindList value.
func argumentValue(toks []token) ast.Value {
	var parts []ast.Value
	for _, g := range splitTopLevel(toks, css.WhitespaceToken) {
		if len(g) == 0 {
			continue
		}
		parts = append(parts, atom(g))
	}
	return ast.List(parts...)
}

// atom types a run of tokens without top-level whitespace.
func atom(toks []token) ast.Value {
	if v, ok := variable(toks); ok {
		return v
	}
	if len(toks) > 1 {
		return ast.Str(rawText(toks))
	}

	t := toks[0]
	switch t.tt {
	case css.NumberToken:
		if v, ok := number(t); ok {
			return v
		}
	case css.DimensionToken, css.PercentageToken:
		if v, ok := dimension(t); ok {
			return v
		}
	case css.StringToken:
		return ast.Value{Kind: ast.KindString, Raw: t.text}
	}
	return ast.Str(t.text)
}

// variable recognizes `$name` and `@name` references.
func variable(toks []token) (ast.Value, bool) {
	switch {
	case len(toks) == 1 && toks[0].is(css.AtKeywordToken):
		return ast.Var(toks[0].text), true
	case len(toks) == 2 && toks[0].is(css.DelimToken) && toks[0].text == "$" && toks[1].is(css.IdentToken):
		return ast.Var("$" + toks[1].text), true
	}
	return ast.Value{}, false
}

func number(t token) (ast.Value, bool) {
	f, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return ast.Value{}, false
	}
	return ast.Value{Kind: ast.KindNumber, Num: f, Raw: t.text}, true
}

// dimension splits "10px" or "20%" into number and unit, keeping the raw text.
func dimension(t token) (ast.Value, bool) {
	end := 0
	for i, r := range t.text {
		if (r >= '0' && r <= '9') || r == '.' || ((r == '-' || r == '+') && i == 0) {
			end = i + 1
			continue
		}
		break
	}
	if end == 0 {
		return ast.Value{}, false
	}

	f, err := strconv.ParseFloat(t.text[:end], 64)
	if err != nil {
		return ast.Value{}, false
	}
	return ast.Value{Kind: ast.KindDimension, Num: f, Unit: t.text[end:], Raw: t.text}, true
}

// matchingParen returns the index of the ")" closing the function token at
// toks[0], or -1.
func matchingParen(toks []token) int {
	depth := 0
	for i, t := range toks {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits toks at separators outside of parentheses.
func splitTopLevel(toks []token, sep css.TokenType) [][]token {
	var (
		groups [][]token
		start  int
		depth  int
	)
	for i, t := range toks {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case sep:
			if depth == 0 {
				groups = append(groups, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(groups, toks[start:])
}

// trimSpace drops leading and trailing whitespace tokens.
func trimSpace(toks []token) []token {
	for len(toks) > 0 && toks[0].is(css.WhitespaceToken) {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].is(css.WhitespaceToken) {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// rawText joins token text, collapsing whitespace runs into one space.
func rawText(toks []token) string {
	var sb strings.Builder
	for _, t := range trimSpace(toks) {
		if t.is(css.WhitespaceToken) {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}

// Error is a syntax error with its source location.
type Error struct {
	Pos     ast.Pos
	Msg     string
	Context string // the offending source line with a position marker
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func newError(src string, off int, format string, a ...any) *Error {
	line, col, context := parse.Position(strings.NewReader(src), off)
	return &Error{
		Pos:     ast.Pos{Offset: off, Line: line, Column: col},
		Msg:     fmt.Sprintf(format, a...),
		Context: context,
	}
}

func (s *state) errorAt(off int, format string, a ...any) *Error {
	return newError(s.src, off, format, a...)
}
