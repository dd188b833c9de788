package value

import (
	"fmt"
	"slices"

	"github.com/KimNorgaard/go-cfgconv/internal/lexer"
	"github.com/KimNorgaard/go-cfgconv/internal/token"
)

// SyntaxError represents a single error that occurred while parsing a value
// literal. It includes the position of the error.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("value: syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// SyntaxErrors is a slice of SyntaxError that implements the error interface.
// This allows returning all syntax errors found during parsing at once.
type SyntaxErrors []SyntaxError

func (s SyntaxErrors) Error() string {
	if len(s) == 0 {
		return ""
	}
	// The collection reports its first error; callers that want every
	// position range over the slice.
	if len(s) == 1 {
		return s[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", s[0].Error(), len(s)-1)
}

// Parse parses a single value in literal syntax:
//
//	true, false                booleans
//	42, -3.50, 1e9             decimal numbers
//	"text", """multi-line"""   strings with JSON escapes
//	[1, "two", [true]]         lists, separated by commas or newlines
//
// A '#' starts a comment that runs to the end of the line. If the input
// contains syntax errors, Parse returns a SyntaxErrors value with every
// error found.
//
// Lists may nest up to 1000 levels deep unless the MaxDepth option says
// otherwise.
func Parse(src string, opts ...Option) (Value, error) {
	o := options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	p := newParser(src, o)
	v := p.parseDocument()
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return v, nil
}

// MustParse is like Parse but panics on a syntax error. It simplifies the
// construction of fixtures.
func MustParse(src string, opts ...Option) Value {
	v, err := Parse(src, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

type prefixParseFn func() Value

type parser struct {
	l      *lexer.Lexer
	errors SyntaxErrors

	maxDepth int
	depth    int
	halted   bool // set once parsing gave up on the rest of the input

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
}

func newParser(src string, o options) *parser {
	p := &parser{l: lexer.New(src), maxDepth: o.maxDepth}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.NUMBER:  p.parseNumber,
		token.STRING:  p.parseText,
		token.TRUE:    p.parseBool,
		token.FALSE:   p.parseBool,
		token.LBRACK:  p.parseList,
		token.ILLEGAL: p.parseIllegal,
	}

	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *parser) parseDocument() Value {
	p.skip(token.NEWLINE)
	if p.curTokenIs(token.EOF) {
		p.errorf(p.curToken, "empty input, expected a value")
		return nil
	}

	v := p.parseValue()

	p.skip(token.NEWLINE)
	if !p.curTokenIs(token.EOF) {
		p.errorf(p.curToken, "unexpected token after value: %s (%q)", p.curToken.Type, p.curToken.Literal)
	}
	return v
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	for p.curTokenIs(token.COMMENT) {
		p.nextToken()
	}
}

// The contract for all parse functions is that they are entered with
// p.curToken being the first token of the construct, and they must return
// with p.curToken pointing to the token after the construct.

func (p *parser) parseValue() Value {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "unexpected %s (%q), expected a value", p.curToken.Type, p.curToken.Literal)
		p.nextToken()
		return nil
	}
	return prefix()
}

func (p *parser) parseNumber() Value {
	tok := p.curToken
	p.nextToken()
	n, err := ParseNumber(tok.Literal)
	if err != nil {
		p.errorf(tok, "could not parse %q as number", tok.Literal)
		return nil
	}
	return n
}

func (p *parser) parseText() Value {
	v := Text(p.curToken.Literal)
	p.nextToken()
	return v
}

func (p *parser) parseBool() Value {
	v := Bool(p.curTokenIs(token.TRUE))
	p.nextToken()
	return v
}

func (p *parser) parseIllegal() Value {
	p.errorf(p.curToken, "illegal token encountered: %s", p.curToken.Literal)
	p.nextToken()
	return nil
}

func (p *parser) parseList() Value {
	open := p.curToken
	if p.depth >= p.maxDepth {
		p.errorf(open, "maximum nesting depth of %d exceeded", p.maxDepth)
		p.halt()
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()
	p.nextToken() // Consume '['

	list := List{}
	p.skip(token.NEWLINE, token.COMMA)
	for !p.curTokenIs(token.RBRACK) && !p.curTokenIs(token.EOF) {
		if el := p.parseValue(); el != nil {
			list = append(list, el)
		}
		if !p.curTokenIs(token.COMMA) && !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.RBRACK) && !p.curTokenIs(token.EOF) {
			p.errorf(p.curToken, "expected ',' or ']' after list element, got %s", p.curToken.Type)
			p.nextToken()
		}
		p.skip(token.NEWLINE, token.COMMA)
	}

	if !p.curTokenIs(token.RBRACK) {
		if !p.halted {
			p.errorf(open, "unterminated list, expected ']' got %s", p.curToken.Type)
		}
		return nil
	}
	p.nextToken() // Consume ']'
	return list
}

// halt skips the rest of the input.
func (p *parser) halt() {
	for !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
	p.halted = true
}

func (p *parser) skip(types ...token.Type) {
	for slices.Contains(types, p.curToken.Type) {
		p.nextToken()
	}
}

func (p *parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	})
}
