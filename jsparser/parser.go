// Package jsparser implements a recursive-descent/Pratt parser over
// jslexer's token stream, producing the jsast.File shape the analyzer
// consumes. It covers the declaration, import/export, and type-annotation
// subset the module analyzer resolves; it is deliberately not a complete
// ECMAScript grammar (arbitrary destructuring patterns, JSX, decorators and
// most statement forms below function-body granularity are out of scope).
package jsparser

import (
	"fmt"

	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/jslexer"
)

// Precedence levels for the expression Pratt parser.
const (
	_ int = iota
	LOWEST
	NULLISHOR
	OR
	AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	AS     // `expr as Type`
	PREFIX // unary ! -
	CALL   // f(), a.b
)

var precedences = map[jslexer.TokenType]int{
	jslexer.NULLISH:   NULLISHOR,
	jslexer.OR:        OR,
	jslexer.AND:       AND,
	jslexer.EQEQ:      EQUALS,
	jslexer.NEQEQ:     EQUALS,
	jslexer.EQ:        EQUALS,
	jslexer.NEQ:       EQUALS,
	jslexer.LT:        LESSGREATER,
	jslexer.GT:        LESSGREATER,
	jslexer.LTE:       LESSGREATER,
	jslexer.GTE:       LESSGREATER,
	jslexer.PLUS:      SUM,
	jslexer.MINUS:     SUM,
	jslexer.STAR:      PRODUCT,
	jslexer.SLASH:     PRODUCT,
	jslexer.PERCENT:   PRODUCT,
	jslexer.AS:        AS,
	jslexer.LPAREN:    CALL,
	jslexer.DOT:       CALL,
}

type (
	prefixParseFn func() jsast.Expr
	infixParseFn  func(jsast.Expr) jsast.Expr
)

// Parser turns one file's token stream into a jsast.File.
type Parser struct {
	l      *jslexer.Lexer
	path   string
	errors []string

	curToken  jslexer.Token
	peekToken jslexer.Token

	prefixParseFns map[jslexer.TokenType]prefixParseFn
	infixParseFns  map[jslexer.TokenType]infixParseFn
}

// New creates a Parser reading from l. path is stamped onto the resulting
// jsast.File and used in error messages.
func New(l *jslexer.Lexer, path string) *Parser {
	p := &Parser{l: l, path: path}

	p.prefixParseFns = map[jslexer.TokenType]prefixParseFn{
		jslexer.IDENT:    p.parseIdentifierExpr,
		jslexer.NUMBER:   p.parseLiteral,
		jslexer.STRING:   p.parseLiteral,
		jslexer.TEMPLATE: p.parseLiteral,
		jslexer.MINUS:    p.parseUnaryExpr,
		jslexer.BANG:     p.parseUnaryExpr,
		jslexer.LPAREN:   p.parseParenOrArrow,
		jslexer.NEW:      p.parseNewExpr,
		jslexer.FUNCTION: p.parseFuncExpr,
		jslexer.ASYNC:    p.parseFuncExpr,
		jslexer.THIS:     p.parseIdentifierExpr,
		jslexer.TYPEOF:   p.parseIdentifierExpr,
	}

	p.infixParseFns = map[jslexer.TokenType]infixParseFn{
		jslexer.PLUS:    p.parseBinaryExpr,
		jslexer.MINUS:   p.parseBinaryExpr,
		jslexer.STAR:    p.parseBinaryExpr,
		jslexer.SLASH:   p.parseBinaryExpr,
		jslexer.PERCENT: p.parseBinaryExpr,
		jslexer.EQ:      p.parseBinaryExpr,
		jslexer.NEQ:     p.parseBinaryExpr,
		jslexer.EQEQ:    p.parseBinaryExpr,
		jslexer.NEQEQ:   p.parseBinaryExpr,
		jslexer.LT:      p.parseBinaryExpr,
		jslexer.GT:      p.parseBinaryExpr,
		jslexer.LTE:     p.parseBinaryExpr,
		jslexer.GTE:     p.parseBinaryExpr,
		jslexer.AND:     p.parseBinaryExpr,
		jslexer.OR:      p.parseBinaryExpr,
		jslexer.NULLISH: p.parseBinaryExpr,
		jslexer.LPAREN:  p.parseCallExpr,
		jslexer.DOT:     p.parseMemberExpr,
		jslexer.AS:      p.parseAsExpr,
	}

	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns every parse error accumulated so far. A caller building a
// loader worker surfaces these as diagnostics. Parsing does not stop at
// the first error: it carries on from whatever token the failed construct
// stopped at, so one mistake can produce several follow-on errors.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()

	for p.curToken.Type == jslexer.COMMENT {
		p.curToken = p.peekToken
		p.peekToken = p.l.NextToken()
	}
}

func (p *Parser) curTokenIs(t jslexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t jslexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t jslexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}

	p.peekError(t)

	return false
}

func (p *Parser) peekError(t jslexer.TokenType) {
	p.errors = append(p.errors, fmt.Sprintf("%s:%d: expected next token to be %v, got %v instead",
		p.path, p.peekToken.Line, t, p.peekToken.Type))
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf("%s:%d: ", p.path, p.curToken.Line) + fmt.Sprintf(format, args...)
	p.errors = append(p.errors, msg)
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}

	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}

	return LOWEST
}

func (p *Parser) pos() jsast.Position {
	return jsast.Position{Line: p.curToken.Line, Column: p.curToken.Column, Offset: p.curToken.Offset}
}

func (p *Parser) endPos() jsast.Position {
	return jsast.Position{
		Line:   p.curToken.Line,
		Column: p.curToken.Column + len(p.curToken.Literal),
		Offset: p.curToken.Offset + len(p.curToken.Literal),
	}
}

func (p *Parser) rangeFrom(start jsast.Position) jsast.Range {
	return jsast.Range{Start: start, End: p.endPos()}
}

// ParseFile parses an entire module's token stream.
func ParseFile(src, path string) (*jsast.File, []string) {
	p := New(jslexer.New(src), path)

	file := &jsast.File{Path: path}

	for !p.curTokenIs(jslexer.EOF) {
		st := p.parseStatement()
		if st != nil {
			file.Stmts = append(file.Stmts, st)
		}

		p.nextToken()
	}

	return file, p.errors
}

func (p *Parser) skipSemicolon() {
	if p.peekTokenIs(jslexer.SEMICOLON) {
		p.nextToken()
	}
}
