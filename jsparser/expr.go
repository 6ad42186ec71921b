package jsparser

import (
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/jslexer"
)

func (p *Parser) parseExpression(precedence int) jsast.Expr {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf("no prefix parse function for %v found", p.curToken.Type)
		return nil
	}

	left := prefix()

	for !p.peekTokenIs(jslexer.EOF) && !p.peekTokenIs(jslexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}

		p.nextToken()

		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifierExpr() jsast.Expr {
	if p.curTokenIs(jslexer.TYPEOF) {
		// `typeof x` in value position (not a type position) just yields
		// x's value the way any other unary-ish operator would; resolution
		// still only cares about x.
		p.nextToken()
	}

	return &jsast.Ident{Name: p.curToken.Literal, Loc: p.rangeFrom(p.pos())}
}

func (p *Parser) parseLiteral() jsast.Expr {
	return &jsast.Literal{Raw: p.curToken.Literal, Loc: p.rangeFrom(p.pos())}
}

func (p *Parser) parseUnaryExpr() jsast.Expr {
	start := p.pos()
	op := p.curToken.Literal

	p.nextToken()

	operand := p.parseExpression(PREFIX)

	return &jsast.UnaryExpr{Op: op, Operand: operand, Loc: p.rangeFrom(start)}
}

func (p *Parser) parseBinaryExpr(left jsast.Expr) jsast.Expr {
	start := p.pos()
	op := p.curToken.Literal
	prec := p.curPrecedence()

	p.nextToken()

	right := p.parseExpression(prec)

	return &jsast.BinaryExpr{Op: op, Left: left, Right: right, Loc: p.rangeFrom(start)}
}

func (p *Parser) parseAsExpr(left jsast.Expr) jsast.Expr {
	start := p.pos()

	p.nextToken()

	t := p.parseTypeExpr()

	return &jsast.AsExpr{X: left, Type: t, Loc: p.rangeFrom(start)}
}

func (p *Parser) parseCallExpr(callee jsast.Expr) jsast.Expr {
	start := p.pos()

	call := &jsast.CallExpr{Callee: callee}

	if p.peekTokenIs(jslexer.RPAREN) {
		p.nextToken()
		call.Loc = p.rangeFrom(start)

		return call
	}

	for {
		p.nextToken()
		call.Args = append(call.Args, p.parseExpression(LOWEST))

		if !p.peekTokenIs(jslexer.COMMA) {
			break
		}

		p.nextToken()
	}

	p.expectPeek(jslexer.RPAREN)
	call.Loc = p.rangeFrom(start)

	return call
}

func (p *Parser) parseMemberExpr(object jsast.Expr) jsast.Expr {
	start := p.pos()

	if !p.expectPeek(jslexer.IDENT) {
		return object
	}

	return &jsast.MemberExpr{Object: object, Property: p.curToken.Literal, Loc: p.rangeFrom(start)}
}

func (p *Parser) parseNewExpr() jsast.Expr {
	start := p.pos()

	p.nextToken()

	callee := p.parseTypeExpr()

	ne := &jsast.NewExpr{Callee: callee}

	if p.peekTokenIs(jslexer.LPAREN) {
		p.nextToken()

		if p.peekTokenIs(jslexer.RPAREN) {
			p.nextToken()
		} else {
			for {
				p.nextToken()
				ne.Args = append(ne.Args, p.parseExpression(LOWEST))

				if !p.peekTokenIs(jslexer.COMMA) {
					break
				}

				p.nextToken()
			}

			p.expectPeek(jslexer.RPAREN)
		}
	}

	ne.Loc = p.rangeFrom(start)

	return ne
}

// parseParenOrArrow disambiguates `(expr)` from `(params) => body`. Both
// start identically, so it checks arrowAhead first, which scans the token
// stream from a saved lexer/parser snapshot to see whether the matching
// `)` is followed by `=>` (directly, or after a `: ReturnType`), then
// restores the snapshot before the real parse.
func (p *Parser) parseParenOrArrow() jsast.Expr {
	if p.arrowAhead() {
		return p.parseArrowFromParams()
	}

	start := p.pos()

	p.nextToken()

	x := p.parseExpression(LOWEST)

	p.expectPeek(jslexer.RPAREN)
	_ = p.rangeFrom(start)

	return x
}

// arrowAhead scans forward from curToken (an LPAREN) to the matching RPAREN
// and checks what follows it, then rewinds the lexer and token buffer back
// to curToken so the real parse (arrow or grouped expression) starts clean.
// Struct-copying *p.l works across the package boundary: a whole-value
// assignment doesn't need to name jslexer.Lexer's unexported fields.
func (p *Parser) arrowAhead() bool {
	savedLexer := *p.l
	savedCur, savedPeek := p.curToken, p.peekToken

	restore := func() {
		*p.l = savedLexer
		p.curToken, p.peekToken = savedCur, savedPeek
	}

	if p.peekTokenIs(jslexer.RPAREN) {
		p.nextToken() // now on RPAREN
		arrow := p.peekTokenIs(jslexer.ARROW)
		restore()

		return arrow
	}

	depth := 1
	p.nextToken() // move past the opening '('

	for depth > 0 {
		if p.curTokenIs(jslexer.EOF) {
			restore()
			return false
		}

		switch p.curToken.Type {
		case jslexer.LPAREN:
			depth++
		case jslexer.RPAREN:
			depth--
		}

		if depth == 0 {
			break
		}

		p.nextToken()
	}

	// curToken is the matching ')'.
	if p.peekTokenIs(jslexer.ARROW) {
		restore()
		return true
	}

	if !p.peekTokenIs(jslexer.COLON) {
		restore()
		return false
	}

	p.nextToken() // ':'
	p.nextToken() // first token of the return type

	angle, paren, bracket := 0, 0, 0

	for {
		switch p.curToken.Type {
		case jslexer.EOF:
			restore()
			return false
		case jslexer.LT:
			angle++
		case jslexer.GT:
			if angle > 0 {
				angle--
			}
		case jslexer.LPAREN:
			paren++
		case jslexer.RPAREN:
			if paren > 0 {
				paren--
			} else {
				restore()
				return false
			}
		case jslexer.LBRACKET:
			bracket++
		case jslexer.RBRACKET:
			if bracket > 0 {
				bracket--
			}
		case jslexer.ARROW:
			if angle == 0 && paren == 0 && bracket == 0 {
				restore()
				return true
			}
		case jslexer.SEMICOLON, jslexer.COMMA, jslexer.LBRACE:
			if angle == 0 && paren == 0 && bracket == 0 {
				restore()
				return false
			}
		}

		p.nextToken()
	}
}

func (p *Parser) parseArrowFromParams() jsast.Expr {
	start := p.pos()

	params := p.parseParams()

	// Generic arrow functions (`<T>(x: T) => x`) aren't parsed here: `<`
	// immediately after `=>`'s parameter list is ambiguous with a
	// comparison in this grammar's one-token lookahead, and the form is
	// rare outside .tsx files, which are out of scope.
	var typeParams []*jsast.TypeParam

	var ret jsast.TypeExpr
	if p.peekTokenIs(jslexer.COLON) {
		p.nextToken()
		p.nextToken()
		ret = p.parseTypeExpr()
	}

	if !p.expectPeek(jslexer.ARROW) {
		return nil
	}

	p.nextToken()

	fn := &jsast.ArrowFuncExpr{TypeParams: typeParams, Params: params, ReturnType: ret}

	if p.curTokenIs(jslexer.LBRACE) {
		fn.Body = p.parseBlockStmt()
	} else {
		// Expression-bodied arrow: wrap as an implicit return so the
		// resolver's single analyzeScopeBody path still applies.
		exprStart := p.pos()
		val := p.parseExpression(LOWEST)
		fn.Body = &jsast.BlockStmt{
			Stmts: []jsast.Stmt{&jsast.ReturnStmt{Value: val, Loc: p.rangeFrom(exprStart)}},
			Loc:   p.rangeFrom(exprStart),
		}
	}

	fn.Loc = p.rangeFrom(start)

	return fn
}

func (p *Parser) parseFuncExpr() jsast.Expr {
	start := p.pos()

	if p.curTokenIs(jslexer.ASYNC) {
		p.nextToken()
	}

	if !p.curTokenIs(jslexer.FUNCTION) {
		p.errorf("expected 'function', got %v", p.curToken.Type)
		return nil
	}

	fn := &jsast.FuncExpr{}

	if p.peekTokenIs(jslexer.IDENT) {
		p.nextToken()
		fn.Name = p.parseIdent()
	}

	fn.TypeParams = p.parseTypeParams()
	fn.Params = p.parseParams()

	if p.peekTokenIs(jslexer.COLON) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseTypeExpr()
	}

	if !p.expectPeek(jslexer.LBRACE) {
		return fn
	}

	fn.Body = p.parseBlockStmt()
	fn.Loc = p.rangeFrom(start)

	return fn
}
