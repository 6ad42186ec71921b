package jsparser

import (
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/jslexer"
)

// parseTypeExpr parses one full type position: a union of one or more
// postfix (array) types, each built from a primary type. Precedence is
// fixed rather than table-driven since the type grammar's operator set
// (union, array, conditional) is small and doesn't benefit from Pratt
// climbing the way the expression grammar does.
func (p *Parser) parseTypeExpr() jsast.TypeExpr {
	first := p.parsePostfixType()

	if !p.peekTokenIs(jslexer.PIPE) {
		return p.maybeConditional(first)
	}

	u := &jsast.UnionTypeExpr{Members: []jsast.TypeExpr{first}}

	for p.peekTokenIs(jslexer.PIPE) {
		p.nextToken()
		p.nextToken()
		u.Members = append(u.Members, p.parsePostfixType())
	}

	return p.maybeConditional(u)
}

// maybeConditional wraps check in a ConditionalTypeExpr if the next token
// is `extends` (a conditional type's check clause), else returns check
// unchanged.
func (p *Parser) maybeConditional(check jsast.TypeExpr) jsast.TypeExpr {
	if !p.peekTokenIs(jslexer.EXTENDS) {
		return check
	}

	p.nextToken()
	p.nextToken()

	cond := &jsast.ConditionalTypeExpr{Check: check}

	if p.curTokenIs(jslexer.INFER) {
		p.nextToken()
		cond.InferVar = p.curToken.Literal
		cond.Extends = &jsast.TypeRef{Name: cond.InferVar, Loc: p.rangeFrom(p.pos())}
	} else {
		cond.Extends = p.parsePostfixType()
	}

	if !p.expectPeek(jslexer.QUESTION) {
		return cond
	}

	p.nextToken()
	cond.True = p.parseTypeExpr()

	if !p.expectPeek(jslexer.COLON) {
		return cond
	}

	p.nextToken()
	cond.False = p.parseTypeExpr()

	return cond
}

func (p *Parser) parsePostfixType() jsast.TypeExpr {
	start := p.pos()
	t := p.parsePrimaryType()

	for p.peekTokenIs(jslexer.LBRACKET) {
		p.nextToken()

		if !p.expectPeek(jslexer.RBRACKET) {
			return t
		}

		t = &jsast.ArrayTypeExpr{Elem: t, Loc: p.rangeFrom(start)}
	}

	return t
}

func (p *Parser) parsePrimaryType() jsast.TypeExpr {
	start := p.pos()

	switch p.curToken.Type {
	case jslexer.TYPEOF:
		p.nextToken()

		op := &jsast.TypeOfExpr{Operand: &jsast.Ident{Name: p.curToken.Literal, Loc: p.rangeFrom(p.pos())}}
		op.Loc = p.rangeFrom(start)

		return op
	case jslexer.KEYOF:
		p.nextToken()
		return p.parsePrimaryType()
	case jslexer.LPAREN:
		if p.looksLikeFuncType() {
			return p.parseFuncType()
		}

		p.nextToken()
		t := p.parseTypeExpr()
		p.expectPeek(jslexer.RPAREN)

		return t
	case jslexer.LBRACE:
		return p.parseMappedOrObjectType()
	default:
		ref := &jsast.TypeRef{Name: p.curToken.Literal}

		if p.peekTokenIs(jslexer.LT) {
			p.nextToken()

			for {
				p.nextToken()
				ref.Args = append(ref.Args, p.parseTypeExpr())

				if !p.peekTokenIs(jslexer.COMMA) {
					break
				}

				p.nextToken()
			}

			p.expectPeek(jslexer.GT)
		}

		ref.Loc = p.rangeFrom(start)

		return ref
	}
}

// looksLikeFuncType distinguishes `(a: A) => R` from a parenthesized type
// `(A | B)`: a parameter list's first token, if any, is always an
// identifier followed by `:` or `,` or `)` immediately followed by `=>`.
func (p *Parser) looksLikeFuncType() bool {
	if p.peekTokenIs(jslexer.RPAREN) {
		return true
	}

	if !p.peekTokenIs(jslexer.IDENT) {
		return false
	}

	savedLexer, savedCur, savedPeek := *p.l, p.curToken, p.peekToken

	p.nextToken() // the identifier
	ok := p.peekTokenIs(jslexer.COLON) || p.peekTokenIs(jslexer.COMMA)

	if p.peekTokenIs(jslexer.RPAREN) {
		p.nextToken()
		ok = p.peekTokenIs(jslexer.ARROW)
	}

	*p.l, p.curToken, p.peekToken = savedLexer, savedCur, savedPeek

	return ok
}

func (p *Parser) parseFuncType() jsast.TypeExpr {
	start := p.pos()

	ft := &jsast.FuncTypeExpr{}
	ft.Params = p.parseTypeParamList()

	if !p.expectPeek(jslexer.ARROW) {
		return ft
	}

	p.nextToken()
	ft.Return = p.parseTypeExpr()
	ft.Loc = p.rangeFrom(start)

	return ft
}

// parseMethodSignatureType parses a method signature's parameter list and
// return type (`(params): Return`) as a FuncTypeExpr — an interface or
// object-type-literal method member has no arrow, just an optional `:
// Return`, unlike a FuncTypeExpr value position. curToken must be LPAREN.
func (p *Parser) parseMethodSignatureType() *jsast.FuncTypeExpr {
	start := p.pos()

	ft := &jsast.FuncTypeExpr{}
	ft.Params = p.parseTypeParamList()

	if p.peekTokenIs(jslexer.COLON) {
		p.nextToken()
		p.nextToken()
		ft.Return = p.parseTypeExpr()
	}

	ft.Loc = p.rangeFrom(start)

	return ft
}

// parseTypeParamList parses a `(a: A, b: B)` parameter list shared by a
// function-type value and a method-signature member. curToken must be
// LPAREN; leaves curToken on the closing RPAREN.
func (p *Parser) parseTypeParamList() []*jsast.Param {
	var params []*jsast.Param

	p.nextToken() // (

	if !p.curTokenIs(jslexer.RPAREN) {
		for {
			paramStart := p.pos()
			param := &jsast.Param{Name: &jsast.Ident{Name: p.curToken.Literal, Loc: p.rangeFrom(paramStart)}}

			if p.peekTokenIs(jslexer.COLON) {
				p.nextToken()
				p.nextToken()
				param.Annotation = p.parseTypeExpr()
			}

			params = append(params, param)

			if !p.peekTokenIs(jslexer.COMMA) {
				break
			}

			p.nextToken()
			p.nextToken()
		}

		p.expectPeek(jslexer.RPAREN)
	}

	return params
}

// parseMappedOrObjectType parses `{ [K in Keys]: V }` (a mapped type,
// introducing a type parameter) or a plain object-type literal
// (`{ a: A; b: B }`, no type parameter of its own, but each member's
// annotation is parsed and resolved).
func (p *Parser) parseMappedOrObjectType() jsast.TypeExpr {
	start := p.pos()

	if p.peekTokenIs(jslexer.LBRACKET) {
		p.nextToken() // [
		p.nextToken()

		m := &jsast.MappedTypeExpr{TypeParam: p.curToken.Literal}

		if !p.expectPeek(jslexer.IN) {
			return m
		}

		p.nextToken()
		m.Constraint = p.parseTypeExpr()

		if !p.expectPeek(jslexer.RBRACKET) {
			return m
		}

		if p.peekTokenIs(jslexer.COLON) {
			p.nextToken()
			p.nextToken()
			m.Value = p.parseTypeExpr()
		}

		if p.peekTokenIs(jslexer.RBRACE) {
			p.nextToken()
		}

		m.Loc = p.rangeFrom(start)

		return m
	}

	// Plain object-type literal: `{ a: A; b: B }`. It introduces no binding
	// of its own, but each member's annotation is still a Type-namespace
	// position the resolver must walk.
	p.nextToken()

	members := p.parseObjectTypeMembers()

	return &jsast.ObjectTypeExpr{Members: members, Loc: p.rangeFrom(start)}
}

// parseObjectTypeMembers parses `name[?]: Type` and method-signature
// (`name(params): Return`) entries separated by `;` or `,` until the
// current token is the closing `}` (left as current, not consumed). Shared
// by a plain object-type literal and an interface body, which have the
// same member grammar. Assumes the caller has already advanced past the
// opening `{`.
func (p *Parser) parseObjectTypeMembers() []*jsast.ObjectTypeMember {
	var members []*jsast.ObjectTypeMember

	for !p.curTokenIs(jslexer.RBRACE) && !p.curTokenIs(jslexer.EOF) {
		start := p.pos()
		m := &jsast.ObjectTypeMember{Name: p.curToken.Literal}

		if p.peekTokenIs(jslexer.QUESTION) {
			p.nextToken()
		}

		switch {
		case p.peekTokenIs(jslexer.LPAREN):
			p.nextToken()
			m.Annotation = p.parseMethodSignatureType()
		case p.peekTokenIs(jslexer.COLON):
			p.nextToken()
			p.nextToken()
			m.Annotation = p.parseTypeExpr()
		}

		m.Loc = p.rangeFrom(start)
		members = append(members, m)

		if p.peekTokenIs(jslexer.SEMICOLON) || p.peekTokenIs(jslexer.COMMA) {
			p.nextToken()
		}

		p.nextToken()
	}

	return members
}
