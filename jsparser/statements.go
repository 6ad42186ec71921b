package jsparser

import (
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/jslexer"
)

func (p *Parser) parseStatement() jsast.Stmt {
	switch p.curToken.Type {
	case jslexer.IMPORT:
		return p.parseImportDecl()
	case jslexer.EXPORT:
		return p.parseExportDecl()
	case jslexer.CONST, jslexer.LET, jslexer.VAR:
		return p.parseVarDecl()
	case jslexer.FUNCTION, jslexer.ASYNC:
		return p.parseFuncDecl()
	case jslexer.CLASS:
		return p.parseClassDecl()
	case jslexer.INTERFACE:
		return p.parseInterfaceDecl()
	case jslexer.TYPE:
		return p.parseTypeAliasDecl()
	case jslexer.ENUM:
		return p.parseEnumDecl()
	case jslexer.LBRACE:
		return p.parseBlockStmt()
	case jslexer.IF:
		return p.parseIfStmt()
	case jslexer.FOR:
		return p.parseForStmt()
	case jslexer.TRY:
		return p.parseTryStmt()
	case jslexer.RETURN:
		return p.parseReturnStmt()
	case jslexer.SEMICOLON:
		return nil
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlockStmt() *jsast.BlockStmt {
	start := p.pos()

	b := &jsast.BlockStmt{}
	if !p.curTokenIs(jslexer.LBRACE) {
		if !p.expectPeek(jslexer.LBRACE) {
			return b
		}
	}

	p.nextToken()

	for !p.curTokenIs(jslexer.RBRACE) && !p.curTokenIs(jslexer.EOF) {
		st := p.parseStatement()
		if st != nil {
			b.Stmts = append(b.Stmts, st)
		}

		p.nextToken()
	}

	b.Loc = p.rangeFrom(start)

	return b
}

func (p *Parser) parseExprStmt() jsast.Stmt {
	start := p.pos()

	x := p.parseExpression(LOWEST)
	st := &jsast.ExprStmt{X: x, Loc: p.rangeFrom(start)}
	p.skipSemicolon()

	return st
}

func (p *Parser) parseReturnStmt() jsast.Stmt {
	start := p.pos()

	st := &jsast.ReturnStmt{}
	if !p.peekTokenIs(jslexer.SEMICOLON) && !p.peekTokenIs(jslexer.RBRACE) {
		p.nextToken()
		st.Value = p.parseExpression(LOWEST)
	}

	st.Loc = p.rangeFrom(start)
	p.skipSemicolon()

	return st
}

func (p *Parser) parseIfStmt() jsast.Stmt {
	start := p.pos()

	if !p.expectPeek(jslexer.LPAREN) {
		return nil
	}

	p.nextToken()
	cond := p.parseExpression(LOWEST)

	if !p.expectPeek(jslexer.RPAREN) {
		return nil
	}

	p.nextToken()
	then := p.parseBlockStmt()

	st := &jsast.IfStmt{Cond: cond, Then: then}

	if p.peekTokenIs(jslexer.ELSE) {
		p.nextToken()
		p.nextToken()

		if p.curTokenIs(jslexer.IF) {
			st.Else = p.parseIfStmt()
		} else {
			st.Else = p.parseBlockStmt()
		}
	}

	st.Loc = p.rangeFrom(start)

	return st
}

// parseForStmt covers the classic three-clause `for (init; cond; post)`
// form. `for...of`/`for...in` are parsed into the same shape with Init
// holding the loop variable's VarDecl, Cond left nil, and Post holding the
// iterable expression, so its identifiers are resolved like any other.
func (p *Parser) parseForStmt() jsast.Stmt {
	start := p.pos()

	if !p.expectPeek(jslexer.LPAREN) {
		return nil
	}

	st := &jsast.ForStmt{}

	p.nextToken()

	if !p.curTokenIs(jslexer.SEMICOLON) {
		if p.curTokenIs(jslexer.CONST) || p.curTokenIs(jslexer.LET) || p.curTokenIs(jslexer.VAR) {
			st.Init = p.parseVarDeclNoSemi()
		} else {
			st.Init = p.parseExprStmtNoSemi()
		}

		p.nextToken() // past the init clause's last token, onto `;`, `of` or `in`
	}

	if p.curTokenIs(jslexer.OF) || p.curTokenIs(jslexer.IN) {
		p.nextToken()
		st.Post = p.resolveForOfIterable()

		if !p.expectPeek(jslexer.RPAREN) {
			return nil
		}

		p.nextToken()
		st.Body = p.parseBlockStmt()
		st.Loc = p.rangeFrom(start)

		return st
	}

	if !p.curTokenIs(jslexer.SEMICOLON) {
		p.errorf("expected ';' in for statement, got %v", p.curToken.Type)
	}

	p.nextToken()

	if !p.curTokenIs(jslexer.SEMICOLON) {
		st.Cond = p.parseExpression(LOWEST)
		p.nextToken()
	}

	p.nextToken()

	if !p.curTokenIs(jslexer.RPAREN) {
		st.Post = p.parseExprStmtNoSemi()
		p.nextToken()
	}

	st.Body = p.parseBlockStmt()
	st.Loc = p.rangeFrom(start)

	return st
}

// resolveForOfIterable parses the iterable expression of a for-of/for-in
// loop header and wraps it in an ExprStmt, which parseForStmt stores as
// the loop's Post clause so the analyzer visits it.
func (p *Parser) resolveForOfIterable() *jsast.ExprStmt {
	return p.parseExprStmtNoSemi()
}

func (p *Parser) parseVarDeclNoSemi() *jsast.VarDecl {
	d := p.parseVarDeclBody()
	return d
}

func (p *Parser) parseExprStmtNoSemi() *jsast.ExprStmt {
	start := p.pos()
	x := p.parseExpression(LOWEST)

	return &jsast.ExprStmt{X: x, Loc: p.rangeFrom(start)}
}

func (p *Parser) parseTryStmt() jsast.Stmt {
	start := p.pos()

	if !p.expectPeek(jslexer.LBRACE) {
		return nil
	}

	body := p.parseBlockStmt()
	st := &jsast.TryStmt{Body: body}

	if p.peekTokenIs(jslexer.CATCH) {
		p.nextToken()

		cc := &jsast.CatchClause{}
		ccStart := p.pos()

		if p.peekTokenIs(jslexer.LPAREN) {
			p.nextToken()
			p.nextToken()

			cc.Param = &jsast.Ident{Name: p.curToken.Literal, Loc: p.rangeFrom(p.pos())}

			if !p.expectPeek(jslexer.RPAREN) {
				return nil
			}
		}

		if !p.expectPeek(jslexer.LBRACE) {
			return nil
		}

		cc.Body = p.parseBlockStmt()
		cc.Loc = p.rangeFrom(ccStart)
		st.Catch = cc
	}

	if p.peekTokenIs(jslexer.FINALLY) {
		p.nextToken()

		if !p.expectPeek(jslexer.LBRACE) {
			return nil
		}

		st.Finally = p.parseBlockStmt()
	}

	st.Loc = p.rangeFrom(start)

	return st
}
