package jsparser

import (
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/jslexer"
)

func (p *Parser) parseIdent() *jsast.Ident {
	r := p.rangeFrom(p.pos())
	return &jsast.Ident{Name: p.curToken.Literal, Loc: r}
}

// parseImportDecl parses all four import forms: named, default, wildcard,
// and side-effect-only.
func (p *Parser) parseImportDecl() jsast.Stmt {
	start := p.pos()
	d := &jsast.ImportDecl{}

	if p.peekTokenIs(jslexer.TYPE) {
		p.nextToken()
		d.TypeOnly = true
	}

	switch {
	case p.peekTokenIs(jslexer.STRING):
		// Side-effect-only: `import "./polyfill";` — no default, namespace,
		// or specifier list, just a bare module path run for effect.
		p.nextToken()
		d.Source = p.curToken.Literal
		d.Loc = p.rangeFrom(start)
		p.skipSemicolon()

		return d
	case p.peekTokenIs(jslexer.STAR):
		p.nextToken() // *

		if !p.expectPeek(jslexer.AS) {
			return d
		}

		if !p.expectPeek(jslexer.IDENT) {
			return d
		}

		d.Namespace = p.parseIdent()
	case p.peekTokenIs(jslexer.LBRACE):
		p.nextToken() // {
		p.nextToken()

		for !p.curTokenIs(jslexer.RBRACE) && !p.curTokenIs(jslexer.EOF) {
			spec := &jsast.ImportSpecifier{}
			specStart := p.pos()

			if p.curTokenIs(jslexer.TYPE) && !p.peekTokenIs(jslexer.COMMA) && !p.peekTokenIs(jslexer.RBRACE) && !p.peekTokenIs(jslexer.AS) {
				spec.TypeOnly = true
				p.nextToken()
			}

			spec.Imported = p.parseIdent()
			spec.Local = spec.Imported

			if p.peekTokenIs(jslexer.AS) {
				p.nextToken()
				p.nextToken()
				spec.Local = p.parseIdent()
			}

			spec.Loc = p.rangeFrom(specStart)
			d.Specifiers = append(d.Specifiers, spec)

			if p.peekTokenIs(jslexer.COMMA) {
				p.nextToken()
			}

			p.nextToken()
		}
	case p.peekTokenIs(jslexer.IDENT):
		p.nextToken()
		d.Default = p.parseIdent()

		if p.peekTokenIs(jslexer.COMMA) {
			p.nextToken()
			p.nextToken()

			if p.curTokenIs(jslexer.STAR) {
				if !p.expectPeek(jslexer.AS) {
					return d
				}

				p.nextToken()
				d.Namespace = p.parseIdent()
			} else if p.curTokenIs(jslexer.LBRACE) {
				p.nextToken()

				for !p.curTokenIs(jslexer.RBRACE) && !p.curTokenIs(jslexer.EOF) {
					spec := &jsast.ImportSpecifier{}
					spec.Imported = p.parseIdent()
					spec.Local = spec.Imported

					if p.peekTokenIs(jslexer.AS) {
						p.nextToken()
						p.nextToken()
						spec.Local = p.parseIdent()
					}

					d.Specifiers = append(d.Specifiers, spec)

					if p.peekTokenIs(jslexer.COMMA) {
						p.nextToken()
					}

					p.nextToken()
				}
			}
		}
	}

	if !p.expectPeek(jslexer.FROM) {
		return d
	}

	if !p.expectPeek(jslexer.STRING) {
		return d
	}

	d.Source = p.curToken.Literal
	d.Loc = p.rangeFrom(start)
	p.skipSemicolon()

	return d
}

// parseExportDecl parses `export ...` in any of its five shapes: named
// list (with or without `from`), a prefixed declaration, default, and
// `export *`.
func (p *Parser) parseExportDecl() jsast.Stmt {
	start := p.pos()

	if p.peekTokenIs(jslexer.DEFAULT) {
		p.nextToken()
		p.nextToken()

		return p.parseExportDefault(start)
	}

	if p.peekTokenIs(jslexer.STAR) {
		p.nextToken()

		d := &jsast.ExportAllDecl{}

		if p.peekTokenIs(jslexer.AS) {
			p.nextToken()
			p.nextToken()
			d.Alias = p.parseIdent()
		}

		if !p.expectPeek(jslexer.FROM) {
			return d
		}

		if !p.expectPeek(jslexer.STRING) {
			return d
		}

		d.Source = p.curToken.Literal
		d.Loc = p.rangeFrom(start)
		p.skipSemicolon()

		return d
	}

	if p.peekTokenIs(jslexer.LBRACE) {
		return p.parseExportNamed(start, false)
	}

	if p.peekTokenIs(jslexer.TYPE) {
		// `export type { X }` (named, type-only) vs `export type T = ...`
		// (a type-alias declaration) both start with `export type`; the
		// token after TYPE disambiguates them.
		p.nextToken() // now on TYPE

		if p.peekTokenIs(jslexer.LBRACE) {
			return p.parseExportNamed(start, true)
		}

		inner := p.parseStatement()

		return &jsast.ExportDeclDecl{Decl: inner, Loc: p.rangeFrom(start)}
	}

	// export-prefixed declaration
	p.nextToken()

	inner := p.parseStatement()

	return &jsast.ExportDeclDecl{Decl: inner, Loc: p.rangeFrom(start)}
}

func (p *Parser) parseExportNamed(start jsast.Position, typeOnly bool) jsast.Stmt {
	d := &jsast.ExportNamedDecl{}

	if !p.expectPeek(jslexer.LBRACE) {
		return d
	}

	p.nextToken()

	for !p.curTokenIs(jslexer.RBRACE) && !p.curTokenIs(jslexer.EOF) {
		spec := &jsast.ExportSpecifier{TypeOnly: typeOnly}
		specStart := p.pos()

		spec.Local = p.parseIdent()
		spec.Exported = spec.Local

		if p.peekTokenIs(jslexer.AS) {
			p.nextToken()
			p.nextToken()
			spec.Exported = p.parseIdent()
		}

		spec.Loc = p.rangeFrom(specStart)
		d.Specifiers = append(d.Specifiers, spec)

		if p.peekTokenIs(jslexer.COMMA) {
			p.nextToken()
		}

		p.nextToken()
	}

	if p.peekTokenIs(jslexer.FROM) {
		p.nextToken()
		p.nextToken()
		d.Source = p.curToken.Literal
	}

	d.Loc = p.rangeFrom(start)
	p.skipSemicolon()

	return d
}

func (p *Parser) parseExportDefault(start jsast.Position) jsast.Stmt {
	if p.curTokenIs(jslexer.FUNCTION) || p.curTokenIs(jslexer.ASYNC) {
		fd := p.parseFuncDecl()
		return &jsast.ExportDefaultDecl{Decl: fd, Loc: p.rangeFrom(start)}
	}

	if p.curTokenIs(jslexer.CLASS) {
		cd := p.parseClassDecl()
		return &jsast.ExportDefaultDecl{Decl: cd, Loc: p.rangeFrom(start)}
	}

	expr := p.parseExpression(LOWEST)
	p.skipSemicolon()

	return &jsast.ExportDefaultDecl{Decl: expr, Loc: p.rangeFrom(start)}
}

func (p *Parser) parseVarDecl() jsast.Stmt {
	d := p.parseVarDeclBody()
	p.skipSemicolon()

	return d
}

func (p *Parser) parseVarDeclBody() *jsast.VarDecl {
	start := p.pos()

	kind := jsast.VarVar
	switch p.curToken.Type {
	case jslexer.CONST:
		kind = jsast.VarConst
	case jslexer.LET:
		kind = jsast.VarLet
	}

	d := &jsast.VarDecl{VarKind: kind}

	for {
		p.nextToken()

		declStart := p.pos()
		declr := &jsast.VarDeclarator{Name: p.parseIdent()}

		if p.peekTokenIs(jslexer.COLON) {
			p.nextToken()
			p.nextToken()
			declr.Annotation = p.parseTypeExpr()
		}

		if p.peekTokenIs(jslexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			declr.Init = p.parseExpression(LOWEST)
		}

		declr.Loc = p.rangeFrom(declStart)
		d.Declarators = append(d.Declarators, declr)

		if !p.peekTokenIs(jslexer.COMMA) {
			break
		}

		p.nextToken()
	}

	d.Loc = p.rangeFrom(start)

	return d
}

func (p *Parser) parseTypeParams() []*jsast.TypeParam {
	if !p.peekTokenIs(jslexer.LT) {
		return nil
	}

	p.nextToken()

	var tps []*jsast.TypeParam

	for {
		p.nextToken()

		start := p.pos()
		tp := &jsast.TypeParam{Name: p.parseIdent()}

		if p.peekTokenIs(jslexer.EXTENDS) {
			p.nextToken()
			p.nextToken()
			tp.Constraint = p.parseTypeExpr()
		}

		tp.Loc = p.rangeFrom(start)
		tps = append(tps, tp)

		if !p.peekTokenIs(jslexer.COMMA) {
			break
		}

		p.nextToken()
	}

	p.expectPeek(jslexer.GT)

	return tps
}

func (p *Parser) parseParams() []*jsast.Param {
	if !p.curTokenIs(jslexer.LPAREN) && !p.expectPeek(jslexer.LPAREN) {
		return nil
	}

	var params []*jsast.Param
	if p.peekTokenIs(jslexer.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		p.nextToken()

		start := p.pos()
		param := &jsast.Param{Name: p.parseIdent()}

		if p.peekTokenIs(jslexer.QUESTION) {
			p.nextToken()
		}

		if p.peekTokenIs(jslexer.COLON) {
			p.nextToken()
			p.nextToken()
			param.Annotation = p.parseTypeExpr()
		}

		if p.peekTokenIs(jslexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
		}

		param.Loc = p.rangeFrom(start)
		params = append(params, param)

		if !p.peekTokenIs(jslexer.COMMA) {
			break
		}

		p.nextToken()
	}

	p.expectPeek(jslexer.RPAREN)

	return params
}

func (p *Parser) parseFuncDecl() *jsast.FuncDecl {
	start := p.pos()

	isAsync := false
	if p.curTokenIs(jslexer.ASYNC) {
		isAsync = true
		p.nextToken()
	}

	d := &jsast.FuncDecl{IsAsync: isAsync}

	if !p.curTokenIs(jslexer.FUNCTION) {
		p.errorf("expected 'function', got %v", p.curToken.Type)
		return d
	}

	if !p.expectPeek(jslexer.IDENT) {
		return d
	}

	d.Name = p.parseIdent()
	d.TypeParams = p.parseTypeParams()
	d.Params = p.parseParams()

	if p.peekTokenIs(jslexer.COLON) {
		p.nextToken()
		p.nextToken()
		d.ReturnType = p.parseTypeExpr()
	}

	if !p.expectPeek(jslexer.LBRACE) {
		return d
	}

	d.Body = p.parseBlockStmt()
	d.Loc = p.rangeFrom(start)

	return d
}

func (p *Parser) parseClassDecl() *jsast.ClassDecl {
	start := p.pos()

	d := &jsast.ClassDecl{}

	if !p.expectPeek(jslexer.IDENT) {
		return d
	}

	d.Name = p.parseIdent()
	d.TypeParams = p.parseTypeParams()

	if p.peekTokenIs(jslexer.EXTENDS) {
		p.nextToken()
		p.nextToken()
		d.Extends = p.parseTypeExpr()
	}

	if p.peekTokenIs(jslexer.IMPLEMENTS) {
		p.nextToken()
		p.nextToken()
		d.Implements = append(d.Implements, p.parseTypeExpr())

		for p.peekTokenIs(jslexer.COMMA) {
			p.nextToken()
			p.nextToken()
			d.Implements = append(d.Implements, p.parseTypeExpr())
		}
	}

	if !p.expectPeek(jslexer.LBRACE) {
		return d
	}

	p.nextToken()

	for !p.curTokenIs(jslexer.RBRACE) && !p.curTokenIs(jslexer.EOF) {
		m := p.parseClassMember()
		if m != nil {
			d.Members = append(d.Members, m)
		}

		p.nextToken()
	}

	d.Loc = p.rangeFrom(start)

	return d
}

func (p *Parser) parseClassMember() *jsast.ClassMember {
	start := p.pos()
	m := &jsast.ClassMember{}

	if p.curTokenIs(jslexer.STATIC) {
		m.Static = true
		p.nextToken()
	}

	if p.curTokenIs(jslexer.ASYNC) {
		p.nextToken()
	}

	if !p.curTokenIs(jslexer.IDENT) {
		return nil
	}

	m.Name = p.parseIdent()

	if p.peekTokenIs(jslexer.LPAREN) {
		m.IsMethod = true
		m.Params = p.parseParams()

		if p.peekTokenIs(jslexer.COLON) {
			p.nextToken()
			p.nextToken()
			m.Annotation = p.parseTypeExpr() // method return type, resolved like a field annotation
		}

		if !p.expectPeek(jslexer.LBRACE) {
			return m
		}

		m.Body = p.parseBlockStmt()
		m.Loc = p.rangeFrom(start)

		return m
	}

	if p.peekTokenIs(jslexer.COLON) {
		p.nextToken()
		p.nextToken()
		m.Annotation = p.parseTypeExpr()
	}

	if p.peekTokenIs(jslexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		m.Init = p.parseExpression(LOWEST)
	}

	m.Loc = p.rangeFrom(start)
	p.skipSemicolon()

	return m
}

func (p *Parser) parseInterfaceDecl() *jsast.InterfaceDecl {
	start := p.pos()
	d := &jsast.InterfaceDecl{}

	if !p.expectPeek(jslexer.IDENT) {
		return d
	}

	d.Name = p.parseIdent()
	d.TypeParams = p.parseTypeParams()

	if p.peekTokenIs(jslexer.EXTENDS) {
		p.nextToken()
		p.nextToken()
		d.Extends = append(d.Extends, p.parseTypeExpr())

		for p.peekTokenIs(jslexer.COMMA) {
			p.nextToken()
			p.nextToken()
			d.Extends = append(d.Extends, p.parseTypeExpr())
		}
	}

	if !p.expectPeek(jslexer.LBRACE) {
		return d
	}

	p.nextToken()
	d.Members = p.parseObjectTypeMembers()

	d.Loc = p.rangeFrom(start)

	return d
}

func (p *Parser) parseTypeAliasDecl() *jsast.TypeAliasDecl {
	start := p.pos()
	d := &jsast.TypeAliasDecl{}

	if !p.expectPeek(jslexer.IDENT) {
		return d
	}

	d.Name = p.parseIdent()
	d.TypeParams = p.parseTypeParams()

	if !p.expectPeek(jslexer.ASSIGN) {
		return d
	}

	p.nextToken()
	d.Value = p.parseTypeExpr()
	d.Loc = p.rangeFrom(start)
	p.skipSemicolon()

	return d
}

func (p *Parser) parseEnumDecl() *jsast.EnumDecl {
	start := p.pos()
	d := &jsast.EnumDecl{}

	if !p.expectPeek(jslexer.IDENT) {
		return d
	}

	d.Name = p.parseIdent()

	if !p.expectPeek(jslexer.LBRACE) {
		return d
	}

	p.nextToken()

	for !p.curTokenIs(jslexer.RBRACE) && !p.curTokenIs(jslexer.EOF) {
		if p.curTokenIs(jslexer.IDENT) {
			d.Members = append(d.Members, p.curToken.Literal)
		}

		if p.peekTokenIs(jslexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			p.parseExpression(LOWEST)
		}

		if p.peekTokenIs(jslexer.COMMA) {
			p.nextToken()
		}

		p.nextToken()
	}

	d.Loc = p.rangeFrom(start)

	return d
}
