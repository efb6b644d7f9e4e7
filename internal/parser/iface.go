package parser

import (
	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/source"
	"mojomls/internal/token"
)

func (p *Parser) parseInterface(attrs []ast.Attr) (ast.Stmt, bool) {
	kw := p.advance() // 'interface'
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	i := &ast.Interface{Attrs: attrs, Name: name}

	// interfaces have no forward form
	if p.at(token.Semicolon) {
		p.report(diag.SynBodyRequired, diag.SevError, p.lx.Peek().Span,
			"interface declaration requires a body")
		p.advance()
		i.Loc = kw.Span.Cover(p.lastSpan)
		return i, true
	}

	errsBefore := p.opts.currentErrors
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after interface name"); !ok {
		return i, true
	}

	for !p.atAny(token.RBrace, token.EOF) {
		member, ok := p.parseInterfaceMember()
		if !ok {
			sp := p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
				sp = sp.Cover(p.lastSpan)
			}
			member = &ast.BadStmt{Loc: sp}
		}
		i.Members = append(i.Members, member)
	}

	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close interface body")
	p.closeDecl(errsBefore)
	i.Loc = kw.Span.Cover(p.lastSpan)
	return i, true
}

func (p *Parser) parseInterfaceMember() (ast.Stmt, bool) {
	attrs := p.parseAttrs()
	switch p.lx.Peek().Kind {
	case token.KwEnum:
		return p.parseEnum(attrs)
	case token.KwConst:
		return p.parseConst(attrs)
	case token.Ident:
		return p.parseMethod(attrs)
	default:
		p.err(diag.SynUnexpectedToken, "expected method, enum or const in interface body")
		return nil, false
	}
}

func (p *Parser) parseMethod(attrs []ast.Attr) (ast.Stmt, bool) {
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	m := &ast.Method{Attrs: attrs, Name: name}
	if p.at(token.At) {
		m.Ordinal = p.parseOrdinal()
	}

	params, _, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	m.Params = params

	if p.at(token.FatArrow) {
		p.advance()
		respParams, respSpan, ok := p.parseParamList()
		if !ok {
			return nil, false
		}
		m.Response = &ast.ParamList{Params: respParams, Loc: respSpan}
	}

	p.expectSemicolon()
	m.Loc = name.Loc.Cover(p.lastSpan)
	return m, true
}

func (p *Parser) parseParamList() ([]*ast.Param, source.Span, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return nil, open.Span, false
	}
	var params []*ast.Param
	for !p.atAny(token.RParen, token.EOF) {
		param, ok := p.parseParam()
		if !ok {
			p.resyncUntil(token.Comma, token.RParen)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list")
	if !ok {
		return params, open.Span.Cover(p.lastSpan), false
	}
	return params, open.Span.Cover(closeTok.Span), true
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	attrs := p.parseAttrs()
	start := p.lx.Peek().Span
	typ, ok := p.parseTypeSpec()
	if !ok {
		return nil, false
	}
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	param := &ast.Param{Attrs: attrs, Type: typ, Name: name}
	if p.at(token.At) {
		param.Ordinal = p.parseOrdinal()
	}
	param.Loc = start.Cover(p.lastSpan)
	return param, true
}
