package parser

import (
	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/token"
)

func (p *Parser) parseUnion(attrs []ast.Attr) (ast.Stmt, bool) {
	kw := p.advance() // 'union'
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	u := &ast.Union{Attrs: attrs, Name: name}

	// unions have no forward form
	if p.at(token.Semicolon) {
		p.report(diag.SynBodyRequired, diag.SevError, p.lx.Peek().Span,
			"union declaration requires a body")
		p.advance()
		u.Loc = kw.Span.Cover(p.lastSpan)
		return u, true
	}

	errsBefore := p.opts.currentErrors
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after union name"); !ok {
		return u, true
	}

	for !p.atAny(token.RBrace, token.EOF) {
		field, ok := p.parseUnionField()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		u.Fields = append(u.Fields, field)
	}

	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close union body")
	p.closeDecl(errsBefore)
	u.Loc = kw.Span.Cover(p.lastSpan)
	return u, true
}

func (p *Parser) parseUnionField() (*ast.UnionField, bool) {
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
	f := &ast.UnionField{Attrs: attrs, Type: typ, Name: name}
	if p.at(token.At) {
		f.Ordinal = p.parseOrdinal()
	}
	p.expectSemicolon()
	f.Loc = start.Cover(p.lastSpan)
	return f, true
}
