package parser

import (
	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/token"
)

func (p *Parser) parseStruct(attrs []ast.Attr) (ast.Stmt, bool) {
	kw := p.advance() // 'struct'
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	s := &ast.Struct{Attrs: attrs, Name: name}

	// bodyless forward declaration
	if p.at(token.Semicolon) {
		p.advance()
		s.Forward = true
		s.Loc = kw.Span.Cover(p.lastSpan)
		return s, true
	}

	errsBefore := p.opts.currentErrors
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' or ';' after struct name"); !ok {
		return s, true // keep the partial node, caller resyncs via the stream
	}

	for !p.atAny(token.RBrace, token.EOF) {
		member, ok := p.parseStructMember()
		if !ok {
			sp := p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
				sp = sp.Cover(p.lastSpan)
			}
			member = &ast.BadStmt{Loc: sp}
		}
		s.Members = append(s.Members, member)
	}

	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct body")
	p.closeDecl(errsBefore)
	s.Loc = kw.Span.Cover(p.lastSpan)
	return s, true
}

func (p *Parser) parseStructMember() (ast.Stmt, bool) {
	attrs := p.parseAttrs()
	switch p.lx.Peek().Kind {
	case token.KwEnum:
		return p.parseEnum(attrs)
	case token.KwConst:
		return p.parseConst(attrs)
	default:
		return p.parseStructField(attrs)
	}
}

func (p *Parser) parseStructField(attrs []ast.Attr) (ast.Stmt, bool) {
	start := p.lx.Peek().Span
	typ, ok := p.parseTypeSpec()
	if !ok {
		return nil, false
	}
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	f := &ast.StructField{Attrs: attrs, Type: typ, Name: name}
	if p.at(token.At) {
		f.Ordinal = p.parseOrdinal()
	}
	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseLiteral()
		if !ok {
			return nil, false
		}
		f.Default = &value
	}
	p.expectSemicolon()
	f.Loc = start.Cover(p.lastSpan)
	return f, true
}
