package parser

import (
	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/token"
)

func (p *Parser) parseEnum(attrs []ast.Attr) (ast.Stmt, bool) {
	kw := p.advance() // 'enum'
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	e := &ast.Enum{Attrs: attrs, Name: name}

	// bodyless forward declaration
	if p.at(token.Semicolon) {
		p.advance()
		e.Forward = true
		e.Loc = kw.Span.Cover(p.lastSpan)
		return e, true
	}

	errsBefore := p.opts.currentErrors
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' or ';' after enum name"); !ok {
		return e, true
	}

	for !p.atAny(token.RBrace, token.EOF) {
		val, ok := p.parseEnumValue()
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		e.Values = append(e.Values, val)
		if !p.at(token.Comma) {
			break
		}
		p.advance() // trailing comma before '}' is fine
	}

	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close enum body")
	p.closeDecl(errsBefore)
	e.Loc = kw.Span.Cover(p.lastSpan)
	return e, true
}

func (p *Parser) parseEnumValue() (*ast.EnumValue, bool) {
	attrs := p.parseAttrs()
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	v := &ast.EnumValue{Attrs: attrs, Name: name, Loc: name.Loc}
	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseLiteral()
		if !ok {
			return nil, false
		}
		v.Value = &value
		v.Loc = v.Loc.Cover(value.Loc)
	}
	return v, true
}
