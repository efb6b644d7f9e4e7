package parser

import (
	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/token"
)

func (p *Parser) parseConst(attrs []ast.Attr) (ast.Stmt, bool) {
	kw := p.advance() // 'const'
	typ, ok := p.parseTypeSpec()
	if !ok {
		return nil, false
	}
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in const declaration"); !ok {
		return nil, false
	}
	value, ok := p.parseLiteral()
	if !ok {
		return nil, false
	}
	p.expectSemicolon()
	return &ast.Const{
		Attrs: attrs,
		Type:  typ,
		Name:  name,
		Value: value,
		Loc:   kw.Span.Cover(p.lastSpan),
	}, true
}
