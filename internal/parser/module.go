package parser

import (
	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/token"
)

func (p *Parser) parseModule(attrs []ast.Attr) (ast.Stmt, bool) {
	kw := p.advance() // 'module'
	name, ok := p.parseDottedName()
	if !ok {
		return nil, false
	}
	p.expectSemicolon()
	return &ast.Module{
		Attrs: attrs,
		Name:  name,
		Loc:   kw.Span.Cover(p.lastSpan),
	}, true
}

func (p *Parser) parseImport(attrs []ast.Attr) (ast.Stmt, bool) {
	kw := p.advance() // 'import'
	pathTok, ok := p.expect(token.StringLit, diag.SynExpectStringLiteral, "expected import path string")
	if !ok {
		return nil, false
	}
	p.expectSemicolon()
	return &ast.Import{
		Attrs:   attrs,
		Path:    unquote(pathTok.Text),
		PathLoc: pathTok.Span,
		Loc:     kw.Span.Cover(p.lastSpan),
	}, true
}

// unquote strips the surrounding quotes of a string literal token. Escape
// sequences are left as written; import paths do not use them in practice.
func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}
	return text
}
