package parser

import (
	"fmt"
	"strconv"

	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/token"
)

// parseAttrs consumes zero or more attribute sections, `[A, B=2]`, and
// returns all attributes flattened in source order.
func (p *Parser) parseAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.LBracket) {
		p.advance()
		for !p.atAny(token.RBracket, token.EOF) {
			name, ok := p.parseName()
			if !ok {
				p.resyncUntil(token.Comma, token.RBracket)
				if p.at(token.Comma) {
					p.advance()
				}
				continue
			}
			attr := ast.Attr{Name: name, Loc: name.Loc}
			if p.at(token.Assign) {
				p.advance()
				val := p.lx.Peek()
				if val.IsLiteral() || val.Kind == token.Ident {
					p.advance()
					attr.Value = val.Text
					attr.Loc = attr.Loc.Cover(val.Span)
				} else {
					p.err(diag.SynExpectLiteral, "expected attribute value")
				}
			}
			attrs = append(attrs, attr)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close attribute section"); !ok {
			p.resyncUntil(token.RBracket, token.Semicolon, token.KwModule, token.KwImport,
				token.KwConst, token.KwStruct, token.KwUnion, token.KwEnum, token.KwInterface)
			if p.at(token.RBracket) {
				p.advance()
			}
		}
	}
	return attrs
}

// parseOrdinal consumes `@N`. The '@' is already peeked by the caller.
func (p *Parser) parseOrdinal() *ast.Ordinal {
	atTok := p.advance() // '@'
	numTok, ok := p.expect(token.IntLit, diag.SynBadOrdinal, "expected ordinal value after '@'")
	if !ok {
		return nil
	}
	v, err := strconv.ParseUint(numTok.Text, 10, 32)
	if err != nil {
		p.report(diag.SynBadOrdinal, diag.SevError, atTok.Span.Cover(numTok.Span),
			fmt.Sprintf("ordinal %q must be a non-negative decimal integer", numTok.Text))
		return nil
	}
	return &ast.Ordinal{Value: uint32(v), Loc: atTok.Span.Cover(numTok.Span)}
}

// parseLiteral parses a constant value: a literal token or a possibly dotted
// identifier reference.
func (p *Parser) parseLiteral() (ast.Literal, bool) {
	tok := p.lx.Peek()
	if tok.IsLiteral() {
		p.advance()
		return ast.Literal{Text: tok.Text, Loc: tok.Span}, true
	}
	if tok.Kind == token.Ident {
		name, ok := p.parseDottedName()
		if !ok {
			return ast.Literal{}, false
		}
		return ast.Literal{Text: name.Text, Loc: name.Loc}, true
	}
	p.err(diag.SynExpectLiteral, "expected literal value, got \""+tok.Text+"\"")
	return ast.Literal{}, false
}
