package parser

import (
	"strconv"

	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/token"
)

// parseTypeSpec parses one type reference:
//
//	array<T> array<T, N> map<K, V> handle handle<kind>
//	associated Name Name& Name.Nested dotted.names
//
// with an optional trailing '?' for nullability.
func (p *Parser) parseTypeSpec() (*ast.TypeSpec, bool) {
	var (
		ts *ast.TypeSpec
		ok bool
	)
	switch p.lx.Peek().Kind {
	case token.KwArray:
		ts, ok = p.parseArrayType()
	case token.KwMap:
		ts, ok = p.parseMapType()
	case token.KwHandle:
		ts, ok = p.parseHandleType()
	case token.KwAssociated:
		kw := p.advance()
		ts, ok = p.parseNamedType()
		if ok {
			ts.Associated = true
			ts.Loc = kw.Span.Cover(ts.Loc)
		}
	case token.Ident:
		ts, ok = p.parseNamedType()
	default:
		p.err(diag.SynExpectType, "expected type, got \""+p.lx.Peek().Text+"\"")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if p.at(token.Question) {
		q := p.advance()
		ts.Nullable = true
		ts.Loc = ts.Loc.Cover(q.Span)
	}
	return ts, true
}

// parseNamedType parses a possibly dotted type name with an optional '&'
// interface-request marker. The pending_remote/pending_receiver family
// takes its target interface in angle brackets.
func (p *Parser) parseNamedType() (*ast.TypeSpec, bool) {
	name, ok := p.parseDottedName()
	if !ok {
		return nil, false
	}
	if kind, assoc, pending := pendingTypeKind(name.Text); pending && p.at(token.Lt) {
		p.advance()
		target, ok := p.parseNamedType()
		if !ok {
			return nil, false
		}
		closeTok, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close "+name.Text+" type")
		if !ok {
			return nil, false
		}
		return &ast.TypeSpec{
			Kind:       kind,
			Elem:       target,
			Associated: assoc,
			Loc:        name.Loc.Cover(closeTok.Span),
		}, true
	}
	ts := &ast.TypeSpec{Kind: ast.TypeBasic, Name: name, Loc: name.Loc}
	if p.at(token.Amp) {
		amp := p.advance()
		ts.Kind = ast.TypeRequest
		ts.Loc = ts.Loc.Cover(amp.Span)
	}
	return ts, true
}

func pendingTypeKind(name string) (kind ast.TypeKind, associated, pending bool) {
	switch name {
	case "pending_remote":
		return ast.TypePendingRemote, false, true
	case "pending_receiver":
		return ast.TypePendingReceiver, false, true
	case "pending_associated_remote":
		return ast.TypePendingRemote, true, true
	case "pending_associated_receiver":
		return ast.TypePendingReceiver, true, true
	}
	return ast.TypeBasic, false, false
}

func (p *Parser) parseArrayType() (*ast.TypeSpec, bool) {
	kw := p.advance() // 'array'
	if _, ok := p.expect(token.Lt, diag.SynUnexpectedToken, "expected '<' after 'array'"); !ok {
		return nil, false
	}
	elem, ok := p.parseTypeSpec()
	if !ok {
		return nil, false
	}
	ts := &ast.TypeSpec{Kind: ast.TypeArray, Elem: elem}
	if p.at(token.Comma) {
		p.advance()
		sizeTok, ok := p.expect(token.IntLit, diag.SynBadArraySize, "expected fixed array size")
		if !ok {
			return nil, false
		}
		if _, err := strconv.ParseUint(sizeTok.Text, 0, 32); err != nil {
			p.report(diag.SynBadArraySize, diag.SevError, sizeTok.Span,
				"fixed array size must be a non-negative integer")
			return nil, false
		}
		ts.Size = &ast.Literal{Text: sizeTok.Text, Loc: sizeTok.Span}
	}
	closeTok, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close array type")
	if !ok {
		return nil, false
	}
	ts.Loc = kw.Span.Cover(closeTok.Span)
	return ts, true
}

func (p *Parser) parseMapType() (*ast.TypeSpec, bool) {
	kw := p.advance() // 'map'
	if _, ok := p.expect(token.Lt, diag.SynUnexpectedToken, "expected '<' after 'map'"); !ok {
		return nil, false
	}
	if p.atAny(token.KwArray, token.KwMap, token.KwHandle, token.KwAssociated) {
		p.err(diag.SynBadMapKey, "map key must be a plain type name")
		return nil, false
	}
	key, ok := p.parseDottedName()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' between map key and value"); !ok {
		return nil, false
	}
	value, ok := p.parseTypeSpec()
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close map type")
	if !ok {
		return nil, false
	}
	return &ast.TypeSpec{
		Kind: ast.TypeMap,
		Key:  key,
		Elem: value,
		Loc:  kw.Span.Cover(closeTok.Span),
	}, true
}

func (p *Parser) parseHandleType() (*ast.TypeSpec, bool) {
	kw := p.advance() // 'handle'
	ts := &ast.TypeSpec{Kind: ast.TypeHandle, Loc: kw.Span}
	if p.at(token.Lt) {
		p.advance()
		sub, ok := p.parseName()
		if !ok {
			return nil, false
		}
		closeTok, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close handle type")
		if !ok {
			return nil, false
		}
		ts.Name = sub
		ts.Loc = kw.Span.Cover(closeTok.Span)
	}
	return ts, true
}
