package parser

import (
	"slices"

	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/source"
	"mojomls/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// advance consumes the next token and tracks lastSpan for diagnostics.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// afterLast is a zero-width span just past the last consumed token. Used to
// anchor "expected X" diagnostics where X should have been.
func (p *Parser) afterLast() source.Span {
	return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
}

// diagnosticSpan is the best span for an unexpected-token report. At EOF the
// peeked span is empty, so anchor past the last token instead.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && peek.Span.Len() == 0 {
		return p.afterLast()
	}
	return peek.Span
}

// expect consumes a token of kind k or reports and leaves the stream alone.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectSemicolon reports a missing ';' anchored at the token found instead,
// then continues without consuming anything.
func (p *Parser) expectSemicolon() bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	p.report(diag.SynExpectSemicolon, diag.SevError, p.diagnosticSpan(), "expected ';'")
	return false
}

// closeDecl consumes the statement-final ';' after a declaration body. The
// report is skipped when the body already produced errors, so one broken
// member does not cascade into a second diagnostic on the '}'.
func (p *Parser) closeDecl(errsBefore uint) {
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	if p.opts.currentErrors > errsBefore {
		return
	}
	p.report(diag.SynExpectSemicolon, diag.SevError, p.diagnosticSpan(), "expected ';'")
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.currentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// resyncUntil skips tokens until one of the stop kinds appears at the
// current nesting depth. Braces opened while skipping are balanced before
// any stop kind applies. The stop token itself is not consumed.
func (p *Parser) resyncUntil(stops ...token.Kind) source.Span {
	start := p.lx.Peek().Span
	depth := 0
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if depth == 0 && slices.Contains(stops, k) {
			break
		}
		switch k {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
	}
	return start.Cover(p.lastSpan)
}

// parseName expects an identifier.
func (p *Parser) parseName() (ast.Name, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return ast.Name{Text: tok.Text, Loc: tok.Span}, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return ast.Name{}, false
}

// parseDottedName parses Ident ('.' Ident)* into one Name with the dots kept
// in Text.
func (p *Parser) parseDottedName() (ast.Name, bool) {
	first, ok := p.parseName()
	if !ok {
		return ast.Name{}, false
	}
	text := first.Text
	sp := first.Loc
	for p.at(token.Dot) {
		p.advance()
		part, ok := p.parseName()
		if !ok {
			return ast.Name{Text: text, Loc: sp}, false
		}
		text += "." + part.Text
		sp = sp.Cover(part.Loc)
	}
	return ast.Name{Text: text, Loc: sp}, true
}
