package lexer

import (
	"fmt"

	"mojomls/internal/diag"
	"mojomls/internal/token"
)

// scanPunct scans punctuation, longest match first ('=>' before '=').
// Unknown bytes become Invalid tokens with a LexUnknownChar report.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	if lx.try2('=', '>') {
		return emit(token.FatArrow)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '&':
		return emit(token.Amp)
	case ',':
		return emit(token.Comma)
	case '=':
		return emit(token.Assign)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '?':
		return emit(token.Question)
	case ';':
		return emit(token.Semicolon)
	case '@':
		return emit(token.At)
	case '.':
		return emit(token.Dot)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", rune(ch)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) try2(b0, b1 byte) bool {
	c0, c1, ok := lx.cursor.Peek2()
	if !ok || c0 != b0 || c1 != b1 {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
