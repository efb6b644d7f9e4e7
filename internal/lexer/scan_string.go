package lexer

import (
	"mojomls/internal/diag"
	"mojomls/internal/token"
)

// scanString scans "..." with escape validation. Recognized escapes are
// \" \\ \/ \b \f \n \r \t; anything else after a backslash reports
// LexBadEscape but the literal still closes normally. A raw newline or EOF
// before the closing quote reports LexUnterminatedString.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			// A bad escape was already reported; the literal stays usable.
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			switch lx.cursor.Bump() {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			default:
				lx.report(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid escape sequence in string literal")
			}
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
