package lsp

import (
	"sort"
	"strings"

	"mojomls/internal/lexer"
	"mojomls/internal/source"
	"mojomls/internal/token"
)

// lexDocument tokenizes text as a standalone snapshot for position queries.
// Lexical errors are ignored here; the diagnostics pipeline reports them.
func lexDocument(path, text string) []token.Token {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(text))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// tokenAtOffset finds the token covering offset. An offset sitting exactly at
// a token's end still counts, so a cursor right after an identifier hits it.
func tokenAtOffset(tokens []token.Token, offset uint32) (int, bool) {
	if len(tokens) == 0 {
		return 0, false
	}
	idx := sort.Search(len(tokens), func(i int) bool { return tokens[i].Span.End > offset })
	if idx < len(tokens) {
		tok := tokens[idx]
		if tok.Span.Start <= offset && offset < tok.Span.End {
			return idx, true
		}
	}
	if idx > 0 {
		prev := tokens[idx-1]
		if prev.Span.Start <= offset && offset == prev.Span.End {
			return idx - 1, true
		}
	}
	return 0, false
}

// identifierAt expands the identifier token at index i to the full dotted
// name it belongs to, in both directions.
func identifierAt(tokens []token.Token, i int) string {
	lo, hi := i, i
	for lo >= 2 && tokens[lo-1].Kind == token.Dot && tokens[lo-2].Kind == token.Ident {
		lo -= 2
	}
	for hi+2 < len(tokens) && tokens[hi+1].Kind == token.Dot && tokens[hi+2].Kind == token.Ident {
		hi += 2
	}
	parts := make([]string, 0, (hi-lo)/2+1)
	for j := lo; j <= hi; j += 2 {
		parts = append(parts, tokens[j].Text)
	}
	return strings.Join(parts, ".")
}
