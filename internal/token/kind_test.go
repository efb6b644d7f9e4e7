package token_test

import (
	"testing"

	"mojomls/internal/token"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		kind token.Kind
		want string
	}{
		{token.KwModule, "module"},
		{token.KwInterface, "interface"},
		{token.FatArrow, "=>"},
		{token.Semicolon, ";"},
		{token.Ident, "Ident"},
		{token.EOF, "EOF"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestTriviaKindString(t *testing.T) {
	cases := []struct {
		kind token.TriviaKind
		want string
	}{
		{token.TriviaSpace, "Space"},
		{token.TriviaNewline, "Newline"},
		{token.TriviaLineComment, "LineComment"},
		{token.TriviaBlockComment, "BlockComment"},
		{token.TriviaKind(200), "Unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("TriviaKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("struct"); !ok || k != token.KwStruct {
		t.Errorf("LookupKeyword(struct) = %v, %v", k, ok)
	}
	if k, ok := token.LookupKeyword("default"); !ok || k != token.DefaultLit {
		t.Errorf("LookupKeyword(default) = %v, %v", k, ok)
	}
	if _, ok := token.LookupKeyword("Struct"); ok {
		t.Errorf("keywords must be case sensitive")
	}
	if _, ok := token.LookupKeyword("pending_remote"); ok {
		t.Errorf("pending_remote is an identifier, not a keyword")
	}
}

func TestTokenClassification(t *testing.T) {
	if !(token.Token{Kind: token.TrueLit}).IsLiteral() {
		t.Errorf("true must classify as literal")
	}
	if !(token.Token{Kind: token.KwHandle}).IsKeyword() {
		t.Errorf("handle must classify as keyword")
	}
	if !(token.Token{Kind: token.At}).IsPunct() {
		t.Errorf("@ must classify as punctuation")
	}
	if (token.Token{Kind: token.Ident}).IsKeyword() {
		t.Errorf("identifier must not classify as keyword")
	}
	if !(token.Token{Kind: token.LBracket}).StartsStatement() {
		t.Errorf("attribute opener starts a statement")
	}
}
