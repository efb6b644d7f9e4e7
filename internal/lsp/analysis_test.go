package lsp

import (
	"strings"
	"testing"

	"mojomls/internal/token"
)

func TestTokenAtOffset(t *testing.T) {
	text := "module foo.bar;\nstruct Baz {};\n"
	tokens := lexDocument("t.mojom", text)
	if len(tokens) == 0 {
		t.Fatalf("no tokens")
	}

	at := func(sub string, delta int) uint32 {
		idx := strings.Index(text, sub)
		if idx < 0 {
			t.Fatalf("substring %q not found", sub)
		}
		return uint32(idx + delta)
	}

	i, ok := tokenAtOffset(tokens, at("Baz", 1))
	if !ok || tokens[i].Kind != token.Ident || tokens[i].Text != "Baz" {
		t.Fatalf("expected Baz, got %+v ok=%v", tokens[i], ok)
	}

	// Cursor right after the last identifier byte still hits it.
	i, ok = tokenAtOffset(tokens, at("Baz", 3))
	if !ok || tokens[i].Text != "Baz" {
		t.Fatalf("expected Baz at end offset, got %+v ok=%v", tokens[i], ok)
	}

	if _, ok := tokenAtOffset(nil, 0); ok {
		t.Fatalf("expected no token in empty stream")
	}
}

func TestIdentifierAtExpandsDottedName(t *testing.T) {
	text := "struct Use {\n  foo.bar.StructX field;\n};\n"
	tokens := lexDocument("t.mojom", text)

	for _, sub := range []string{"foo", "bar.", "StructX"} {
		off := uint32(strings.Index(text, sub))
		i, ok := tokenAtOffset(tokens, off)
		if !ok || tokens[i].Kind != token.Ident {
			t.Fatalf("no identifier at %q", sub)
		}
		if got := identifierAt(tokens, i); got != "foo.bar.StructX" {
			t.Fatalf("identifierAt from %q = %q", sub, got)
		}
	}

	off := uint32(strings.Index(text, "field"))
	i, ok := tokenAtOffset(tokens, off)
	if !ok {
		t.Fatalf("no token at field")
	}
	if got := identifierAt(tokens, i); got != "field" {
		t.Fatalf("identifierAt(field) = %q", got)
	}
}
