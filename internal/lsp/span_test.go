package lsp

import (
	"testing"

	"mojomls/internal/source"
)

func TestPositionForOffsetUTF16(t *testing.T) {
	fs := source.NewFileSet()
	// "héllo" is 6 bytes, "𝕊" is 4 bytes and 2 UTF-16 units.
	content := "héllo\n𝕊x\n"
	id := fs.AddVirtual("t.mojom", []byte(content))
	file := fs.Get(id)

	tests := []struct {
		offset uint32
		want   position
	}{
		{0, position{Line: 0, Character: 0}},
		{3, position{Line: 0, Character: 2}}, // past the 2-byte é
		{7, position{Line: 1, Character: 0}},
		{11, position{Line: 1, Character: 2}}, // past the surrogate pair
		{12, position{Line: 1, Character: 3}},
		{100, position{Line: 2, Character: 0}}, // clamped to EOF
	}
	for _, tt := range tests {
		if got := positionForOffsetInFile(file, tt.offset); got != tt.want {
			t.Errorf("positionForOffsetInFile(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestOffsetForPositionRoundTrip(t *testing.T) {
	text := "module a;\nstruct 𝕊tore {};\n"
	tests := []struct {
		pos  position
		want int
	}{
		{position{Line: 0, Character: 0}, 0},
		{position{Line: 0, Character: 7}, 7},
		{position{Line: 1, Character: 7}, 17},
		{position{Line: 1, Character: 9}, 21}, // after the surrogate pair
		{position{Line: 5, Character: 0}, len(text)},
	}
	for _, tt := range tests {
		if got := offsetForPosition(text, tt.pos); got != tt.want {
			t.Errorf("offsetForPosition(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestApplyChangesIncremental(t *testing.T) {
	text := "one\ntwo\n"
	next := applyChanges(text, []textDocumentContentChangeEvent{{
		Range: &lspRange{
			Start: position{Line: 1, Character: 0},
			End:   position{Line: 1, Character: 3},
		},
		Text: "TWO",
	}})
	if next != "one\nTWO\n" {
		t.Fatalf("unexpected text %q", next)
	}

	full := applyChanges(next, []textDocumentContentChangeEvent{{Text: "fresh"}})
	if full != "fresh" {
		t.Fatalf("unexpected full replace %q", full)
	}
}
