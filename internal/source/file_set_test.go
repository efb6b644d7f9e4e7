package source_test

import (
	"testing"

	"mojomls/internal/source"
)

func TestFileSetAddAndResolve(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mojom", []byte("module foo;\nstruct Bar {};\n"))

	if !fs.HasFile(id) {
		t.Fatalf("HasFile(%d) = false", id)
	}

	// "struct" starts at offset 12, line 2 col 1
	start, end := fs.Resolve(source.Span{File: id, Start: 12, End: 18})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Errorf("end = %+v, want line 2 col 7", end)
	}
}

func TestFileSetFirstLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.mojom", []byte("module foo;"))
	start, _ := fs.Resolve(source.Span{File: id, Start: 7, End: 10})
	if start.Line != 1 || start.Col != 8 {
		t.Errorf("start = %+v, want line 1 col 8", start)
	}
}

func TestFileSetLatestWins(t *testing.T) {
	fs := source.NewFileSet()
	first := fs.AddVirtual("doc.mojom", []byte("module a;"))
	second := fs.AddVirtual("doc.mojom", []byte("module b;"))
	if first == second {
		t.Fatalf("snapshots must get distinct ids")
	}
	latest, ok := fs.GetLatest("doc.mojom")
	if !ok || latest != second {
		t.Errorf("GetLatest = %d, %v; want %d, true", latest, ok, second)
	}
}

func TestFileSetNormalization(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("crlf.mojom", []byte("module foo;\r\nstruct Bar {};\r\n"))
	f := fs.Get(id)
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Errorf("expected FileNormalizedCRLF flag")
	}
	if got := f.GetLine(2); got != "struct Bar {};" {
		t.Errorf("GetLine(2) = %q", got)
	}

	id = fs.AddVirtual("bom.mojom", []byte("\xef\xbb\xbfmodule foo;\n"))
	f = fs.Get(id)
	if f.Flags&source.FileHadBOM == 0 {
		t.Errorf("expected FileHadBOM flag")
	}
	if f.Flags&source.FileVirtual == 0 {
		t.Errorf("virtual flag must survive normalization")
	}
	if got := f.GetLine(1); got != "module foo;" {
		t.Errorf("GetLine(1) = %q", got)
	}
}

func TestGetLineOutOfRange(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.mojom", []byte("one\ntwo"))
	f := fs.Get(id)
	if got := f.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q, want empty", got)
	}
	if got := f.GetLine(2); got != "two" {
		t.Errorf("GetLine(2) = %q, want %q", got, "two")
	}
}
