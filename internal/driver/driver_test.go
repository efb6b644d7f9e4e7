package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mojomls/internal/diag"
	"mojomls/internal/driver"
	"mojomls/internal/project"
	"mojomls/internal/token"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.mojom", "module a.b;\n")

	res, err := driver.Tokenize(path, 16)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if len(res.Tokens) == 0 || res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatalf("token stream not terminated with EOF: %v", res.Tokens)
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.mojom", "struct S { int32 x; };\nstruct S { bool b; };\n")

	res, err := driver.CheckFile(path, 0, 64)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SemDuplicateDeclaration {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SemDuplicateDeclaration, got %v", res.Bag.Items())
	}
	if _, ok := res.Index.Lookup("S"); !ok {
		t.Error("S not indexed")
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "frame.mojom", "module disp;\nstruct Frame { uint64 id; };\n")
	writeFile(t, dir, "sink.mojom", "module disp;\nimport \"frame.mojom\";\nimport \"missing.mojom\";\ninterface Sink { Submit(Frame f); };\n")

	ws, _, results, err := driver.CheckDir(context.Background(), dir, driver.CheckDirOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	// sorted order: frame.mojom, sink.mojom
	if results[0].Bag.HasErrors() {
		t.Errorf("frame.mojom: unexpected diagnostics: %v", results[0].Bag.Items())
	}
	var unresolved int
	for _, d := range results[1].Bag.Items() {
		if d.Code == diag.SemUnresolvedImport {
			unresolved++
		}
	}
	if unresolved != 1 {
		t.Errorf("sink.mojom: got %d unresolved imports, want 1: %v", unresolved, results[1].Bag.Items())
	}

	sinkPath := filepath.Join(dir, "sink.mojom")
	sym, ok := ws.FindDefinition(sinkPath, "disp.Frame")
	if !ok || sym.Name != "Frame" {
		t.Errorf("workspace resolution: got %+v, ok=%v", sym, ok)
	}
}

func TestCheckDirCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("mojomls-test")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	writeFile(t, dir, "clean.mojom", "module m;\nstruct Ok { bool b; };\n")
	writeFile(t, dir, "broken.mojom", "struct Bad { int32 x }\n")

	_, _, first, err := driver.CheckDir(context.Background(), dir, driver.CheckDirOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range first {
		if r.FromCache {
			t.Errorf("%s: cache hit on cold cache", r.Path)
		}
	}

	_, _, second, err := driver.CheckDir(context.Background(), dir, driver.CheckDirOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range second {
		clean := filepath.Base(r.Path) == "clean.mojom"
		if clean && !r.FromCache {
			t.Errorf("%s: expected cache hit", r.Path)
		}
		// files with diagnostics are reparsed so the diagnostics reappear
		if !clean && r.FromCache {
			t.Errorf("%s: broken file must not restore from cache", r.Path)
		}
	}

	if _, ok := second[0].Index.Lookup("Bad"); !ok {
		t.Error("broken.mojom symbols missing after recheck")
	}
}

func TestCheckDirHonorsExclusions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.mojom", "module k;\n")
	writeFile(t, dir, "out/skip.mojom", "module s;\n")

	manifestPath := writeFile(t, dir, "mojomls.toml", "[check]\nexclude = [\"out\"]\n")
	m, err := project.LoadManifest(manifestPath)
	if err != nil {
		t.Fatal(err)
	}

	_, _, results, err := driver.CheckDir(context.Background(), dir, driver.CheckDirOptions{Manifest: &m})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "keep.mojom" {
		t.Errorf("exclusions not honored: %v", results)
	}
}
