package parser_test

import (
	"strings"
	"testing"

	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/parser"
	"mojomls/internal/source"
)

func parseText(t *testing.T, text string) (*ast.Mojom, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mojom", []byte(text))
	bag := diag.NewBag(128)
	m := parser.Parse(fs, id, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return m, bag
}

func TestParseCompleteFile(t *testing.T) {
	text := strings.Join([]string{
		`module example.screen;`,
		`import "services/display/frame.mojom";`,
		``,
		`const uint32 kMaxFrames = 16;`,
		``,
		`[Stable]`,
		`enum Rotation {`,
		`  NONE,`,
		`  CW_90 = 1,`,
		`  CW_180 = 2,`,
		`  CW_270 = CW_180,`,
		`};`,
		``,
		`struct Bounds {`,
		`  int32 x;`,
		`  int32 y@2;`,
		`  uint32 width = 0;`,
		`  enum Anchor { TOP, BOTTOM };`,
		`  const int8 kDepth = -1;`,
		`};`,
		``,
		`union Payload {`,
		`  Bounds bounds;`,
		`  array<uint8> raw;`,
		`};`,
		``,
		`interface Screen {`,
		`  SetBounds(Bounds bounds);`,
		`  GetBounds() => (Bounds bounds);`,
		`  Flush() => ();`,
		`};`,
	}, "\n")

	m, bag := parseText(t, text)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(m.Stmts) != 7 {
		t.Fatalf("got %d statements, want 7", len(m.Stmts))
	}

	mod, ok := m.Stmts[0].(*ast.Module)
	if !ok || mod.Name.Text != "example.screen" {
		t.Errorf("statement 0: got %#v", m.Stmts[0])
	}
	imp, ok := m.Stmts[1].(*ast.Import)
	if !ok || imp.Path != "services/display/frame.mojom" {
		t.Errorf("statement 1: got %#v", m.Stmts[1])
	}

	enum, ok := m.Stmts[3].(*ast.Enum)
	if !ok {
		t.Fatalf("statement 3: got %T", m.Stmts[3])
	}
	if len(enum.Values) != 4 {
		t.Errorf("enum values: got %d, want 4", len(enum.Values))
	}
	if len(enum.Attrs) != 1 || enum.Attrs[0].Name.Text != "Stable" {
		t.Errorf("enum attrs: got %v", enum.Attrs)
	}
	if enum.Values[3].Value == nil || enum.Values[3].Value.Text != "CW_180" {
		t.Errorf("enum reference value: got %v", enum.Values[3].Value)
	}

	st, ok := m.Stmts[4].(*ast.Struct)
	if !ok {
		t.Fatalf("statement 4: got %T", m.Stmts[4])
	}
	if len(st.Members) != 5 {
		t.Fatalf("struct members: got %d, want 5", len(st.Members))
	}
	fieldY := st.Members[1].(*ast.StructField)
	if fieldY.Ordinal == nil || fieldY.Ordinal.Value != 2 {
		t.Errorf("field y ordinal: got %v", fieldY.Ordinal)
	}
	fieldW := st.Members[2].(*ast.StructField)
	if fieldW.Default == nil || fieldW.Default.Text != "0" {
		t.Errorf("field width default: got %v", fieldW.Default)
	}
	if _, ok := st.Members[3].(*ast.Enum); !ok {
		t.Errorf("nested enum: got %T", st.Members[3])
	}
	nestedConst, ok := st.Members[4].(*ast.Const)
	if !ok || nestedConst.Value.Text != "-1" {
		t.Errorf("nested const: got %#v", st.Members[4])
	}

	iface, ok := m.Stmts[6].(*ast.Interface)
	if !ok {
		t.Fatalf("statement 6: got %T", m.Stmts[6])
	}
	if len(iface.Members) != 3 {
		t.Fatalf("interface members: got %d, want 3", len(iface.Members))
	}
	setBounds := iface.Members[0].(*ast.Method)
	if setBounds.Response != nil {
		t.Error("SetBounds should have no response")
	}
	getBounds := iface.Members[1].(*ast.Method)
	if getBounds.Response == nil || len(getBounds.Response.Params) != 1 {
		t.Errorf("GetBounds response: got %v", getBounds.Response)
	}
	flush := iface.Members[2].(*ast.Method)
	if flush.Response == nil || len(flush.Response.Params) != 0 {
		t.Errorf("Flush response: got %v", flush.Response)
	}
}

func TestMissingFieldSemicolon(t *testing.T) {
	text := "struct Bar { int32 x }"
	m, bag := parseText(t, text)

	if got := bag.Len(); got != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", got, bag.Items())
	}
	d := bag.Items()[0]
	if d.Code != diag.SynExpectSemicolon {
		t.Errorf("code: got %v, want SynExpectSemicolon", d.Code)
	}
	// anchored at the token following 'x', the '}'
	wantStart := uint32(strings.Index(text, "}"))
	if d.Primary.Start != wantStart || d.Primary.End != wantStart+1 {
		t.Errorf("span: got [%d,%d), want [%d,%d)", d.Primary.Start, d.Primary.End, wantStart, wantStart+1)
	}

	// the struct and its field survive in the tree
	if len(m.Stmts) != 1 {
		t.Fatalf("got %d statements: %#v", len(m.Stmts), m.Stmts)
	}
	st, ok := m.Stmts[0].(*ast.Struct)
	if !ok {
		t.Fatalf("got %T, want *ast.Struct", m.Stmts[0])
	}
	if len(st.Members) != 1 {
		t.Fatalf("struct members: got %d, want 1", len(st.Members))
	}
	if f, ok := st.Members[0].(*ast.StructField); !ok || f.Name.Text != "x" {
		t.Errorf("member: got %#v", st.Members[0])
	}
}

func TestForwardDeclarations(t *testing.T) {
	m, bag := parseText(t, "struct Frame;\nenum Mode;\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	st := m.Stmts[0].(*ast.Struct)
	if !st.Forward {
		t.Error("struct not marked forward")
	}
	en := m.Stmts[1].(*ast.Enum)
	if !en.Forward {
		t.Error("enum not marked forward")
	}
}

func TestBodyRequired(t *testing.T) {
	_, bag := parseText(t, "union U;\ninterface I;\n")
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	if len(codes) != 2 || codes[0] != diag.SynBodyRequired || codes[1] != diag.SynBodyRequired {
		t.Errorf("got codes %v, want two SynBodyRequired", codes)
	}
}

func TestTypeSpecs(t *testing.T) {
	text := strings.Join([]string{
		"struct T {",
		"  array<int32, 4> a;",
		"  map<string, array<uint8>> m;",
		"  handle<message_pipe> h;",
		"  foo.mojom.Widget? w;",
		"  associated Observer& obs;",
		"  Factory& req;",
		"  pending_remote<ui.Screen> rem;",
		"  pending_associated_receiver<Sink>? rcv;",
		"};",
	}, "\n")
	m, bag := parseText(t, text)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	st := m.Stmts[0].(*ast.Struct)
	field := func(i int) *ast.StructField { return st.Members[i].(*ast.StructField) }

	a := field(0).Type
	if a.Kind != ast.TypeArray || a.Size == nil || a.Size.Text != "4" || a.Elem.Name.Text != "int32" {
		t.Errorf("array type: %#v", a)
	}
	mp := field(1).Type
	if mp.Kind != ast.TypeMap || mp.Key.Text != "string" || mp.Elem.Kind != ast.TypeArray {
		t.Errorf("map type: %#v", mp)
	}
	h := field(2).Type
	if h.Kind != ast.TypeHandle || h.Name.Text != "message_pipe" {
		t.Errorf("handle type: %#v", h)
	}
	w := field(3).Type
	if w.Kind != ast.TypeBasic || w.Name.Text != "foo.mojom.Widget" || !w.Nullable {
		t.Errorf("dotted nullable type: %#v", w)
	}
	obs := field(4).Type
	if obs.Kind != ast.TypeRequest || !obs.Associated || obs.Name.Text != "Observer" {
		t.Errorf("associated request type: %#v", obs)
	}
	req := field(5).Type
	if req.Kind != ast.TypeRequest || req.Associated {
		t.Errorf("request type: %#v", req)
	}
	rem := field(6).Type
	if rem.Kind != ast.TypePendingRemote || rem.Associated || rem.Elem == nil || rem.Elem.Name.Text != "ui.Screen" {
		t.Errorf("pending remote type: %#v", rem)
	}
	rcv := field(7).Type
	if rcv.Kind != ast.TypePendingReceiver || !rcv.Associated || !rcv.Nullable || rcv.Elem.Name.Text != "Sink" {
		t.Errorf("pending associated receiver type: %#v", rcv)
	}
}

func TestBadMapKey(t *testing.T) {
	_, bag := parseText(t, "struct T { map<array<int8>, bool> m; };")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynBadMapKey {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SynBadMapKey, got %v", bag.Items())
	}
}

func TestTopLevelRecovery(t *testing.T) {
	text := "garbage tokens here;\nstruct Ok { bool b; };\n"
	m, bag := parseText(t, text)
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics for garbage prefix")
	}
	if len(m.Stmts) != 2 {
		t.Fatalf("got %d statements: %#v", len(m.Stmts), m.Stmts)
	}
	if _, ok := m.Stmts[0].(*ast.BadStmt); !ok {
		t.Errorf("statement 0: got %T, want *ast.BadStmt", m.Stmts[0])
	}
	st, ok := m.Stmts[1].(*ast.Struct)
	if !ok || st.Name.Text != "Ok" {
		t.Errorf("statement 1: got %#v", m.Stmts[1])
	}
}

func TestImportPathBadEscape(t *testing.T) {
	m, bag := parseText(t, "import \"a\\qb.mojom\";\n")
	// a single lexical diagnostic for the escape, no parse cascade
	if got := len(bag.Items()); got != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", got, bag.Items())
	}
	if bag.Items()[0].Code != diag.LexBadEscape {
		t.Errorf("got code %v, want LexBadEscape", bag.Items()[0].Code)
	}
	if len(m.Stmts) != 1 {
		t.Fatalf("got %d statements: %#v", len(m.Stmts), m.Stmts)
	}
	imp, ok := m.Stmts[0].(*ast.Import)
	if !ok {
		t.Fatalf("statement 0: got %T, want *ast.Import", m.Stmts[0])
	}
	if imp.Path != `a\qb.mojom` {
		t.Errorf("import path: got %q", imp.Path)
	}
}

func TestMaxErrorsStopsReporting(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mojom", []byte("? ? ? ? ? ? ? ?"))
	bag := diag.NewBag(128)
	parser.Parse(fs, id, parser.Options{MaxErrors: 3, Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() > 3 {
		t.Errorf("got %d diagnostics, want at most 3", bag.Len())
	}
}

func TestMethodOrdinalAndAttrs(t *testing.T) {
	text := "interface I {\n  [Sync] Ping@7() => ();\n};"
	m, bag := parseText(t, text)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	iface := m.Stmts[0].(*ast.Interface)
	meth := iface.Members[0].(*ast.Method)
	if meth.Ordinal == nil || meth.Ordinal.Value != 7 {
		t.Errorf("ordinal: got %v", meth.Ordinal)
	}
	if len(meth.Attrs) != 1 || meth.Attrs[0].Name.Text != "Sync" {
		t.Errorf("attrs: got %v", meth.Attrs)
	}
}
