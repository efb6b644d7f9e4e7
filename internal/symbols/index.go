package symbols

import (
	"strings"

	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/source"
)

// ImportRef is one import statement of a file.
type ImportRef struct {
	Path string
	Loc  source.Span
}

// ModuleIndex is the immutable symbol index of a single file snapshot. A new
// edit produces a whole new index; readers holding the old pointer keep a
// consistent view.
type ModuleIndex struct {
	Path       string // normalized file path
	File       source.FileID
	Module     string // dotted module name, empty if the file has none
	ModuleSpan source.Span
	Imports    []ImportRef
	Symbols    []Symbol
	byName     map[string]int
}

// NewModuleIndex assembles an index from already-known parts, used when
// restoring from a cache. Later duplicates are dropped silently; the build
// that produced the parts already reported them.
func NewModuleIndex(path string, file source.FileID, module string, imports []ImportRef, syms []Symbol) *ModuleIndex {
	idx := &ModuleIndex{
		Path:    source.NormalizePath(path),
		File:    file,
		Module:  module,
		Imports: imports,
		byName:  make(map[string]int, len(syms)),
	}
	for _, sym := range syms {
		if _, ok := idx.byName[sym.Name]; ok {
			continue
		}
		idx.Symbols = append(idx.Symbols, sym)
		idx.byName[sym.Name] = len(idx.Symbols) - 1
	}
	return idx
}

// Lookup finds a symbol by its file-local qualified name.
func (x *ModuleIndex) Lookup(name string) (Symbol, bool) {
	if i, ok := x.byName[name]; ok {
		return x.Symbols[i], true
	}
	return Symbol{}, false
}

// Match resolves an identifier against this file: first as a file-local
// qualified name, then with the file's module prefix stripped, so both
// "Frame.Kind" and "example.display.Frame.Kind" find the same declaration.
func (x *ModuleIndex) Match(ident string) (Symbol, bool) {
	if sym, ok := x.Lookup(ident); ok {
		return sym, true
	}
	if x.Module != "" && strings.HasPrefix(ident, x.Module+".") {
		return x.Lookup(ident[len(x.Module)+1:])
	}
	return Symbol{}, false
}

// BuildIndex walks a parsed file and produces its symbol index. Semantic
// diagnostics (duplicate declarations, duplicate module statements) go to
// the reporter; the first declaration always wins.
func BuildIndex(path string, m *ast.Mojom, r diag.Reporter) *ModuleIndex {
	b := indexBuilder{
		idx: &ModuleIndex{
			Path:   source.NormalizePath(path),
			File:   m.File,
			byName: make(map[string]int),
		},
		reporter: r,
	}
	for _, stmt := range m.Stmts {
		b.stmt("", stmt)
	}
	return b.idx
}

type indexBuilder struct {
	idx      *ModuleIndex
	reporter diag.Reporter
}

func (b *indexBuilder) stmt(prefix string, stmt ast.Stmt) {
	switch x := stmt.(type) {
	case *ast.Module:
		b.module(x)
	case *ast.Import:
		b.idx.Imports = append(b.idx.Imports, ImportRef{Path: x.Path, Loc: x.Loc})
	case *ast.Const:
		b.add(Symbol{Name: qualify(prefix, x.Name.Text), Kind: SymbolConst, Span: x.Name.Loc, File: b.idx.File})
	case *ast.Struct:
		name := qualify(prefix, x.Name.Text)
		b.add(Symbol{Name: name, Kind: SymbolStruct, Span: x.Name.Loc, File: b.idx.File, Forward: x.Forward})
		for _, m := range x.Members {
			b.stmt(name, m)
		}
	case *ast.Union:
		b.add(Symbol{Name: qualify(prefix, x.Name.Text), Kind: SymbolUnion, Span: x.Name.Loc, File: b.idx.File})
	case *ast.Enum:
		name := qualify(prefix, x.Name.Text)
		b.add(Symbol{Name: name, Kind: SymbolEnum, Span: x.Name.Loc, File: b.idx.File, Forward: x.Forward})
		for _, v := range x.Values {
			b.add(Symbol{Name: qualify(name, v.Name.Text), Kind: SymbolEnumValue, Span: v.Name.Loc, File: b.idx.File})
		}
	case *ast.Interface:
		name := qualify(prefix, x.Name.Text)
		b.add(Symbol{Name: name, Kind: SymbolInterface, Span: x.Name.Loc, File: b.idx.File})
		for _, m := range x.Members {
			b.stmt(name, m)
		}
	case *ast.Method:
		b.add(Symbol{Name: qualify(prefix, x.Name.Text), Kind: SymbolMethod, Span: x.Name.Loc, File: b.idx.File})
	}
}

func (b *indexBuilder) module(m *ast.Module) {
	if b.idx.Module != "" {
		b.report(diag.SemDuplicateModule, m.Loc, "more than one module statement; the first one applies",
			diag.Note{Span: b.idx.ModuleSpan, Msg: "first module statement here"})
		return
	}
	b.idx.Module = m.Name.Text
	b.idx.ModuleSpan = m.Name.Loc
}

// add inserts a symbol. A definition replaces an earlier same-kind forward
// declaration; any other name collision reports SemDuplicateDeclaration and
// keeps the first symbol.
func (b *indexBuilder) add(sym Symbol) {
	if i, ok := b.idx.byName[sym.Name]; ok {
		existing := &b.idx.Symbols[i]
		if existing.Kind == sym.Kind && (existing.Forward || sym.Forward) {
			if existing.Forward && !sym.Forward {
				*existing = sym
			}
			return
		}
		b.report(diag.SemDuplicateDeclaration, sym.Span,
			"duplicate declaration of \""+sym.Name+"\"",
			diag.Note{Span: existing.Span, Msg: "previously declared here"})
		return
	}
	b.idx.Symbols = append(b.idx.Symbols, sym)
	b.idx.byName[sym.Name] = len(b.idx.Symbols) - 1
}

func (b *indexBuilder) report(code diag.Code, sp source.Span, msg string, notes ...diag.Note) {
	if b.reporter != nil {
		b.reporter.Report(code, diag.SevError, sp, msg, notes)
	}
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
