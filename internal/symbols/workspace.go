package symbols

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"mojomls/internal/diag"
	"mojomls/internal/parser"
	"mojomls/internal/source"
)

// Workspace holds the per-file indexes of every known file under one root.
// Each edit replaces a file's *ModuleIndex wholesale, so readers never see a
// half-updated index. Imported files that are not open in the editor are
// loaded from disk on demand.
type Workspace struct {
	mu      sync.RWMutex
	root    string
	fs      *source.FileSet
	indexes map[string]*ModuleIndex

	// merged maps module-qualified names ("example.display.Frame") over all
	// indexed files. Rebuilt lazily when gen moves past mergedGen.
	gen       uint64
	mergedGen uint64
	merged    map[string]Symbol
}

// NewWorkspace creates an empty workspace rooted at root. Import paths
// resolve relative to the root first, then relative to the importing file.
func NewWorkspace(root string) *Workspace {
	return &Workspace{
		root:    source.NormalizePath(root),
		fs:      source.NewFileSet(),
		indexes: make(map[string]*ModuleIndex),
	}
}

// Root returns the workspace root path.
func (w *Workspace) Root() string {
	return w.root
}

// Resolve converts a span into line/column positions.
func (w *Workspace) Resolve(sp source.Span) (start, end source.LineCol) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fs.Resolve(sp)
}

// FileOf returns the file snapshot a span points into.
func (w *Workspace) FileOf(id source.FileID) *source.File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fs.Get(id)
}

// Update parses content as the new snapshot of path, swaps in a fresh index
// and returns it together with all lexical, syntactic and semantic
// diagnostics of that snapshot.
func (w *Workspace) Update(path string, content []byte) (*ModuleIndex, *diag.Bag) {
	w.mu.Lock()
	defer w.mu.Unlock()

	bag := diag.NewBag(256)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	id := w.fs.AddVirtual(path, content)
	m := parser.Parse(w.fs, id, parser.Options{Reporter: reporter})
	idx := BuildIndex(path, m, reporter)

	w.indexes[idx.Path] = idx
	w.gen++
	w.checkImportsLocked(idx, reporter)
	return idx, bag
}

// Install swaps in an index built elsewhere, for example restored from a
// cache, without reparsing anything.
func (w *Workspace) Install(idx *ModuleIndex) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.indexes[idx.Path] = idx
	w.gen++
}

// Remove forgets the index for path. Files importing it will report it as
// unresolved on their next update.
func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.indexes, source.NormalizePath(path))
	w.gen++
}

// Get returns the current index for path, if any.
func (w *Workspace) Get(path string) (*ModuleIndex, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	idx, ok := w.indexes[source.NormalizePath(path)]
	return idx, ok
}

// CheckImports reports SemUnresolvedImport for every import of idx that
// resolves to no file on disk and no open document.
func (w *Workspace) CheckImports(idx *ModuleIndex, r diag.Reporter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.checkImportsLocked(idx, r)
}

func (w *Workspace) checkImportsLocked(idx *ModuleIndex, r diag.Reporter) {
	if r == nil {
		return
	}
	for _, imp := range idx.Imports {
		if _, ok := w.resolveImportLocked(idx.Path, imp.Path); !ok {
			r.Report(diag.SemUnresolvedImport, diag.SevError, imp.Loc,
				"cannot resolve import \""+imp.Path+"\"", nil)
		}
	}
}

// resolveImportLocked maps an import string to a workspace path: already
// indexed paths win, then files on disk under the root, then siblings of the
// importing file.
func (w *Workspace) resolveImportLocked(fromPath, importPath string) (string, bool) {
	candidates := []string{
		source.NormalizePath(filepath.Join(w.root, importPath)),
		source.NormalizePath(filepath.Join(filepath.Dir(fromPath), importPath)),
	}
	for _, c := range candidates {
		if _, ok := w.indexes[c]; ok {
			return c, true
		}
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c, true
		}
	}
	return "", false
}

// ensureLoadedLocked makes sure path has an index, parsing it from disk when
// the editor has never opened it. Diagnostics of disk-only files are not
// published anywhere, so they are discarded here.
func (w *Workspace) ensureLoadedLocked(path string) (*ModuleIndex, bool) {
	if idx, ok := w.indexes[path]; ok {
		return idx, true
	}
	id, err := w.fs.Load(path)
	if err != nil {
		return nil, false
	}
	m := parser.Parse(w.fs, id, parser.Options{})
	idx := BuildIndex(path, m, nil)
	w.indexes[idx.Path] = idx
	w.gen++
	return idx, true
}

// FindDefinition resolves ident starting from the file at fromPath: the
// file itself first, then its imports in breadth-first order, then the
// workspace-wide module-qualified table.
func (w *Workspace) FindDefinition(fromPath, ident string) (Symbol, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	start, ok := w.indexes[source.NormalizePath(fromPath)]
	if !ok {
		return Symbol{}, false
	}
	if sym, ok := start.Match(ident); ok {
		return sym, true
	}

	visited := map[string]bool{start.Path: true}
	queue := []*ModuleIndex{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, imp := range cur.Imports {
			path, ok := w.resolveImportLocked(cur.Path, imp.Path)
			if !ok || visited[path] {
				continue
			}
			visited[path] = true
			idx, ok := w.ensureLoadedLocked(path)
			if !ok {
				continue
			}
			if sym, ok := idx.Match(ident); ok {
				return sym, true
			}
			queue = append(queue, idx)
		}
	}

	w.rebuildMergedLocked()
	sym, ok := w.merged[ident]
	return sym, ok
}

// rebuildMergedLocked refreshes the module-qualified symbol table if any
// index changed since it was last built. Paths are walked in sorted order so
// collisions resolve deterministically, first path wins.
func (w *Workspace) rebuildMergedLocked() {
	if w.merged != nil && w.mergedGen == w.gen {
		return
	}
	paths := make([]string, 0, len(w.indexes))
	for p := range w.indexes {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	merged := make(map[string]Symbol)
	for _, p := range paths {
		idx := w.indexes[p]
		if idx.Module == "" {
			continue
		}
		for _, sym := range idx.Symbols {
			key := idx.Module + "." + sym.Name
			if _, exists := merged[key]; !exists {
				merged[key] = sym
			}
		}
	}
	w.merged = merged
	w.mergedGen = w.gen
}
