package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"mojomls/internal/source"
	"mojomls/internal/symbols"
)

// Increment when IndexPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// Digest keys the cache by file content hash.
type Digest = [32]byte

// DiskCache persists per-file symbol indexes keyed by content hash, so a
// batch check can skip reparsing files that have not changed since the last
// run. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// IndexPayload is the serialized form of a file's symbol index plus its
// diagnostic outcome. Spans are stored as byte offsets; the cache key is the
// content hash, so offsets stay valid for whichever snapshot restores them.
type IndexPayload struct {
	Schema       uint16
	Module       string
	ImportPaths  []string
	ImportStarts []uint32
	ImportEnds   []uint32
	SymNames     []string
	SymKinds     []uint8
	SymForward   []bool
	SymStarts    []uint32
	SymEnds      []uint32
	ErrorCount   int
}

// OpenDiskCache initializes a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "idx", hex.EncodeToString(key[:])+".mp")
}

// Put writes a payload atomically.
func (c *DiskCache) Put(key Digest, payload *IndexPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; ok is false on a miss or schema mismatch.
func (c *DiskCache) Get(key Digest) (*IndexPayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload IndexPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// indexToPayload flattens a built index for caching.
func indexToPayload(idx *symbols.ModuleIndex, errorCount int) *IndexPayload {
	p := &IndexPayload{
		Schema:     diskCacheSchemaVersion,
		Module:     idx.Module,
		ErrorCount: errorCount,
	}
	for _, imp := range idx.Imports {
		p.ImportPaths = append(p.ImportPaths, imp.Path)
		p.ImportStarts = append(p.ImportStarts, imp.Loc.Start)
		p.ImportEnds = append(p.ImportEnds, imp.Loc.End)
	}
	for _, sym := range idx.Symbols {
		p.SymNames = append(p.SymNames, sym.Name)
		p.SymKinds = append(p.SymKinds, uint8(sym.Kind))
		p.SymForward = append(p.SymForward, sym.Forward)
		p.SymStarts = append(p.SymStarts, sym.Span.Start)
		p.SymEnds = append(p.SymEnds, sym.Span.End)
	}
	return p
}

// payloadToIndex restores a ModuleIndex against a freshly loaded snapshot of
// the same content.
func payloadToIndex(path string, fileID source.FileID, p *IndexPayload) *symbols.ModuleIndex {
	imports := make([]symbols.ImportRef, len(p.ImportPaths))
	for i, ip := range p.ImportPaths {
		imports[i] = symbols.ImportRef{
			Path: ip,
			Loc:  source.Span{File: fileID, Start: p.ImportStarts[i], End: p.ImportEnds[i]},
		}
	}
	syms := make([]symbols.Symbol, len(p.SymNames))
	for i := range p.SymNames {
		syms[i] = symbols.Symbol{
			Name:    p.SymNames[i],
			Kind:    symbols.SymbolKind(p.SymKinds[i]),
			Span:    source.Span{File: fileID, Start: p.SymStarts[i], End: p.SymEnds[i]},
			File:    fileID,
			Forward: p.SymForward[i],
		}
	}
	return symbols.NewModuleIndex(path, fileID, p.Module, imports, syms)
}
