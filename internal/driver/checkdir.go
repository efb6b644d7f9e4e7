package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mojomls/internal/diag"
	"mojomls/internal/parser"
	"mojomls/internal/project"
	"mojomls/internal/source"
	"mojomls/internal/symbols"
)

type CheckDirOptions struct {
	MaxErrors      uint
	MaxDiagnostics int
	Jobs           int
	Cache          *DiskCache        // nil disables caching
	Manifest       *project.Manifest // nil means no exclusions
}

// CheckDirResult is the outcome for one file of a directory check.
type CheckDirResult struct {
	Path      string
	FileID    source.FileID
	Index     *symbols.ModuleIndex
	Bag       *diag.Bag
	FromCache bool
}

// listMojomFiles returns a sorted list of *.mojom files under dir, honoring
// manifest exclusions.
func listMojomFiles(dir string, manifest *project.Manifest) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if manifest != nil && manifest.Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, ".mojom") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir parses and indexes every *.mojom file under dir in parallel,
// then validates imports across the collected workspace. Unchanged files
// whose cached run was clean are restored from the disk cache instead of
// being reparsed. The returned FileSet resolves every span in the result
// bags.
func CheckDir(ctx context.Context, dir string, opts CheckDirOptions) (*symbols.Workspace, *source.FileSet, []CheckDirResult, error) {
	fileSet := source.NewFileSet()

	files, err := listMojomFiles(dir, opts.Manifest)
	if err != nil {
		return nil, nil, nil, err
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}

	ws := symbols.NewWorkspace(dir)
	if len(files) == 0 {
		return ws, fileSet, nil, nil
	}

	// FileSet mutation is not safe concurrently, load everything up front.
	results := make([]CheckDirResult, len(files))
	for i, path := range files {
		results[i] = CheckDirResult{Path: path, Bag: diag.NewBag(maxDiag)}
		id, err := fileSet.Load(path)
		if err != nil {
			results[i].Bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.ProjLoadFileError,
				Message:  "cannot load file: " + err.Error(),
			})
			continue
		}
		results[i].FileID = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range results {
		res := &results[i]
		if res.Bag.HasErrors() { // load failed
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			file := fileSet.Get(res.FileID)
			if payload, hit, _ := opts.Cache.Get(file.Hash); hit && payload.ErrorCount == 0 {
				res.Index = payloadToIndex(res.Path, res.FileID, payload)
				res.FromCache = true
				return nil
			}

			reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
			m := parser.Parse(fileSet, res.FileID,
				parser.Options{MaxErrors: opts.MaxErrors, Reporter: reporter})
			res.Index = symbols.BuildIndex(res.Path, m, reporter)

			if opts.Cache != nil {
				// Put failures only cost a reparse next run.
				_ = opts.Cache.Put(file.Hash, indexToPayload(res.Index, res.Bag.Len()))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	for i := range results {
		if results[i].Index != nil {
			ws.Install(results[i].Index)
		}
	}
	for i := range results {
		res := &results[i]
		if res.Index == nil {
			continue
		}
		ws.CheckImports(res.Index, diag.BagReporter{Bag: res.Bag})
		res.Bag.Sort()
	}
	return ws, fileSet, results, nil
}
