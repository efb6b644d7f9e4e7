package driver

import (
	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/parser"
	"mojomls/internal/source"
	"mojomls/internal/symbols"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Mojom   *ast.Mojom
	Bag     *diag.Bag
}

// ParseFile loads and parses one file.
func ParseFile(path string, maxErrors uint, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	m := parser.Parse(fs, fileID, parser.Options{MaxErrors: maxErrors, Reporter: reporter})

	return &ParseResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Mojom:   m,
		Bag:     bag,
	}, nil
}

type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	Mojom   *ast.Mojom
	Index   *symbols.ModuleIndex
	Bag     *diag.Bag
}

// CheckFile parses one file and builds its symbol index, collecting
// lexical, syntactic and semantic diagnostics in one bag.
func CheckFile(path string, maxErrors uint, maxDiagnostics int) (*CheckResult, error) {
	pr, err := ParseFile(path, maxErrors, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: pr.Bag})
	idx := symbols.BuildIndex(path, pr.Mojom, reporter)
	return &CheckResult{
		FileSet: pr.FileSet,
		File:    pr.File,
		Mojom:   pr.Mojom,
		Index:   idx,
		Bag:     pr.Bag,
	}, nil
}
