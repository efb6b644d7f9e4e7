package parser

import (
	"mojomls/internal/ast"
	"mojomls/internal/diag"
	"mojomls/internal/lexer"
	"mojomls/internal/source"
	"mojomls/internal/token"
)

type Options struct {
	MaxErrors     uint
	currentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget has been used up.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.currentErrors >= o.MaxErrors
}

// Parser holds the state for one file. It never aborts on malformed input:
// damaged regions become ast.BadStmt and parsing resumes at the next
// statement boundary.
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	file     source.FileID
	opts     Options
	lastSpan source.Span
}

// ParseFile parses one file into an ast.Mojom. The lexer must be positioned
// at the start of the file.
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, fileID source.FileID, opts Options) *ast.Mojom {
	p := Parser{
		lx:       lx,
		fs:       fs,
		file:     fileID,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	return p.parseMojom()
}

// Parse is a convenience wrapper that builds the lexer itself, sharing the
// reporter between lexing and parsing.
func Parse(fs *source.FileSet, fileID source.FileID, opts Options) *ast.Mojom {
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: opts.Reporter})
	return ParseFile(fs, lx, fileID, opts)
}

func (p *Parser) parseMojom() *ast.Mojom {
	start := p.lx.Peek().Span
	m := &ast.Mojom{File: p.file}
	for !p.at(token.EOF) {
		stmt, ok := p.parseTopLevel()
		if !ok {
			sp := p.resyncStmt()
			stmt = &ast.BadStmt{Loc: sp}
		}
		if stmt != nil {
			m.Stmts = append(m.Stmts, stmt)
		}
	}
	m.Loc = start.Cover(p.lastSpan)
	return m
}

// parseTopLevel dispatches on the keyword after any attribute sections.
func (p *Parser) parseTopLevel() (ast.Stmt, bool) {
	attrs := p.parseAttrs()
	switch p.lx.Peek().Kind {
	case token.KwModule:
		return p.parseModule(attrs)
	case token.KwImport:
		return p.parseImport(attrs)
	case token.KwConst:
		return p.parseConst(attrs)
	case token.KwStruct:
		return p.parseStruct(attrs)
	case token.KwUnion:
		return p.parseUnion(attrs)
	case token.KwEnum:
		return p.parseEnum(attrs)
	case token.KwInterface:
		return p.parseInterface(attrs)
	default:
		p.err(diag.SynUnexpectedTopLevel, "unexpected top-level construct, expected module, import, const, struct, union, enum or interface")
		return nil, false
	}
}

// resyncStmt skips to the next statement boundary: past the next ';' at the
// current nesting depth, or up to a top-level starter keyword, or EOF.
func (p *Parser) resyncStmt() source.Span {
	start := p.lx.Peek().Span
	sp := p.resyncUntil(token.Semicolon, token.KwModule, token.KwImport, token.KwConst,
		token.KwStruct, token.KwUnion, token.KwEnum, token.KwInterface)
	if p.at(token.Semicolon) {
		p.advance()
		sp = start.Cover(p.lastSpan)
	}
	return sp
}
