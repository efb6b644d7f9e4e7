// Package ast defines the syntax tree produced by the parser. Trees are
// immutable after parsing; a damaged region of the source becomes a BadStmt
// so partial files still index.
package ast

import (
	"mojomls/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
}

// Stmt is a statement node: anything that can appear at file scope or inside
// a struct or interface body.
type Stmt interface {
	Node
	stmt()
}

// Mojom is the root node for a single parsed file.
type Mojom struct {
	File  source.FileID
	Stmts []Stmt
	Loc   source.Span
}

func (m *Mojom) Span() source.Span { return m.Loc }

// Name is an identifier with its source location. Module names keep their
// dots in Text ("foo.bar").
type Name struct {
	Text string
	Loc  source.Span
}

func (n Name) Span() source.Span { return n.Loc }

// Literal is a numeric, boolean, string or identifier constant value, kept
// as raw source text.
type Literal struct {
	Text string
	Loc  source.Span
}

func (l *Literal) Span() source.Span { return l.Loc }

// Ordinal is an explicit field or parameter ordinal, `@3`.
type Ordinal struct {
	Value uint32
	Loc   source.Span
}

func (o *Ordinal) Span() source.Span { return o.Loc }

// Attr is one attribute from a bracketed section, `[Extensible, MinVersion=2]`.
// Value is the raw text after '=' or empty when the attribute has no value.
type Attr struct {
	Name  Name
	Value string
	Loc   source.Span
}

func (a *Attr) Span() source.Span { return a.Loc }

// BadStmt covers a source region the parser could not interpret. It keeps
// the tree contiguous so later statements still attach.
type BadStmt struct {
	Loc source.Span
}

func (s *BadStmt) Span() source.Span { return s.Loc }
func (s *BadStmt) stmt()             {}
