package ast

import (
	"mojomls/internal/source"
)

// Module is a `module foo.bar;` statement.
type Module struct {
	Attrs []Attr
	Name  Name
	Loc   source.Span
}

func (m *Module) Span() source.Span { return m.Loc }
func (m *Module) stmt()             {}

// Import is an `import "path/to/file.mojom";` statement. Path holds the
// unquoted text.
type Import struct {
	Attrs   []Attr
	Path    string
	PathLoc source.Span
	Loc     source.Span
}

func (i *Import) Span() source.Span { return i.Loc }
func (i *Import) stmt()             {}

// Const is a `const TYPE NAME = VALUE;` statement, valid at file scope and
// inside struct and interface bodies.
type Const struct {
	Attrs []Attr
	Type  *TypeSpec
	Name  Name
	Value Literal
	Loc   source.Span
}

func (c *Const) Span() source.Span { return c.Loc }
func (c *Const) stmt()             {}

// Struct is a struct declaration. Members holds *StructField, *Enum and
// *Const nodes in source order. Forward marks a bodyless declaration,
// `struct Frame;`.
type Struct struct {
	Attrs   []Attr
	Name    Name
	Members []Stmt
	Forward bool
	Loc     source.Span
}

func (s *Struct) Span() source.Span { return s.Loc }
func (s *Struct) stmt()             {}

// StructField is one field inside a struct body.
type StructField struct {
	Attrs   []Attr
	Type    *TypeSpec
	Name    Name
	Ordinal *Ordinal
	Default *Literal
	Loc     source.Span
}

func (f *StructField) Span() source.Span { return f.Loc }
func (f *StructField) stmt()             {}

// Union is a tagged union declaration. Unions always require a body.
type Union struct {
	Attrs  []Attr
	Name   Name
	Fields []*UnionField
	Loc    source.Span
}

func (u *Union) Span() source.Span { return u.Loc }
func (u *Union) stmt()             {}

// UnionField is one variant inside a union body.
type UnionField struct {
	Attrs   []Attr
	Type    *TypeSpec
	Name    Name
	Ordinal *Ordinal
	Loc     source.Span
}

func (f *UnionField) Span() source.Span { return f.Loc }
func (f *UnionField) stmt()             {}

// Enum is an enum declaration. Forward marks a bodyless declaration.
type Enum struct {
	Attrs   []Attr
	Name    Name
	Values  []*EnumValue
	Forward bool
	Loc     source.Span
}

func (e *Enum) Span() source.Span { return e.Loc }
func (e *Enum) stmt()             {}

// EnumValue is one enumerator. Value is nil for implicit values; otherwise
// it holds a literal or a reference to another enumerator.
type EnumValue struct {
	Attrs []Attr
	Name  Name
	Value *Literal
	Loc   source.Span
}

func (v *EnumValue) Span() source.Span { return v.Loc }

// Interface is an interface declaration. Members holds *Method, *Enum and
// *Const nodes in source order. Interfaces always require a body.
type Interface struct {
	Attrs   []Attr
	Name    Name
	Members []Stmt
	Loc     source.Span
}

func (i *Interface) Span() source.Span { return i.Loc }
func (i *Interface) stmt()             {}

// Method is one message inside an interface body. Response is nil when the
// method has no `=> (...)` part; an empty response list keeps a non-nil
// ParamList.
type Method struct {
	Attrs    []Attr
	Name     Name
	Ordinal  *Ordinal
	Params   []*Param
	Response *ParamList
	Loc      source.Span
}

func (m *Method) Span() source.Span { return m.Loc }
func (m *Method) stmt()             {}

// ParamList is a parenthesized parameter list with its own span.
type ParamList struct {
	Params []*Param
	Loc    source.Span
}

func (p *ParamList) Span() source.Span { return p.Loc }

// Param is one request or response parameter.
type Param struct {
	Attrs   []Attr
	Type    *TypeSpec
	Name    Name
	Ordinal *Ordinal
	Loc     source.Span
}

func (p *Param) Span() source.Span { return p.Loc }
