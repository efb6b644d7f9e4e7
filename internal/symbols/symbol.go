package symbols

import (
	"mojomls/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolStruct
	SymbolUnion
	SymbolEnum
	SymbolEnumValue
	SymbolInterface
	SymbolMethod
	SymbolConst
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolStruct:
		return "struct"
	case SymbolUnion:
		return "union"
	case SymbolEnum:
		return "enum"
	case SymbolEnumValue:
		return "enum value"
	case SymbolInterface:
		return "interface"
	case SymbolMethod:
		return "method"
	case SymbolConst:
		return "const"
	default:
		return "invalid"
	}
}

// Symbol is one named declaration. Name is qualified within its file by
// nesting only ("Frame.Kind", "Screen.Flush"); the module prefix lives on
// the ModuleIndex.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Span    source.Span // the name token, where goto-definition lands
	File    source.FileID
	Forward bool
}
