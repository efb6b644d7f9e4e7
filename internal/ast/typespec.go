package ast

import (
	"mojomls/internal/source"
)

type TypeKind uint8

const (
	// TypeBasic is a primitive, string, or a possibly dotted type name.
	TypeBasic TypeKind = iota
	// TypeArray is array<T> or array<T, N>.
	TypeArray
	// TypeMap is map<K, V>; the key is a plain type name.
	TypeMap
	// TypeHandle is handle or handle<subtype>.
	TypeHandle
	// TypeRequest is an interface request, `Ident&`.
	TypeRequest
	// TypePendingRemote is pending_remote<Interface> or its associated form.
	TypePendingRemote
	// TypePendingReceiver is pending_receiver<Interface> or its associated
	// form.
	TypePendingReceiver
)

// TypeSpec describes one type reference. Which fields are meaningful
// depends on Kind: Name for Basic, Handle subtype and Request target;
// Elem for array element, map value and pending_* target; Key and Size
// where applicable.
type TypeSpec struct {
	Kind       TypeKind
	Name       Name
	Elem       *TypeSpec
	Key        Name
	Size       *Literal
	Nullable   bool
	Associated bool
	Loc        source.Span
}

func (t *TypeSpec) Span() source.Span { return t.Loc }
