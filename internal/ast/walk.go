package ast

// Visitor receives each node in preorder. Returning false skips the node's
// children.
type Visitor interface {
	Visit(n Node) bool
}

// Walk traverses the tree rooted at n in preorder.
func Walk(v Visitor, n Node) {
	if n == nil || !v.Visit(n) {
		return
	}
	switch x := n.(type) {
	case *Mojom:
		for _, s := range x.Stmts {
			Walk(v, s)
		}
	case *Struct:
		for _, m := range x.Members {
			Walk(v, m)
		}
	case *StructField:
		if x.Type != nil {
			Walk(v, x.Type)
		}
	case *Union:
		for _, f := range x.Fields {
			Walk(v, f)
		}
	case *UnionField:
		if x.Type != nil {
			Walk(v, x.Type)
		}
	case *Enum:
		for _, val := range x.Values {
			Walk(v, val)
		}
	case *Interface:
		for _, m := range x.Members {
			Walk(v, m)
		}
	case *Method:
		for _, p := range x.Params {
			Walk(v, p)
		}
		if x.Response != nil {
			for _, p := range x.Response.Params {
				Walk(v, p)
			}
		}
	case *Param:
		if x.Type != nil {
			Walk(v, x.Type)
		}
	case *Const:
		if x.Type != nil {
			Walk(v, x.Type)
		}
	case *TypeSpec:
		if x.Elem != nil {
			Walk(v, x.Elem)
		}
	}
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) bool { return f(n) }

// Inspect traverses the tree calling f on every node; f returning false
// skips that node's children.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}
