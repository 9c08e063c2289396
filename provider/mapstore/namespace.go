package mapstore

// Namespace is either a fixed string or a resolver called on every access.
// The zero value is the empty fixed namespace.
type Namespace struct {
	fixed   string
	resolve func() string
}

// Fixed returns a namespace that always resolves to ns.
func Fixed(ns string) Namespace { return Namespace{fixed: ns} }

// Resolver returns a namespace computed by fn at each access, which lets
// callers rotate namespaces without touching the Adapter. A nil fn is
// equivalent to Fixed("").
func Resolver(fn func() string) Namespace { return Namespace{resolve: fn} }

// Resolve returns the current namespace value.
func (n Namespace) Resolve() string {
	if n.resolve != nil {
		return n.resolve()
	}
	return n.fixed
}
