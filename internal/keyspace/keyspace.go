// Package keyspace composes and decomposes namespaced storage keys.
package keyspace

import "strings"

// DefaultSeparator joins namespace and key when none is configured.
const DefaultSeparator = "::"

// Parts is a composite key split back into its namespace and raw key.
// Namespace is empty when the composite key carried none.
type Parts struct {
	Namespace string
	Key       string
}

// Compose returns namespace+sep+key, or key verbatim when namespace is empty.
func Compose(key, namespace, sep string) string {
	if namespace == "" {
		return key
	}
	return namespace + sep + key
}

// Decompose splits composite on the first occurrence of sep. The remainder is
// kept whole, so raw keys may contain sep; namespaces must not.
func Decompose(composite, sep string) Parts {
	if sep == "" {
		return Parts{Key: composite}
	}
	ns, rest, ok := strings.Cut(composite, sep)
	if !ok {
		return Parts{Key: composite}
	}
	return Parts{Namespace: ns, Key: rest}
}

// Pattern returns a glob matching every key of namespace, escaping glob
// metacharacters in the namespace itself. An empty namespace matches all.
func Pattern(namespace, sep string) string {
	if namespace == "" {
		return "*"
	}
	var b strings.Builder
	for _, r := range namespace + sep {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('*')
	return b.String()
}
