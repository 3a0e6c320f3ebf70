package abc

import "github.com/deepnoodle-ai/avm2/internal/intern"

// NamespaceHasher interns namespaces by access and name.
type NamespaceHasher struct{}

func (NamespaceHasher) Hash(ns Namespace) uint64 {
	return hashNamespace(intern.NewHash(), ns).Sum()
}

func (NamespaceHasher) Equal(a, b Namespace) bool {
	return a == b
}

// NamespaceSetHasher interns namespace sets by their ordered contents.
type NamespaceSetHasher struct{}

func (NamespaceSetHasher) Hash(s *NamespaceSet) uint64 {
	h := intern.NewHash()
	if s == nil {
		return h.Byte(0xff).Sum()
	}
	for _, ns := range s.Namespaces {
		hashNamespace(h, ns)
	}
	return h.Sum()
}

func (NamespaceSetHasher) Equal(a, b *NamespaceSet) bool {
	return a.Equal(b)
}

// MultinameHasher interns multinames by kind and the fields that kind
// carries.
type MultinameHasher struct{}

func (MultinameHasher) Hash(m *Multiname) uint64 {
	h := intern.NewHash()
	if m == nil {
		return h.Byte(0xff).Sum()
	}
	h.Byte(byte(m.Kind))
	if m.Kind.HasName() {
		h.String(m.Name)
	}
	if m.Kind.HasNamespace() && m.NS != nil {
		hashNamespace(h, *m.NS)
	}
	if m.Kind.HasNamespaceSet() && m.NSSet != nil {
		for _, ns := range m.NSSet.Namespaces {
			hashNamespace(h, ns)
		}
	}
	return h.Sum()
}

func (MultinameHasher) Equal(a, b *Multiname) bool {
	return a.Equal(b)
}

func hashNamespace(h *intern.Hash, ns Namespace) *intern.Hash {
	return h.Byte(byte(ns.Access)).String(ns.Name)
}
