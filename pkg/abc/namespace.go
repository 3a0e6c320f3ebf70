package abc

import (
	"slices"
	"strings"
)

// Namespace qualifies a name. Two namespaces with the same access and
// name are interchangeable.
type Namespace struct {
	Access Access
	Name   string
}

// NewNamespace returns a namespace with the given access and name.
func NewNamespace(access Access, name string) Namespace {
	return Namespace{Access: access, Name: name}
}

// PackageNamespace returns the public namespace of a package. The empty
// name denotes the top-level package.
func PackageNamespace(name string) Namespace {
	return Namespace{Access: AccessPackage, Name: name}
}

// String renders the namespace as "[access]name".
func (ns Namespace) String() string {
	return "[" + ns.Access.String() + "]" + ns.Name
}

// NamespaceSet is an ordered list of namespaces a late-bound name may
// resolve against. Order is part of its identity since it is serialized.
type NamespaceSet struct {
	Namespaces []Namespace
}

// NewNamespaceSet returns a set holding a copy of the given namespaces.
func NewNamespaceSet(namespaces ...Namespace) *NamespaceSet {
	return &NamespaceSet{Namespaces: slices.Clone(namespaces)}
}

// Len returns the number of namespaces in the set.
func (s *NamespaceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Namespaces)
}

// Equal reports whether both sets hold equal namespaces in the same order.
func (s *NamespaceSet) Equal(other *NamespaceSet) bool {
	if s == nil || other == nil {
		return s == other
	}
	return slices.Equal(s.Namespaces, other.Namespaces)
}

// Clone returns a deep copy of the set.
func (s *NamespaceSet) Clone() *NamespaceSet {
	if s == nil {
		return nil
	}
	return NewNamespaceSet(s.Namespaces...)
}

// String renders the set as "{ns1,ns2,...}".
func (s *NamespaceSet) String() string {
	if s == nil {
		return "*"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, ns := range s.Namespaces {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(ns.String())
	}
	b.WriteByte('}')
	return b.String()
}
