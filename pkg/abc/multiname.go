package abc

import (
	"fmt"
	"strings"
)

// MultinameKind is the kind byte of a multiname entry. The values are
// fixed by the ABC format.
type MultinameKind uint8

const (
	KindQName       MultinameKind = 0x07
	KindQNameA      MultinameKind = 0x0D
	KindRTQName     MultinameKind = 0x0F
	KindRTQNameA    MultinameKind = 0x10
	KindRTQNameL    MultinameKind = 0x11
	KindRTQNameLA   MultinameKind = 0x12
	KindMultiname   MultinameKind = 0x09
	KindMultinameA  MultinameKind = 0x0E
	KindMultinameL  MultinameKind = 0x1B
	KindMultinameLA MultinameKind = 0x1C
)

// Kinds lists every multiname kind in wire-value order.
var Kinds = []MultinameKind{
	KindQName,
	KindMultiname,
	KindQNameA,
	KindMultinameA,
	KindRTQName,
	KindRTQNameA,
	KindRTQNameL,
	KindRTQNameLA,
	KindMultinameL,
	KindMultinameLA,
}

// Valid reports whether k is one of the ten multiname kinds.
func (k MultinameKind) Valid() bool {
	switch k {
	case KindQName, KindQNameA, KindRTQName, KindRTQNameA, KindRTQNameL,
		KindRTQNameLA, KindMultiname, KindMultinameA, KindMultinameL, KindMultinameLA:
		return true
	}
	return false
}

// HasNamespace reports whether entries of this kind carry a namespace.
func (k MultinameKind) HasNamespace() bool {
	return k == KindQName || k == KindQNameA
}

// HasNamespaceSet reports whether entries of this kind carry a namespace set.
func (k MultinameKind) HasNamespaceSet() bool {
	switch k {
	case KindMultiname, KindMultinameA, KindMultinameL, KindMultinameLA:
		return true
	}
	return false
}

// HasName reports whether entries of this kind carry a static name.
func (k MultinameKind) HasName() bool {
	switch k {
	case KindQName, KindQNameA, KindRTQName, KindRTQNameA, KindMultiname, KindMultinameA:
		return true
	}
	return false
}

// IsAttribute reports whether the kind addresses an XML attribute.
func (k MultinameKind) IsAttribute() bool {
	switch k {
	case KindQNameA, KindRTQNameA, KindRTQNameLA, KindMultinameA, KindMultinameLA:
		return true
	}
	return false
}

// IsRuntime reports whether part of the name is taken from the stack at
// run time.
func (k MultinameKind) IsRuntime() bool {
	switch k {
	case KindRTQName, KindRTQNameA, KindRTQNameL, KindRTQNameLA, KindMultinameL, KindMultinameLA:
		return true
	}
	return false
}

func (k MultinameKind) String() string {
	switch k {
	case KindQName:
		return "QName"
	case KindQNameA:
		return "QNameA"
	case KindRTQName:
		return "RTQName"
	case KindRTQNameA:
		return "RTQNameA"
	case KindRTQNameL:
		return "RTQNameL"
	case KindRTQNameLA:
		return "RTQNameLA"
	case KindMultiname:
		return "Multiname"
	case KindMultinameA:
		return "MultinameA"
	case KindMultinameL:
		return "MultinameL"
	case KindMultinameLA:
		return "MultinameLA"
	default:
		return fmt.Sprintf("kind(0x%02x)", uint8(k))
	}
}

// Multiname is a reference to a possibly late-bound qualified name. Which
// fields are meaningful depends on Kind; see the Has* predicates. An empty
// Name in a kind that carries one means "any name".
type Multiname struct {
	Kind  MultinameKind
	NS    *Namespace
	NSSet *NamespaceSet
	Name  string
}

// NewQName returns a statically qualified name.
func NewQName(ns Namespace, name string) *Multiname {
	return &Multiname{Kind: KindQName, NS: &ns, Name: name}
}

// NewQNameA returns a statically qualified attribute name.
func NewQNameA(ns Namespace, name string) *Multiname {
	return &Multiname{Kind: KindQNameA, NS: &ns, Name: name}
}

// NewRTQName returns a name whose namespace is resolved at run time.
func NewRTQName(name string) *Multiname {
	return &Multiname{Kind: KindRTQName, Name: name}
}

// NewRTQNameA is the attribute form of NewRTQName.
func NewRTQNameA(name string) *Multiname {
	return &Multiname{Kind: KindRTQNameA, Name: name}
}

// NewRTQNameL returns a name whose namespace and name are both resolved at
// run time.
func NewRTQNameL() *Multiname {
	return &Multiname{Kind: KindRTQNameL}
}

// NewRTQNameLA is the attribute form of NewRTQNameL.
func NewRTQNameLA() *Multiname {
	return &Multiname{Kind: KindRTQNameLA}
}

// NewMultiname returns a static name resolved against a namespace set.
func NewMultiname(set *NamespaceSet, name string) *Multiname {
	return &Multiname{Kind: KindMultiname, NSSet: set.Clone(), Name: name}
}

// NewMultinameA is the attribute form of NewMultiname.
func NewMultinameA(set *NamespaceSet, name string) *Multiname {
	return &Multiname{Kind: KindMultinameA, NSSet: set.Clone(), Name: name}
}

// NewMultinameL returns a run-time name resolved against a namespace set.
func NewMultinameL(set *NamespaceSet) *Multiname {
	return &Multiname{Kind: KindMultinameL, NSSet: set.Clone()}
}

// NewMultinameLA is the attribute form of NewMultinameL.
func NewMultinameLA(set *NamespaceSet) *Multiname {
	return &Multiname{Kind: KindMultinameLA, NSSet: set.Clone()}
}

// Check reports whether the fields required by the kind are present. A
// QName without a namespace is allowed and means any namespace, but the
// set-based kinds must carry a namespace set.
func (m *Multiname) Check() error {
	if !m.Kind.Valid() {
		return fmt.Errorf("invalid multiname kind 0x%02x", uint8(m.Kind))
	}
	if m.Kind.HasNamespaceSet() && m.NSSet == nil {
		return fmt.Errorf("%s %q has no namespace set", m.Kind, m.Name)
	}
	return nil
}

// Equal reports whether both multinames have the same kind and equal
// contents in the fields that kind carries.
func (m *Multiname) Equal(other *Multiname) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Kind != other.Kind {
		return false
	}
	if m.Kind.HasName() && m.Name != other.Name {
		return false
	}
	if m.Kind.HasNamespace() && !equalNamespace(m.NS, other.NS) {
		return false
	}
	if m.Kind.HasNamespaceSet() && !m.NSSet.Equal(other.NSSet) {
		return false
	}
	return true
}

func equalNamespace(a, b *Namespace) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Clone returns a deep copy that shares no namespace storage with m.
func (m *Multiname) Clone() *Multiname {
	if m == nil {
		return nil
	}
	c := &Multiname{Kind: m.Kind, Name: m.Name, NSSet: m.NSSet.Clone()}
	if m.NS != nil {
		ns := *m.NS
		c.NS = &ns
	}
	return c
}

// String renders the multiname for diagnostics. Namespaces and sets use
// their own String forms, attribute forms are prefixed with "@", run-time
// parts are shown as "<rt>" and "<l>", and an absent name, namespace or set
// is shown as "*".
func (m *Multiname) String() string {
	if m == nil {
		return "NULL"
	}
	var b strings.Builder
	if m.Kind.IsAttribute() {
		b.WriteByte('@')
	}
	switch m.Kind {
	case KindQName, KindQNameA:
		if m.NS == nil {
			b.WriteString("*")
		} else {
			b.WriteString(m.NS.String())
		}
		b.WriteString("::" + displayName(m.Name))
	case KindRTQName, KindRTQNameA:
		b.WriteString("<rt>" + displayName(m.Name))
	case KindRTQNameL, KindRTQNameLA:
		b.WriteString("<rt><l>")
	case KindMultiname, KindMultinameA:
		b.WriteString(m.NSSet.String() + "::" + displayName(m.Name))
	case KindMultinameL, KindMultinameLA:
		b.WriteString(m.NSSet.String() + "::<l>")
	default:
		return fmt.Sprintf("<%s>%s", m.Kind, displayName(m.Name))
	}
	return b.String()
}

func displayName(name string) string {
	if name == "" {
		return "*"
	}
	return name
}
