package registry

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/deepnoodle-ai/avm2/pkg/abc"
)

// MemberKind is the kind of a class member. The values follow the AVM2
// trait kinds.
type MemberKind uint8

const (
	MemberSlot MemberKind = iota
	MemberMethod
	MemberGetter
	MemberSetter
	MemberClass
	MemberFunction
	MemberConst
)

var memberKindNames = []string{
	MemberSlot:     "slot",
	MemberMethod:   "method",
	MemberGetter:   "getter",
	MemberSetter:   "setter",
	MemberClass:    "class",
	MemberFunction: "function",
	MemberConst:    "const",
}

func (k MemberKind) String() string {
	if int(k) < len(memberKindNames) {
		return memberKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseMemberKind returns the kind with the given name, ignoring case.
func ParseMemberKind(name string) (MemberKind, error) {
	for i, n := range memberKindNames {
		if strings.EqualFold(n, name) {
			return MemberKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown member kind %q", name)
}

// MemberInfo describes one member of a class.
type MemberInfo struct {
	Name string
	Kind MemberKind
}

func (m *MemberInfo) String() string {
	return m.Kind.String() + " " + m.Name
}

// ClassInfo describes a class. Its identity is its Signature; Access only
// determines the namespace used when the class is referenced.
type ClassInfo struct {
	Access  abc.Access
	Package string
	Name    string

	members map[string]*MemberInfo
}

// NewClassInfo returns a class with no members.
func NewClassInfo(access abc.Access, pkg, name string) *ClassInfo {
	return &ClassInfo{
		Access:  access,
		Package: pkg,
		Name:    name,
		members: map[string]*MemberInfo{},
	}
}

// Signature returns the package and name of the class.
func (c *ClassInfo) Signature() Signature {
	return Signature{Package: c.Package, Name: c.Name}
}

// Namespace returns the namespace the class lives in.
func (c *ClassInfo) Namespace() abc.Namespace {
	return abc.NewNamespace(c.Access, c.Package)
}

// Equal reports whether both classes have the same signature.
func (c *ClassInfo) Equal(other *ClassInfo) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Signature() == other.Signature()
}

// RegisterMember creates a member and stores it under its name, replacing
// any member with the same name.
func (c *ClassInfo) RegisterMember(name string, kind MemberKind) *MemberInfo {
	if c.members == nil {
		c.members = map[string]*MemberInfo{}
	}
	m := &MemberInfo{Name: name, Kind: kind}
	c.members[name] = m
	return m
}

// FindMember returns the member with the given name.
func (c *ClassInfo) FindMember(name string) (*MemberInfo, bool) {
	m, ok := c.members[name]
	return m, ok
}

// Members returns the members of the class ordered by name.
func (c *ClassInfo) Members() []*MemberInfo {
	members := slices.Collect(maps.Values(c.members))
	slices.SortFunc(members, func(a, b *MemberInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return members
}

// MemberCount returns the number of members of the class.
func (c *ClassInfo) MemberCount() int {
	return len(c.members)
}

func (c *ClassInfo) String() string {
	return "[" + c.Access.String() + "]" + c.Signature().String()
}
