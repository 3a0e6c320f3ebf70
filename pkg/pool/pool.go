package pool

import (
	"fmt"

	"github.com/deepnoodle-ai/avm2/internal/intern"
	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/errors"
	"github.com/rs/zerolog"
)

// Pool is the constant pool of one ABC module. Each of its seven sections
// assigns a stable 1-based index to every distinct value registered in it.
// Index 0 is reserved by the format to mean "absent" or "any".
//
// A Pool is not safe for concurrent use.
type Pool struct {
	ints       *intern.Table[int32]
	uints      *intern.Table[uint32]
	doubles    *intern.Table[float64]
	strings    *intern.Table[string]
	namespaces *intern.Table[abc.Namespace]
	nsSets     *intern.Table[*abc.NamespaceSet]
	multinames *intern.Table[*abc.Multiname]
	logger     zerolog.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used to report decoding progress.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// New returns an empty pool.
func New(opts ...Option) *Pool {
	p := &Pool{
		ints:       intern.New[int32](intern.Comparable[int32]{}),
		uints:      intern.New[uint32](intern.Comparable[uint32]{}),
		doubles:    intern.New[float64](intern.Float64{}),
		strings:    intern.New[string](intern.Comparable[string]{}),
		namespaces: intern.New[abc.Namespace](abc.NamespaceHasher{}),
		nsSets:     intern.New[*abc.NamespaceSet](abc.NamespaceSetHasher{}),
		multinames: intern.New[*abc.Multiname](abc.MultinameHasher{}),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// String summarizes the number of entries in each section.
func (p *Pool) String() string {
	return fmt.Sprintf("Pool(ints=%d uints=%d doubles=%d strings=%d namespaces=%d sets=%d multinames=%d)",
		p.IntCount(), p.UintCount(), p.DoubleCount(), p.StringCount(),
		p.NamespaceCount(), p.NamespaceSetCount(), p.MultinameCount())
}

// FindInt returns the index of v in the int section.
func (p *Pool) FindInt(v int32) (int, bool) {
	return p.ints.Find(v)
}

// RegisterInt returns the index of v, adding it if needed.
func (p *Pool) RegisterInt(v int32) int {
	idx, _ := p.ints.Intern(v)
	return idx
}

// IntAt returns the int with the given index.
func (p *Pool) IntAt(idx int) (int32, error) {
	return lookup(p.ints, SectionInt, idx)
}

// IntCount returns the number of entries in the int section.
func (p *Pool) IntCount() int {
	return p.ints.Len()
}

// FindUint returns the index of v in the uint section.
func (p *Pool) FindUint(v uint32) (int, bool) {
	return p.uints.Find(v)
}

// RegisterUint returns the index of v, adding it if needed.
func (p *Pool) RegisterUint(v uint32) int {
	idx, _ := p.uints.Intern(v)
	return idx
}

// UintAt returns the uint with the given index.
func (p *Pool) UintAt(idx int) (uint32, error) {
	return lookup(p.uints, SectionUint, idx)
}

// UintCount returns the number of entries in the uint section.
func (p *Pool) UintCount() int {
	return p.uints.Len()
}

// FindDouble returns the index of v in the double section. Doubles are
// compared by bit pattern.
func (p *Pool) FindDouble(v float64) (int, bool) {
	return p.doubles.Find(v)
}

// RegisterDouble returns the index of v, adding it if needed.
func (p *Pool) RegisterDouble(v float64) int {
	idx, _ := p.doubles.Intern(v)
	return idx
}

// DoubleAt returns the double with the given index.
func (p *Pool) DoubleAt(idx int) (float64, error) {
	return lookup(p.doubles, SectionDouble, idx)
}

// DoubleCount returns the number of entries in the double section.
func (p *Pool) DoubleCount() int {
	return p.doubles.Len()
}

// FindString returns the index of s in the string section.
func (p *Pool) FindString(s string) (int, bool) {
	return p.strings.Find(s)
}

// RegisterString returns the index of s, adding it if needed. The empty
// string is an ordinary entry.
func (p *Pool) RegisterString(s string) int {
	idx, _ := p.strings.Intern(s)
	return idx
}

// StringAt returns the string with the given index.
func (p *Pool) StringAt(idx int) (string, error) {
	return lookup(p.strings, SectionString, idx)
}

// StringCount returns the number of entries in the string section.
func (p *Pool) StringCount() int {
	return p.strings.Len()
}

// FindNamespace returns the index of a namespace equal to ns.
func (p *Pool) FindNamespace(ns abc.Namespace) (int, bool) {
	return p.namespaces.Find(ns)
}

// RegisterNamespace returns the index of ns, adding it and its name if
// needed.
func (p *Pool) RegisterNamespace(ns abc.Namespace) int {
	if idx, ok := p.namespaces.Find(ns); ok {
		return idx
	}
	p.registerName(ns.Name)
	return p.namespaces.Append(ns)
}

// NamespaceAt returns the namespace with the given index.
func (p *Pool) NamespaceAt(idx int) (abc.Namespace, error) {
	return lookup(p.namespaces, SectionNamespace, idx)
}

// NamespaceCount returns the number of entries in the namespace section.
func (p *Pool) NamespaceCount() int {
	return p.namespaces.Len()
}

// FindNamespaceSet returns the index of a set with the same namespaces in
// the same order.
func (p *Pool) FindNamespaceSet(set *abc.NamespaceSet) (int, bool) {
	if set == nil {
		return 0, false
	}
	return p.nsSets.Find(set)
}

// RegisterNamespaceSet returns the index of set, adding it and its
// namespaces if needed. A nil set has index 0.
func (p *Pool) RegisterNamespaceSet(set *abc.NamespaceSet) int {
	if set == nil {
		return 0
	}
	if idx, ok := p.nsSets.Find(set); ok {
		return idx
	}
	for _, ns := range set.Namespaces {
		p.RegisterNamespace(ns)
	}
	return p.nsSets.Append(set.Clone())
}

// NamespaceSetAt returns a copy of the namespace set with the given index.
func (p *Pool) NamespaceSetAt(idx int) (*abc.NamespaceSet, error) {
	set, err := lookup(p.nsSets, SectionNamespaceSet, idx)
	return set.Clone(), err
}

// NamespaceSetCount returns the number of entries in the namespace set
// section.
func (p *Pool) NamespaceSetCount() int {
	return p.nsSets.Len()
}

// FindMultiname returns the index of a multiname structurally equal to m.
func (p *Pool) FindMultiname(m *abc.Multiname) (int, bool) {
	if m == nil {
		return 0, false
	}
	return p.multinames.Find(m)
}

// RegisterMultiname returns the index of m, adding it if needed. The
// namespace, name and namespace set it refers to are registered first, so
// every registered multiname can be encoded. The pool keeps its own copy
// of m. A nil multiname has index 0.
func (p *Pool) RegisterMultiname(m *abc.Multiname) int {
	if m == nil {
		return 0
	}
	if idx, ok := p.multinames.Find(m); ok {
		return idx
	}
	if m.Kind.HasNamespace() && m.NS != nil {
		p.RegisterNamespace(*m.NS)
	}
	if m.Kind.HasNamespaceSet() {
		p.RegisterNamespaceSet(m.NSSet)
	}
	if m.Kind.HasName() {
		p.registerName(m.Name)
	}
	return p.multinames.Append(m.Clone())
}

// RegisterQualifiedName parses a name such as "flash.display::MovieClip"
// into a QName and registers it.
func (p *Pool) RegisterQualifiedName(qualified string) int {
	return p.RegisterMultiname(abc.ParseMultiname(qualified))
}

// MultinameAt returns a copy of the multiname with the given index. Indexes
// passed here are expected to come from this pool, so an out of range
// index is reported as an internal error.
func (p *Pool) MultinameAt(idx int) (*abc.Multiname, error) {
	m, err := lookup(p.multinames, SectionMultiname, idx)
	return m.Clone(), err
}

// MustMultinameAt is like MultinameAt but panics on an invalid index.
func (p *Pool) MustMultinameAt(idx int) *abc.Multiname {
	m, err := p.MultinameAt(idx)
	if err != nil {
		panic(err)
	}
	return m
}

// MultinameCount returns the number of entries in the multiname section.
func (p *Pool) MultinameCount() int {
	return p.multinames.Len()
}

// registerName interns a name referenced by a namespace or multiname. The
// empty name is encoded as index 0 and is not added.
func (p *Pool) registerName(name string) {
	if name != "" {
		p.RegisterString(name)
	}
}

// nameIndex returns the string index used to encode name.
func (p *Pool) nameIndex(name string) (int, bool) {
	if name == "" {
		return 0, true
	}
	return p.strings.Find(name)
}

func lookup[T any](table *intern.Table[T], section Section, idx int) (T, error) {
	v, ok := table.At(idx)
	if !ok {
		return v, errors.InternalErrorf("%s index %d out of range (1..%d)",
			section, idx, table.Len())
	}
	return v, nil
}
