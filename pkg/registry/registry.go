// Package registry tracks the classes and class members known to a compile
// session.
//
// Classes are identified by their package and name. The access of a class
// is carried along for code generation but plays no part in identity, so
// registering a class again under a different access replaces the earlier
// entry. Members are scoped to their class and identified by name alone.
//
// A Registry starts out with a table of builtin classes, either the default
// table returned by [DefaultClasses] or one supplied with [WithClasses].
package registry

import (
	"cmp"
	"maps"
	"slices"

	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/errors"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

// Signature is the identity of a class.
type Signature struct {
	Package string
	Name    string
}

// String renders the signature as "package::Name", or just the name for
// top-level classes.
func (s Signature) String() string {
	if s.Package == "" {
		return s.Name
	}
	return s.Package + "::" + s.Name
}

// ClassTable maps class signatures to class descriptors.
type ClassTable map[Signature]*ClassInfo

// Add inserts c, replacing any class with the same signature.
func (t ClassTable) Add(c *ClassInfo) {
	t[c.Signature()] = c
}

// Merge copies every class of other into t. Classes in other win.
func (t ClassTable) Merge(other ClassTable) {
	maps.Copy(t, other)
}

// Registry holds the classes of one compile session. It is not safe for
// concurrent use; independent sessions should use independent registries.
type Registry struct {
	classes ClassTable
	session uuid.UUID
	logger  zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithClasses seeds the registry with the given table instead of the
// default builtin classes. The registry takes ownership of the descriptors
// but not of the map itself.
func WithClasses(table ClassTable) Option {
	return func(r *Registry) {
		r.classes = maps.Clone(table)
		if r.classes == nil {
			r.classes = ClassTable{}
		}
	}
}

// WithLogger sets the logger used to report class replacements.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New returns a registry ready for lookups.
func New(opts ...Option) *Registry {
	r := &Registry{
		session: uuid.Must(uuid.NewV4()),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.classes == nil {
		r.classes = DefaultClasses()
	}
	r.logger = r.logger.With().Str("session", r.session.String()).Logger()
	r.logger.Debug().Int("classes", len(r.classes)).Msg("registry initialized")
	return r
}

// Session returns the identifier of this registry, used to correlate log
// lines of one compile session.
func (r *Registry) Session() uuid.UUID {
	return r.session
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	return len(r.classes)
}

// RegisterClass creates a class with an empty member table and stores it.
// A class with the same package and name is replaced, whatever its access.
func (r *Registry) RegisterClass(access abc.Access, pkg, name string) *ClassInfo {
	c := NewClassInfo(access, pkg, name)
	sig := c.Signature()
	if old, ok := r.classes[sig]; ok {
		r.logger.Debug().
			Stringer("class", sig).
			Stringer("old_access", old.Access).
			Stringer("new_access", access).
			Msg("replacing class")
	}
	r.classes[sig] = c
	return c
}

// RegisterMember adds a member to class. It is shorthand for
// class.RegisterMember.
func (r *Registry) RegisterMember(class *ClassInfo, name string, kind MemberKind) *MemberInfo {
	return class.RegisterMember(name, kind)
}

// FindClass returns the class with the given package and name.
func (r *Registry) FindClass(pkg, name string) (*ClassInfo, bool) {
	c, ok := r.classes[Signature{Package: pkg, Name: name}]
	return c, ok
}

// MustFindClass is like FindClass but panics with an *errors.InternalError
// if the class is missing. It is meant for classes the builtin table is
// expected to provide.
func (r *Registry) MustFindClass(pkg, name string) *ClassInfo {
	c, ok := r.FindClass(pkg, name)
	if !ok {
		panic(errors.InternalErrorf("class %s is not registered",
			Signature{Package: pkg, Name: name}))
	}
	return c
}

// FindMember returns the member of class with the given name.
func (r *Registry) FindMember(class *ClassInfo, name string) (*MemberInfo, bool) {
	if class == nil {
		return nil, false
	}
	return class.FindMember(name)
}

// Classes returns every registered class ordered by package and name.
func (r *Registry) Classes() []*ClassInfo {
	classes := slices.Collect(maps.Values(r.classes))
	slices.SortFunc(classes, func(a, b *ClassInfo) int {
		return cmp.Or(cmp.Compare(a.Package, b.Package), cmp.Compare(a.Name, b.Name))
	})
	return classes
}

// ObjectClass returns the top-level Object class.
func (r *Registry) ObjectClass() *ClassInfo { return r.MustFindClass("", "Object") }

// StringClass returns the top-level String class.
func (r *Registry) StringClass() *ClassInfo { return r.MustFindClass("", "String") }

// IntClass returns the top-level int class.
func (r *Registry) IntClass() *ClassInfo { return r.MustFindClass("", "int") }

// UintClass returns the top-level uint class.
func (r *Registry) UintClass() *ClassInfo { return r.MustFindClass("", "uint") }

// BooleanClass returns the top-level Boolean class.
func (r *Registry) BooleanClass() *ClassInfo { return r.MustFindClass("", "Boolean") }

// NumberClass returns the top-level Number class.
func (r *Registry) NumberClass() *ClassInfo { return r.MustFindClass("", "Number") }

// MovieClipClass returns flash.display::MovieClip.
func (r *Registry) MovieClipClass() *ClassInfo {
	return r.MustFindClass("flash.display", "MovieClip")
}

var nullClass = &ClassInfo{Access: abc.AccessPackage, Name: "null"}

// NullClass returns the type of the null literal. It is a fixed sentinel
// that is never stored in the registry, so it compares unequal (by
// pointer) to every registered class. Callers must not modify it.
func (r *Registry) NullClass() *ClassInfo {
	return nullClass
}

// AnyType returns the type used for untyped values. There is no class
// descriptor for the "*" type yet, so it is always nil, the same value
// FindClass callers see for an unknown class.
func (r *Registry) AnyType() *ClassInfo {
	return nil
}

// ClassToMultiname returns a new QName referring to class. The namespace
// is derived from the class access and package. A nil class yields nil.
func ClassToMultiname(class *ClassInfo) *abc.Multiname {
	if class == nil {
		return nil
	}
	return abc.NewQName(class.Namespace(), class.Name)
}

// FillMultiname turns m into a QName referring to class, using ns as its
// namespace.
//
// ns is overwritten with the access and package of class and then shared
// with m, so every other holder of ns observes the change. Prefer
// ClassToMultiname unless a caller depends on that aliasing.
func FillMultiname(m *abc.Multiname, ns *abc.Namespace, class *ClassInfo) {
	ns.Access = class.Access
	ns.Name = class.Package
	m.Kind = abc.KindQName
	m.NS = ns
	m.Name = class.Name
	m.NSSet = nil
}
