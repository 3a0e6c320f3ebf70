package pool

// Section identifies one of the seven arrays of a constant pool. Sections
// are encoded in the order of their values, and later sections refer to
// entries of earlier ones by index.
type Section int

const (
	SectionInt Section = iota
	SectionUint
	SectionDouble
	SectionString
	SectionNamespace
	SectionNamespaceSet
	SectionMultiname
)

// Sections lists all sections in encoding order.
var Sections = []Section{
	SectionInt,
	SectionUint,
	SectionDouble,
	SectionString,
	SectionNamespace,
	SectionNamespaceSet,
	SectionMultiname,
}

func (s Section) String() string {
	switch s {
	case SectionInt:
		return "int"
	case SectionUint:
		return "uint"
	case SectionDouble:
		return "double"
	case SectionString:
		return "string"
	case SectionNamespace:
		return "namespace"
	case SectionNamespaceSet:
		return "namespace set"
	case SectionMultiname:
		return "multiname"
	default:
		return "unknown"
	}
}

// Count returns the number of entries in the given section.
func (p *Pool) Count(s Section) int {
	switch s {
	case SectionInt:
		return p.IntCount()
	case SectionUint:
		return p.UintCount()
	case SectionDouble:
		return p.DoubleCount()
	case SectionString:
		return p.StringCount()
	case SectionNamespace:
		return p.NamespaceCount()
	case SectionNamespaceSet:
		return p.NamespaceSetCount()
	case SectionMultiname:
		return p.MultinameCount()
	default:
		return 0
	}
}
