package pool

import (
	"github.com/deepnoodle-ai/avm2/internal/wire"
	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/errors"
)

// Unmarshal decodes a constant pool that occupies all of data.
func Unmarshal(data []byte, opts ...Option) (*Pool, error) {
	p := New(opts...)
	r := wire.NewReader(data)
	if err := p.Decode(r); err != nil {
		return nil, err
	}
	if r.Remaining() > 0 {
		return nil, errors.NewParseError(errors.Location{Offset: r.Offset()}, nil,
			"%d trailing bytes after constant pool", r.Remaining())
	}
	return p, nil
}

// Decode reads the seven sections of a constant pool from r into p, which
// must be empty. Entries keep their encoded indexes, including duplicates.
// Decoding stops at the end of the multiname section, leaving r positioned
// at whatever follows the pool in the module.
func (p *Pool) Decode(r *wire.Reader) error {
	for _, s := range Sections {
		if p.Count(s) > 0 {
			return errors.InternalErrorf("decode into non-empty pool (%d %s entries)", p.Count(s), s)
		}
	}
	d := &decoder{p: p, r: r}
	steps := []struct {
		section Section
		entry   func() error
	}{
		{SectionInt, d.readInt},
		{SectionUint, d.readUint},
		{SectionDouble, d.readDouble},
		{SectionString, d.readString},
		{SectionNamespace, d.readNamespace},
		{SectionNamespaceSet, d.readNamespaceSet},
		{SectionMultiname, d.readMultiname},
	}
	for _, step := range steps {
		if err := d.readSection(step.section, step.entry); err != nil {
			return err
		}
	}
	return nil
}

type decoder struct {
	p       *Pool
	r       *wire.Reader
	section Section
	entry   int
}

func (d *decoder) fail(cause error, format string, args ...any) error {
	loc := errors.Location{
		Section: d.section.String(),
		Entry:   d.entry,
		Offset:  d.r.Offset(),
	}
	return errors.NewParseError(loc, cause, format, args...)
}

func (d *decoder) readSection(s Section, readEntry func() error) error {
	d.section, d.entry = s, 0
	start := d.r.Offset()
	count, err := d.r.ReadU30()
	if err != nil {
		return d.fail(err, "reading entry count")
	}
	// A count of n encodes n-1 entries; 0 and 1 both mean an empty section.
	entries := max(int(count)-1, 0)
	if entries > d.r.Remaining() {
		return d.fail(wire.ErrTruncated, "%d entries declared with %d bytes remaining",
			entries, d.r.Remaining())
	}
	for i := 1; i <= entries; i++ {
		d.entry = i
		if err := readEntry(); err != nil {
			return err
		}
	}
	d.p.logger.Debug().
		Str("section", s.String()).
		Int("count", entries).
		Int("bytes", d.r.Offset()-start).
		Msg("decoded constant pool section")
	return nil
}

func (d *decoder) readInt() error {
	v, err := d.r.ReadS32()
	if err != nil {
		return d.fail(err, "reading int")
	}
	d.p.ints.Append(v)
	return nil
}

func (d *decoder) readUint() error {
	v, err := d.r.ReadU32()
	if err != nil {
		return d.fail(err, "reading uint")
	}
	d.p.uints.Append(v)
	return nil
}

func (d *decoder) readDouble() error {
	v, err := d.r.ReadD64()
	if err != nil {
		return d.fail(err, "reading double")
	}
	d.p.doubles.Append(v)
	return nil
}

func (d *decoder) readString() error {
	v, err := d.r.ReadString()
	if err != nil {
		return d.fail(err, "reading string")
	}
	d.p.strings.Append(v)
	return nil
}

func (d *decoder) readNamespace() error {
	access, err := d.r.ReadU8()
	if err != nil {
		return d.fail(err, "reading namespace kind")
	}
	if !abc.Access(access).Valid() {
		return d.fail(nil, "unknown namespace kind 0x%02x", access)
	}
	name, err := d.name()
	if err != nil {
		return err
	}
	d.p.namespaces.Append(abc.NewNamespace(abc.Access(access), name))
	return nil
}

func (d *decoder) readNamespaceSet() error {
	count, err := d.r.ReadU30()
	if err != nil {
		return d.fail(err, "reading namespace set size")
	}
	if int(count) > d.r.Remaining() {
		return d.fail(wire.ErrTruncated, "namespace set of %d entries with %d bytes remaining",
			count, d.r.Remaining())
	}
	set := &abc.NamespaceSet{Namespaces: make([]abc.Namespace, 0, count)}
	for range count {
		ns, err := d.namespace(false)
		if err != nil {
			return err
		}
		set.Namespaces = append(set.Namespaces, *ns)
	}
	d.p.nsSets.Append(set)
	return nil
}

func (d *decoder) readMultiname() error {
	b, err := d.r.ReadU8()
	if err != nil {
		return d.fail(err, "reading multiname kind")
	}
	m := &abc.Multiname{Kind: abc.MultinameKind(b)}
	switch m.Kind {
	case abc.KindQName, abc.KindQNameA:
		if m.NS, err = d.namespace(true); err != nil {
			return err
		}
		if m.Name, err = d.name(); err != nil {
			return err
		}
	case abc.KindRTQName, abc.KindRTQNameA:
		if m.Name, err = d.name(); err != nil {
			return err
		}
	case abc.KindRTQNameL, abc.KindRTQNameLA:
	case abc.KindMultiname, abc.KindMultinameA:
		if m.Name, err = d.name(); err != nil {
			return err
		}
		if m.NSSet, err = d.namespaceSet(); err != nil {
			return err
		}
	case abc.KindMultinameL, abc.KindMultinameLA:
		if m.NSSet, err = d.namespaceSet(); err != nil {
			return err
		}
	default:
		return d.fail(nil, "unknown multiname kind 0x%02x", b)
	}
	d.p.multinames.Append(m)
	return nil
}

// name reads a string index. Index 0 decodes as the empty name.
func (d *decoder) name() (string, error) {
	idx, err := d.r.ReadU30()
	if err != nil {
		return "", d.fail(err, "reading string index")
	}
	if idx == 0 {
		return "", nil
	}
	s, ok := d.p.strings.At(int(idx))
	if !ok {
		return "", d.fail(nil, "string index %d out of range (1..%d)", idx, d.p.strings.Len())
	}
	return s, nil
}

// namespace reads a namespace index and returns a private copy of the
// entry. Index 0 is only accepted when optional is set, and yields nil.
func (d *decoder) namespace(optional bool) (*abc.Namespace, error) {
	idx, err := d.r.ReadU30()
	if err != nil {
		return nil, d.fail(err, "reading namespace index")
	}
	if idx == 0 {
		if optional {
			return nil, nil
		}
		return nil, d.fail(nil, "namespace index 0 is not allowed here")
	}
	ns, ok := d.p.namespaces.At(int(idx))
	if !ok {
		return nil, d.fail(nil, "namespace index %d out of range (1..%d)", idx, d.p.namespaces.Len())
	}
	return &ns, nil
}

func (d *decoder) namespaceSet() (*abc.NamespaceSet, error) {
	idx, err := d.r.ReadU30()
	if err != nil {
		return nil, d.fail(err, "reading namespace set index")
	}
	set, ok := d.p.nsSets.At(int(idx))
	if !ok {
		return nil, d.fail(nil, "namespace set index %d out of range (1..%d)", idx, d.p.nsSets.Len())
	}
	return set.Clone(), nil
}
