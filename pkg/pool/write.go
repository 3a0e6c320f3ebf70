package pool

import (
	"fmt"

	"github.com/deepnoodle-ai/avm2/internal/wire"
	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/errors"
)

// Marshal encodes the pool in the ABC constant pool layout.
func Marshal(p *Pool) ([]byte, error) {
	w := wire.NewWriter()
	if err := p.Encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Encode writes the seven sections of the pool to w. Entries are written in
// index order so that every index handed out by the pool stays valid.
func (p *Pool) Encode(w *wire.Writer) error {
	writeCount(w, p.IntCount())
	for _, v := range p.ints.All() {
		w.WriteS32(v)
	}
	writeCount(w, p.UintCount())
	for _, v := range p.uints.All() {
		w.WriteU32(v)
	}
	writeCount(w, p.DoubleCount())
	for _, v := range p.doubles.All() {
		w.WriteD64(v)
	}
	writeCount(w, p.StringCount())
	for _, v := range p.strings.All() {
		w.WriteString(v)
	}
	writeCount(w, p.NamespaceCount())
	for _, ns := range p.namespaces.All() {
		if err := p.writeNamespace(w, ns); err != nil {
			return err
		}
	}
	writeCount(w, p.NamespaceSetCount())
	for _, set := range p.nsSets.All() {
		if err := p.writeNamespaceSet(w, set); err != nil {
			return err
		}
	}
	writeCount(w, p.MultinameCount())
	for idx, m := range p.multinames.All() {
		if err := p.writeMultiname(w, m); err != nil {
			return errors.InternalErrorf("encoding multiname %d %s: %w", idx, m, err)
		}
	}
	return w.Err()
}

// writeCount writes a section size. A non-empty section of n entries is
// encoded as n+1 to account for the reserved index 0.
func writeCount(w *wire.Writer, n int) {
	if n == 0 {
		w.WriteU30(0)
		return
	}
	w.WriteU30(uint32(n + 1))
}

func (p *Pool) writeNamespace(w *wire.Writer, ns abc.Namespace) error {
	name, err := p.encodeName(ns.Name)
	if err != nil {
		return errors.InternalErrorf("encoding namespace %s: %w", ns, err)
	}
	w.WriteU8(uint8(ns.Access))
	w.WriteU30(name)
	return nil
}

func (p *Pool) writeNamespaceSet(w *wire.Writer, set *abc.NamespaceSet) error {
	w.WriteU30(uint32(set.Len()))
	for _, ns := range set.Namespaces {
		idx, ok := p.namespaces.Find(ns)
		if !ok {
			return errors.InternalErrorf("namespace %s of set %s is not in the pool", ns, set)
		}
		w.WriteU30(uint32(idx))
	}
	return nil
}

func (p *Pool) writeMultiname(w *wire.Writer, m *abc.Multiname) error {
	w.WriteU8(uint8(m.Kind))
	switch m.Kind {
	case abc.KindQName, abc.KindQNameA:
		ns, err := p.encodeNamespace(m.NS)
		if err != nil {
			return err
		}
		name, err := p.encodeName(m.Name)
		if err != nil {
			return err
		}
		w.WriteU30(ns)
		w.WriteU30(name)
	case abc.KindRTQName, abc.KindRTQNameA:
		name, err := p.encodeName(m.Name)
		if err != nil {
			return err
		}
		w.WriteU30(name)
	case abc.KindRTQNameL, abc.KindRTQNameLA:
	case abc.KindMultiname, abc.KindMultinameA:
		name, err := p.encodeName(m.Name)
		if err != nil {
			return err
		}
		set, err := p.encodeNamespaceSet(m.NSSet)
		if err != nil {
			return err
		}
		w.WriteU30(name)
		w.WriteU30(set)
	case abc.KindMultinameL, abc.KindMultinameLA:
		set, err := p.encodeNamespaceSet(m.NSSet)
		if err != nil {
			return err
		}
		w.WriteU30(set)
	default:
		return fmt.Errorf("invalid multiname kind 0x%02x", uint8(m.Kind))
	}
	return nil
}

func (p *Pool) encodeName(name string) (uint32, error) {
	idx, ok := p.nameIndex(name)
	if !ok {
		return 0, fmt.Errorf("string %q is not in the pool", name)
	}
	return uint32(idx), nil
}

func (p *Pool) encodeNamespace(ns *abc.Namespace) (uint32, error) {
	if ns == nil {
		return 0, nil
	}
	idx, ok := p.namespaces.Find(*ns)
	if !ok {
		return 0, fmt.Errorf("namespace %s is not in the pool", ns)
	}
	return uint32(idx), nil
}

func (p *Pool) encodeNamespaceSet(set *abc.NamespaceSet) (uint32, error) {
	if set == nil {
		return 0, fmt.Errorf("missing namespace set")
	}
	idx, ok := p.nsSets.Find(set)
	if !ok {
		return 0, fmt.Errorf("namespace set %s is not in the pool", set)
	}
	return uint32(idx), nil
}
