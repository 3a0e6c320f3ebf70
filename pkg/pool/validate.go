package pool

import (
	"fmt"

	"github.com/deepnoodle-ai/avm2/internal/wire"
	"github.com/hashicorp/go-multierror"
)

// Validate checks that the pool can be encoded and that every entry uses
// kinds the format defines. Decoding already rejects unknown kinds, so the
// kind checks matter for pools built in memory. All problems are reported
// together.
func (p *Pool) Validate() error {
	var result *multierror.Error
	for idx, s := range p.strings.All() {
		if len(s) > wire.MaxU30 {
			result = multierror.Append(result, fmt.Errorf("string %d: %d bytes exceeds the u30 limit", idx, len(s)))
		}
	}
	for idx, ns := range p.namespaces.All() {
		if !ns.Access.Valid() {
			result = multierror.Append(result, fmt.Errorf("namespace %d: unknown access kind 0x%02x", idx, uint8(ns.Access)))
		}
		if _, ok := p.nameIndex(ns.Name); !ok {
			result = multierror.Append(result, fmt.Errorf("namespace %d: name %q is not in the pool", idx, ns.Name))
		}
	}
	for idx, set := range p.nsSets.All() {
		for _, ns := range set.Namespaces {
			if _, ok := p.namespaces.Find(ns); !ok {
				result = multierror.Append(result, fmt.Errorf("namespace set %d: %s is not in the pool", idx, ns))
			}
		}
	}
	for idx, m := range p.multinames.All() {
		if err := m.Check(); err != nil {
			result = multierror.Append(result, fmt.Errorf("multiname %d: %w", idx, err))
			continue
		}
		if m.Kind.HasNamespace() && m.NS != nil {
			if _, ok := p.namespaces.Find(*m.NS); !ok {
				result = multierror.Append(result, fmt.Errorf("multiname %d: namespace %s is not in the pool", idx, m.NS))
			}
		}
		if m.Kind.HasNamespaceSet() {
			if _, ok := p.nsSets.Find(m.NSSet); !ok {
				result = multierror.Append(result, fmt.Errorf("multiname %d: namespace set %s is not in the pool", idx, m.NSSet))
			}
		}
		if m.Kind.HasName() {
			if _, ok := p.nameIndex(m.Name); !ok {
				result = multierror.Append(result, fmt.Errorf("multiname %d: name %q is not in the pool", idx, m.Name))
			}
		}
	}
	return result.ErrorOrNil()
}
