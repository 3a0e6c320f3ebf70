package registry

import (
	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/errors"
	"github.com/hashicorp/go-multierror"
)

// MemberSpec describes a class member in configuration.
type MemberSpec struct {
	Name string `mapstructure:"name" json:"name"`
	Kind string `mapstructure:"kind" json:"kind"`
}

// ClassSpec describes a class in configuration. Package may be omitted
// when Name is qualified, as in "flash.display::MovieClip". An empty
// Access means package access.
type ClassSpec struct {
	Package string       `mapstructure:"package" json:"package,omitempty"`
	Name    string       `mapstructure:"name" json:"name"`
	Access  string       `mapstructure:"access" json:"access,omitempty"`
	Members []MemberSpec `mapstructure:"members" json:"members,omitempty"`
}

// Build returns the class described by the spec.
func (s ClassSpec) Build() (*ClassInfo, error) {
	pkg, name := s.Package, s.Name
	if pkg == "" {
		pkg, name = abc.SplitQualified(name)
	}
	if name == "" {
		return nil, errors.ConfigErrorf("class %q has no name", s.Name)
	}
	access := abc.AccessPackage
	if s.Access != "" {
		var err error
		if access, err = abc.ParseAccess(s.Access); err != nil {
			return nil, errors.ConfigErrorf("class %s: %w", Signature{pkg, name}, err)
		}
	}
	c := NewClassInfo(access, pkg, name)
	var result *multierror.Error
	for i, m := range s.Members {
		if m.Name == "" {
			result = multierror.Append(result,
				errors.ConfigErrorf("class %s: member %d has no name", c.Signature(), i))
			continue
		}
		kind := MemberMethod
		if m.Kind != "" {
			var err error
			if kind, err = ParseMemberKind(m.Kind); err != nil {
				result = multierror.Append(result,
					errors.ConfigErrorf("class %s: member %s: %w", c.Signature(), m.Name, err))
				continue
			}
		}
		c.RegisterMember(m.Name, kind)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

// BuildClassTable builds a class table from configuration records. Every
// invalid record is reported, not just the first. A later record replaces
// an earlier one with the same signature.
func BuildClassTable(specs []ClassSpec) (ClassTable, error) {
	table := make(ClassTable, len(specs))
	var result *multierror.Error
	for _, spec := range specs {
		c, err := spec.Build()
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		table.Add(c)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return table, nil
}
