package abc

import (
	"fmt"
	"strings"
)

// Access is the kind byte of a namespace, stored verbatim in namespace
// entries of the constant pool.
type Access uint8

const (
	AccessPrivate         Access = 0x05
	AccessNamespace       Access = 0x08
	AccessPackage         Access = 0x16
	AccessPackageInternal Access = 0x17
	AccessProtected       Access = 0x18
	AccessExplicit        Access = 0x19
	AccessStaticProtected Access = 0x1A
)

var accessNames = map[Access]string{
	AccessPrivate:         "private",
	AccessNamespace:       "namespace",
	AccessPackage:         "package",
	AccessPackageInternal: "packageinternal",
	AccessProtected:       "protected",
	AccessExplicit:        "explicit",
	AccessStaticProtected: "staticprotected",
}

// Valid reports whether a is one of the namespace kinds defined by the
// ABC format.
func (a Access) Valid() bool {
	_, ok := accessNames[a]
	return ok
}

func (a Access) String() string {
	if name, ok := accessNames[a]; ok {
		return name
	}
	return fmt.Sprintf("access(0x%02x)", uint8(a))
}

// ParseAccess returns the Access with the given name. "public" is accepted
// as an alias for "package", which is how public members are qualified.
func ParseAccess(name string) (Access, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "public" {
		return AccessPackage, nil
	}
	for a, n := range accessNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown namespace access %q", name)
}
