// Package pool implements the constant pool of an ABC module.
//
// A pool holds seven sections: ints, uints, doubles, strings, namespaces,
// namespace sets and multinames. Registering a value returns its index,
// which is what bytecode instructions and traits refer to. Values are
// compared by content, so registering an equal value twice yields the same
// index and does not grow the pool.
//
// Indexes start at 1. Index 0 is reserved by the format and means "absent"
// or "any" wherever an index is optional, such as the namespace of a QName
// or the name of a multiname.
//
// Composite entries refer to earlier sections: a namespace names a string,
// a namespace set lists namespaces, and a multiname refers to a name, a
// namespace or a namespace set depending on its kind. RegisterMultiname
// registers those parts as well, so any pool built through the Register
// methods can be encoded with [Marshal].
//
// # Usage
//
//	p := pool.New()
//	clip := p.RegisterQualifiedName("flash.display::MovieClip")
//	same := p.RegisterMultiname(abc.NewQName(abc.PackageNamespace("flash.display"), "MovieClip"))
//	// clip == same
//
//	data, err := pool.Marshal(p)
//	if err != nil {
//	    return err
//	}
//	decoded, err := pool.Unmarshal(data)
package pool
