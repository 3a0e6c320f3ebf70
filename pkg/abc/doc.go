// Package abc models the names used by AVM2 bytecode modules.
//
// ABC code never refers to a class or member by a bare string. Every
// reference goes through a multiname, which combines a name with either a
// single namespace, a set of candidate namespaces, or nothing at all when
// those parts are popped off the operand stack at run time.
//
// # Key Types
//
//   - [Namespace]: an access kind and a name, compared by value
//   - [NamespaceSet]: an ordered list of namespaces
//   - [Multiname]: one of ten addressing modes, selected by [MultinameKind]
//
// The String methods of these types produce the renderings used by
// disassemblers and diagnostics. They are meant for people and cannot be
// parsed back.
//
// # Usage
//
//	ns := abc.PackageNamespace("flash.display")
//	m := abc.NewQName(ns, "MovieClip")
//	fmt.Println(m) // [package]flash.display::MovieClip
//
//	// Equivalent, parsed from a qualified string:
//	m = abc.ParseMultiname("flash.display::MovieClip")
package abc
