package abc

import "strings"

// ParseMultiname builds a QName from a qualified class or member name.
//
// The namespace and name may be separated by "::" or ":", as in
// "flash.display::MovieClip" or "flash.display:MovieClip". Without a
// colon the name is split at its last dot, so "flash.display.MovieClip"
// yields the same QName. A plain name such as "Object" is placed in the
// top-level package namespace.
func ParseMultiname(qualified string) *Multiname {
	pkg, name := SplitQualified(qualified)
	return NewQName(PackageNamespace(pkg), name)
}

// SplitQualified splits a qualified name into its package and local name
// using the rules of ParseMultiname.
func SplitQualified(qualified string) (pkg, name string) {
	if i := strings.LastIndex(qualified, "::"); i >= 0 {
		return qualified[:i], qualified[i+2:]
	}
	if i := strings.LastIndexByte(qualified, ':'); i >= 0 {
		return qualified[:i], qualified[i+1:]
	}
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[:i], qualified[i+1:]
	}
	return "", qualified
}
