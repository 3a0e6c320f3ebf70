package registry

import "github.com/deepnoodle-ai/avm2/pkg/abc"

type builtinMember struct {
	Name string
	Kind MemberKind
}

// builtinClass defines a class of the player API along with the members
// the compiler needs to resolve statically.
type builtinClass struct {
	Package string
	Name    string
	Members []builtinMember
}

func methods(names ...string) []builtinMember {
	members := make([]builtinMember, len(names))
	for i, name := range names {
		members[i] = builtinMember{Name: name, Kind: MemberMethod}
	}
	return members
}

func with(members []builtinMember, more ...builtinMember) []builtinMember {
	return append(members, more...)
}

var builtins = []builtinClass{
	{
		Package: "",
		Name:    "Object",
		Members: methods("hasOwnProperty", "isPrototypeOf", "propertyIsEnumerable",
			"setPropertyIsEnumerable", "toLocaleString", "toString", "valueOf"),
	},
	{
		Package: "",
		Name:    "Class",
		Members: []builtinMember{{"prototype", MemberGetter}},
	},
	{
		Package: "",
		Name:    "Function",
		Members: with(methods("apply", "call"),
			builtinMember{"length", MemberGetter},
			builtinMember{"prototype", MemberGetter},
		),
	},
	{
		Package: "",
		Name:    "Namespace",
		Members: []builtinMember{{"prefix", MemberGetter}, {"uri", MemberGetter}},
	},
	{
		Package: "",
		Name:    "QName",
		Members: []builtinMember{{"localName", MemberGetter}, {"uri", MemberGetter}},
	},
	{
		Package: "",
		Name:    "Boolean",
		Members: methods("toString", "valueOf"),
	},
	{
		Package: "",
		Name:    "Number",
		Members: with(methods("toExponential", "toFixed", "toPrecision", "toString", "valueOf"),
			builtinMember{"MAX_VALUE", MemberConst},
			builtinMember{"MIN_VALUE", MemberConst},
			builtinMember{"NaN", MemberConst},
			builtinMember{"NEGATIVE_INFINITY", MemberConst},
			builtinMember{"POSITIVE_INFINITY", MemberConst},
		),
	},
	{
		Package: "",
		Name:    "int",
		Members: with(methods("toExponential", "toFixed", "toPrecision", "toString", "valueOf"),
			builtinMember{"MAX_VALUE", MemberConst},
			builtinMember{"MIN_VALUE", MemberConst},
		),
	},
	{
		Package: "",
		Name:    "uint",
		Members: with(methods("toExponential", "toFixed", "toPrecision", "toString", "valueOf"),
			builtinMember{"MAX_VALUE", MemberConst},
			builtinMember{"MIN_VALUE", MemberConst},
		),
	},
	{
		Package: "",
		Name:    "String",
		Members: with(methods("charAt", "charCodeAt", "concat", "indexOf", "lastIndexOf",
			"localeCompare", "match", "replace", "search", "slice", "split", "substr",
			"substring", "toLowerCase", "toUpperCase", "toString", "valueOf"),
			builtinMember{"length", MemberGetter},
			builtinMember{"fromCharCode", MemberMethod},
		),
	},
	{
		Package: "",
		Name:    "Array",
		Members: with(methods("concat", "every", "filter", "forEach", "indexOf", "join",
			"lastIndexOf", "map", "pop", "push", "reverse", "shift", "slice", "some",
			"sort", "sortOn", "splice", "unshift"),
			builtinMember{"length", MemberGetter},
			builtinMember{"CASEINSENSITIVE", MemberConst},
			builtinMember{"DESCENDING", MemberConst},
			builtinMember{"NUMERIC", MemberConst},
			builtinMember{"RETURNINDEXEDARRAY", MemberConst},
			builtinMember{"UNIQUESORT", MemberConst},
		),
	},
	{
		Package: "",
		Name:    "Math",
		Members: with(methods("abs", "acos", "asin", "atan", "atan2", "ceil", "cos", "exp",
			"floor", "log", "max", "min", "pow", "random", "round", "sin", "sqrt", "tan"),
			builtinMember{"E", MemberConst},
			builtinMember{"LN10", MemberConst},
			builtinMember{"LN2", MemberConst},
			builtinMember{"LOG10E", MemberConst},
			builtinMember{"LOG2E", MemberConst},
			builtinMember{"PI", MemberConst},
			builtinMember{"SQRT1_2", MemberConst},
			builtinMember{"SQRT2", MemberConst},
		),
	},
	{
		Package: "",
		Name:    "Date",
		Members: with(methods("getDate", "getDay", "getFullYear", "getHours", "getMilliseconds",
			"getMinutes", "getMonth", "getSeconds", "getTime", "setTime", "toString", "valueOf"),
			builtinMember{"time", MemberGetter},
		),
	},
	{
		Package: "",
		Name:    "RegExp",
		Members: with(methods("exec", "test"),
			builtinMember{"global", MemberGetter},
			builtinMember{"lastIndex", MemberGetter},
			builtinMember{"source", MemberGetter},
		),
	},
	{
		Package: "",
		Name:    "Error",
		Members: with(methods("getStackTrace", "toString"),
			builtinMember{"message", MemberSlot},
			builtinMember{"name", MemberSlot},
			builtinMember{"errorID", MemberGetter},
		),
	},
	{Package: "", Name: "ArgumentError"},
	{Package: "", Name: "RangeError"},
	{Package: "", Name: "ReferenceError"},
	{Package: "", Name: "TypeError"},
	{
		Package: "",
		Name:    "XML",
		Members: methods("attribute", "attributes", "child", "children", "elements",
			"name", "text", "toString", "toXMLString"),
	},
	{
		Package: "",
		Name:    "XMLList",
		Members: methods("attribute", "child", "children", "length", "toString", "toXMLString"),
	},
	{
		Package: "flash.events",
		Name:    "EventDispatcher",
		Members: methods("addEventListener", "dispatchEvent", "hasEventListener",
			"removeEventListener", "willTrigger"),
	},
	{
		Package: "flash.events",
		Name:    "Event",
		Members: with(methods("clone", "preventDefault", "stopPropagation", "toString"),
			builtinMember{"target", MemberGetter},
			builtinMember{"type", MemberGetter},
			builtinMember{"ADDED_TO_STAGE", MemberConst},
			builtinMember{"COMPLETE", MemberConst},
			builtinMember{"ENTER_FRAME", MemberConst},
			builtinMember{"INIT", MemberConst},
		),
	},
	{
		Package: "flash.events",
		Name:    "MouseEvent",
		Members: []builtinMember{
			{"localX", MemberGetter},
			{"localY", MemberGetter},
			{"CLICK", MemberConst},
			{"MOUSE_DOWN", MemberConst},
			{"MOUSE_UP", MemberConst},
		},
	},
	{
		Package: "flash.display",
		Name:    "DisplayObject",
		Members: []builtinMember{
			{"alpha", MemberGetter},
			{"height", MemberGetter},
			{"name", MemberGetter},
			{"parent", MemberGetter},
			{"rotation", MemberGetter},
			{"stage", MemberGetter},
			{"visible", MemberGetter},
			{"width", MemberGetter},
			{"x", MemberGetter},
			{"y", MemberGetter},
		},
	},
	{
		Package: "flash.display",
		Name:    "InteractiveObject",
		Members: []builtinMember{{"mouseEnabled", MemberGetter}},
	},
	{
		Package: "flash.display",
		Name:    "DisplayObjectContainer",
		Members: with(methods("addChild", "addChildAt", "contains", "getChildAt",
			"getChildByName", "getChildIndex", "removeChild", "removeChildAt"),
			builtinMember{"numChildren", MemberGetter},
		),
	},
	{
		Package: "flash.display",
		Name:    "Sprite",
		Members: with(methods("startDrag", "stopDrag"),
			builtinMember{"graphics", MemberGetter},
			builtinMember{"buttonMode", MemberGetter},
		),
	},
	{
		Package: "flash.display",
		Name:    "MovieClip",
		Members: with(methods("addFrameScript", "gotoAndPlay", "gotoAndStop", "nextFrame",
			"play", "prevFrame", "stop"),
			builtinMember{"currentFrame", MemberGetter},
			builtinMember{"totalFrames", MemberGetter},
		),
	},
	{
		Package: "flash.display",
		Name:    "Shape",
		Members: []builtinMember{{"graphics", MemberGetter}},
	},
	{
		Package: "flash.display",
		Name:    "Graphics",
		Members: methods("beginFill", "clear", "curveTo", "drawCircle", "drawRect",
			"endFill", "lineStyle", "lineTo", "moveTo"),
	},
	{
		Package: "flash.display",
		Name:    "Stage",
		Members: []builtinMember{
			{"frameRate", MemberGetter},
			{"stageHeight", MemberGetter},
			{"stageWidth", MemberGetter},
		},
	},
	{
		Package: "flash.text",
		Name:    "TextField",
		Members: with(methods("appendText", "setTextFormat"),
			builtinMember{"text", MemberGetter},
		),
	},
	{
		Package: "flash.utils",
		Name:    "ByteArray",
		Members: with(methods("readByte", "readInt", "readUTF", "writeByte", "writeInt", "writeUTF"),
			builtinMember{"length", MemberGetter},
			builtinMember{"position", MemberGetter},
		),
	},
	{Package: "flash.utils", Name: "Dictionary"},
	{
		Package: "flash.geom",
		Name:    "Point",
		Members: with(methods("add", "clone", "subtract"),
			builtinMember{"x", MemberSlot},
			builtinMember{"y", MemberSlot},
		),
	},
	{
		Package: "flash.geom",
		Name:    "Rectangle",
		Members: with(methods("contains", "intersects", "union"),
			builtinMember{"height", MemberSlot},
			builtinMember{"width", MemberSlot},
			builtinMember{"x", MemberSlot},
			builtinMember{"y", MemberSlot},
		),
	},
}

// DefaultClasses returns a new table holding the builtin classes. Each call
// returns fresh descriptors, so registries built from separate calls do not
// share state.
func DefaultClasses() ClassTable {
	table := make(ClassTable, len(builtins))
	for _, b := range builtins {
		c := NewClassInfo(abc.AccessPackage, b.Package, b.Name)
		for _, m := range b.Members {
			c.RegisterMember(m.Name, m.Kind)
		}
		table.Add(c)
	}
	return table
}
