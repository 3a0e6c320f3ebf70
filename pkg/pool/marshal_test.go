package pool

import (
	"bytes"
	"math"
	"testing"

	"github.com/deepnoodle-ai/avm2/internal/wire"
	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func samplePool() *Pool {
	p := New()
	p.RegisterInt(-1)
	p.RegisterInt(1 << 20)
	p.RegisterUint(math.MaxUint32)
	p.RegisterDouble(3.25)
	p.RegisterDouble(math.Inf(-1))
	p.RegisterString("")
	p.RegisterString("héllo")

	set := abc.NewNamespaceSet(
		abc.PackageNamespace(""),
		abc.NewNamespace(abc.AccessPrivate, "Main"),
		abc.NewNamespace(abc.AccessProtected, "flash.display:Sprite"),
	)
	for _, m := range []*abc.Multiname{
		abc.ParseMultiname("flash.display.MovieClip"),
		abc.NewQNameA(abc.NewNamespace(abc.AccessNamespace, "http://adobe.com/AS3/2006/builtin"), "id"),
		{Kind: abc.KindQName, Name: "anywhere"},
		abc.NewRTQName("rt"),
		abc.NewRTQNameA("rtA"),
		abc.NewRTQNameL(),
		abc.NewRTQNameLA(),
		abc.NewMultiname(set, "trace"),
		abc.NewMultinameA(set, "attr"),
		abc.NewMultinameL(set),
		abc.NewMultinameLA(abc.NewNamespaceSet(abc.NewNamespace(abc.AccessExplicit, "x"))),
	} {
		p.RegisterMultiname(m)
	}
	p.RegisterNamespace(abc.NewNamespace(abc.AccessStaticProtected, "Main"))
	p.RegisterNamespace(abc.NewNamespace(abc.AccessPackageInternal, ""))
	return p
}

func requireSamePool(t *testing.T, got, want *Pool) {
	t.Helper()
	for _, s := range Sections {
		require.Equal(t, want.Count(s), got.Count(s), "section %s", s)
	}
	for i := 1; i <= want.IntCount(); i++ {
		a, _ := got.IntAt(i)
		b, _ := want.IntAt(i)
		require.Equal(t, b, a)
	}
	for i := 1; i <= want.UintCount(); i++ {
		a, _ := got.UintAt(i)
		b, _ := want.UintAt(i)
		require.Equal(t, b, a)
	}
	for i := 1; i <= want.DoubleCount(); i++ {
		a, _ := got.DoubleAt(i)
		b, _ := want.DoubleAt(i)
		require.Equal(t, math.Float64bits(b), math.Float64bits(a))
	}
	for i := 1; i <= want.StringCount(); i++ {
		a, _ := got.StringAt(i)
		b, _ := want.StringAt(i)
		require.Equal(t, b, a)
	}
	for i := 1; i <= want.NamespaceCount(); i++ {
		a, _ := got.NamespaceAt(i)
		b, _ := want.NamespaceAt(i)
		require.Equal(t, b, a)
	}
	for i := 1; i <= want.NamespaceSetCount(); i++ {
		a, _ := got.NamespaceSetAt(i)
		b, _ := want.NamespaceSetAt(i)
		require.True(t, b.Equal(a), "set %d: want %s, got %s", i, b, a)
	}
	for i := 1; i <= want.MultinameCount(); i++ {
		a := got.MustMultinameAt(i)
		b := want.MustMultinameAt(i)
		require.True(t, b.Equal(a), "multiname %d: want %s, got %s", i, b, a)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	p := samplePool()
	require.NoError(t, p.Validate())

	data, err := Marshal(p)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	requireSamePool(t, decoded, p)

	again, err := Marshal(decoded)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestMarshalEmptyPool(t *testing.T) {
	data, err := Marshal(New())
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0}, data)

	p, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, 0, p.MultinameCount())
}

func TestUnmarshalCountOfOne(t *testing.T) {
	// A count of 1 declares zero entries, the same as 0.
	p, err := Unmarshal([]byte{1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	for _, s := range Sections {
		require.Equal(t, 0, p.Count(s))
	}
}

func TestUnmarshalHandWritten(t *testing.T) {
	data := []byte{
		0x02, 0xff, 0xff, 0xff, 0xff, 0x0f, // ints: -1
		0x00,                               // uints
		0x00,                               // doubles
		0x03, 0x00, 0x06, 'O', 'b', 'j', 'e', 'c', 't', // strings: "", "Object"
		0x02, 0x16, 0x01, // namespaces: package ""
		0x02, 0x01, 0x01, // sets: {ns1}
		0x04,
		0x07, 0x01, 0x02, // QName ns1 "Object"
		0x1b, 0x01, // MultinameL set1
		0x07, 0x00, 0x00, // QName any namespace, no name
	}
	p, err := Unmarshal(data)
	require.NoError(t, err)

	v, err := p.IntAt(1)
	require.NoError(t, err)
	require.Equal(t, int32(-1), v)

	s, err := p.StringAt(1)
	require.NoError(t, err)
	require.Equal(t, "", s)

	ns, err := p.NamespaceAt(1)
	require.NoError(t, err)
	require.Equal(t, abc.PackageNamespace(""), ns)

	require.True(t, p.MustMultinameAt(1).Equal(abc.NewQName(abc.PackageNamespace(""), "Object")))
	require.True(t, p.MustMultinameAt(2).Equal(abc.NewMultinameL(abc.NewNamespaceSet(abc.PackageNamespace("")))))

	third := p.MustMultinameAt(3)
	require.Nil(t, third.NS)
	require.Equal(t, "", third.Name)
	require.Equal(t, "*::*", third.String())
}

func TestUnmarshalKeepsDuplicates(t *testing.T) {
	data := []byte{
		0x03, 0x05, 0x05, // ints: 5, 5
		0x00, 0x00,
		0x03, 0x01, 'a', 0x01, 'a', // strings: "a", "a"
		0x00, 0x00, 0x00,
	}
	p, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, 2, p.IntCount())
	require.Equal(t, 2, p.StringCount())

	idx, ok := p.FindString("a")
	require.True(t, ok)
	require.Equal(t, 1, idx)
	require.Equal(t, 1, p.RegisterString("a"))

	out, err := Marshal(p)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestUnmarshalTruncated(t *testing.T) {
	data, err := Marshal(samplePool())
	require.NoError(t, err)

	for n := 0; n < len(data); n++ {
		_, err := Unmarshal(data[:n])
		require.Error(t, err, "prefix of %d bytes", n)
		var perr *errors.ParseError
		require.ErrorAs(t, err, &perr, "prefix of %d bytes", n)
		require.Equal(t, errors.ErrMalformed, perr.Kind())
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		section string
		entry   int
		message string
	}{
		{
			name:    "string index out of range",
			data:    []byte{0, 0, 0, 0x02, 0x01, 'a', 0x02, 0x16, 0x05, 0, 0},
			section: "namespace",
			entry:   1,
			message: "string index 5 out of range (1..1)",
		},
		{
			name:    "unknown namespace kind",
			data:    []byte{0, 0, 0, 0, 0x02, 0x42, 0x00, 0, 0},
			section: "namespace",
			entry:   1,
			message: "unknown namespace kind 0x42",
		},
		{
			name:    "namespace index zero in set",
			data:    []byte{0, 0, 0, 0, 0x02, 0x16, 0x00, 0x02, 0x01, 0x00, 0},
			section: "namespace set",
			entry:   1,
			message: "namespace index 0 is not allowed here",
		},
		{
			name:    "unknown multiname kind",
			data:    []byte{0, 0, 0, 0, 0, 0, 0x02, 0x1d},
			section: "multiname",
			entry:   1,
			message: "unknown multiname kind 0x1d",
		},
		{
			name:    "missing namespace set",
			data:    []byte{0, 0, 0, 0, 0, 0, 0x02, 0x1b, 0x00},
			section: "multiname",
			entry:   1,
			message: "namespace set index 0 out of range (1..0)",
		},
		{
			name:    "namespace out of range",
			data:    []byte{0, 0, 0, 0, 0, 0, 0x03, 0x0f, 0x00, 0x07, 0x03, 0x00},
			section: "multiname",
			entry:   2,
			message: "namespace index 3 out of range (1..0)",
		},
		{
			name:    "count larger than input",
			data:    []byte{0x7f, 0x01},
			section: "int",
			message: "126 entries declared with 1 bytes remaining",
		},
		{
			name:    "overlong count",
			data:    []byte{0xff, 0xff, 0xff, 0xff, 0x7f},
			section: "int",
			message: "reading entry count",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal(tc.data)
			var perr *errors.ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, tc.section, perr.Location.Section)
			require.Equal(t, tc.entry, perr.Location.Entry)
			require.Equal(t, tc.message, perr.Message)
		})
	}
}

func TestUnmarshalTrailingBytes(t *testing.T) {
	_, err := Unmarshal([]byte{0, 0, 0, 0, 0, 0, 0, 0xaa})
	var perr *errors.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "1 trailing bytes after constant pool", perr.Message)
	require.Equal(t, 7, perr.Location.Offset)
}

func TestDecodeLeavesReaderAfterPool(t *testing.T) {
	data, err := Marshal(samplePool())
	require.NoError(t, err)
	data = append(data, 0x10, 0x00)

	r := wire.NewReader(data)
	p := New()
	require.NoError(t, p.Decode(r))
	require.Equal(t, 2, r.Remaining())

	err = p.Decode(wire.NewReader(data))
	var ierr *errors.InternalError
	require.ErrorAs(t, err, &ierr)
}

func TestEncodeRejectsUnregisteredParts(t *testing.T) {
	p := New()
	// Appending directly bypasses registration of the namespace and name.
	p.multinames.Append(abc.NewQName(abc.PackageNamespace("pkg"), "Lost"))

	err := p.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "namespace [package]pkg is not in the pool")
	require.Contains(t, err.Error(), `name "Lost" is not in the pool`)

	_, err = Marshal(p)
	var ierr *errors.InternalError
	require.ErrorAs(t, err, &ierr)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	p := New()
	p.namespaces.Append(abc.NewNamespace(abc.Access(0x42), ""))
	p.multinames.Append(&abc.Multiname{Kind: abc.KindMultinameL})
	p.multinames.Append(&abc.Multiname{Kind: abc.MultinameKind(0x01)})

	err := p.Validate()
	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "3 errors occurred")
	require.Contains(t, msg, "namespace 1: unknown access kind 0x42")
	require.Contains(t, msg, "multiname 1:")
	require.Contains(t, msg, "multiname 2:")
}

func TestUnmarshalLogsSections(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	data, err := Marshal(samplePool())
	require.NoError(t, err)
	_, err = Unmarshal(data, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	require.Equal(t, len(Sections), bytes.Count(buf.Bytes(), []byte("decoded constant pool section")))
	require.Contains(t, out, `"section":"multiname"`)
	require.Contains(t, out, `"count":11`)
}
