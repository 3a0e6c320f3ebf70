package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/errors"
	"github.com/deepnoodle-ai/avm2/pkg/pool"
	"github.com/deepnoodle-ai/wonton/color"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	oldEnabled := color.Enabled
	t.Cleanup(func() { color.Enabled = oldEnabled })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--no-color"))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestInternJSON(t *testing.T) {
	out, _, err := execute(t, "", "intern", "flash.display.MovieClip", "Object",
		"flash.display::MovieClip", "--output", "json")
	require.NoError(t, err)

	var names []internedName
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	require.Len(t, names, 3)
	require.Equal(t, 1, names[0].Index)
	require.Equal(t, 2, names[1].Index)
	require.Equal(t, names[0].Index, names[2].Index)
	require.Equal(t, "[package]flash.display::MovieClip", names[0].Multiname)
	require.Equal(t, "[package]::Object", names[1].Multiname)
}

func TestInternText(t *testing.T) {
	out, _, err := execute(t, "", "intern", "a.B", "--int", "7,-1", "--string", "x")
	require.NoError(t, err)
	require.Contains(t, out, "1\ta.B\t[package]a::B\n")
	require.Contains(t, out, "| int       |     2 | int     | -1 ")
	require.Contains(t, out, `"x"`)
}

func TestInternWriteThenDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.bin")
	_, _, err := execute(t, "", "intern", "flash.events::Event", "trace", "--write", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	p, err := pool.Unmarshal(data)
	require.NoError(t, err)
	idx, ok := p.FindMultiname(abc.ParseMultiname("flash.events::Event"))
	require.True(t, ok)
	require.Equal(t, 1, idx)

	out, _, err := execute(t, "", "dump", path, "--output", "json")
	require.NoError(t, err)
	var dumped dumpOutput
	require.NoError(t, json.Unmarshal([]byte(out), &dumped))
	require.Equal(t, 2, dumped.Counts["multiname"])
	require.Equal(t, 3, dumped.Counts["string"])
	require.Equal(t, 0, dumped.Counts["namespace set"])
	require.Len(t, dumped.Entries, 3+2+2)

	out, _, err = execute(t, string(data), "dump", "-", "--summary")
	require.NoError(t, err)
	require.Contains(t, out, "| multiname     |     2 |")
}

func TestDumpMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 0, 0, 0, 0x02, 0x1d}, 0o644))

	_, _, err := execute(t, "", "dump", path)
	var perr *errors.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "multiname", perr.Location.Section)
	require.Contains(t, errorMessage(err), " | section: multiname")
}

func TestDumpMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "dump", filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}

func TestClassesJSON(t *testing.T) {
	out, _, err := execute(t, "", "classes", "--package", "flash.display", "--output", "json")
	require.NoError(t, err)

	var classes []classOutput
	require.NoError(t, json.Unmarshal([]byte(out), &classes))
	require.NotEmpty(t, classes)
	var found bool
	for _, c := range classes {
		require.True(t, strings.HasPrefix(c.Class, "flash.display::"), c.Class)
		if c.Class == "flash.display::MovieClip" {
			found = true
			require.Equal(t, "[package]flash.display::MovieClip", c.Multiname)
		}
	}
	require.True(t, found)
}

func TestClassMembers(t *testing.T) {
	out, _, err := execute(t, "", "classes", "flash.display.MovieClip")
	require.NoError(t, err)
	require.Contains(t, out, "| gotoAndPlay ")
	require.Contains(t, out, "| method ")

	_, _, err = execute(t, "", "classes", "no.Such")
	require.EqualError(t, err, "class not found: no.Such")
}

func TestClassesFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avm2pool.yaml")
	config := `
classes:
  - name: game::Player
    access: private
    members:
      - name: score
        kind: slot
      - name: jump
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	out, _, err := execute(t, "", "classes", "game::Player", "--config", path, "--output", "json")
	require.NoError(t, err)

	var class classOutput
	require.NoError(t, json.Unmarshal([]byte(out), &class))
	require.Equal(t, "game::Player", class.Class)
	require.Equal(t, "private", class.Access)
	require.Equal(t, []memberOutput{{Name: "jump", Kind: "method"}, {Name: "score", Kind: "slot"}}, class.Members)
}

func TestInvalidConfigClasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avm2pool.yaml")
	config := `
classes:
  - name: ""
  - name: x.Y
    access: nowhere
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	_, _, err := execute(t, "", "classes", "--config", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 errors occurred")
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "", "classes", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	var cerr *errors.ConfigError
	require.ErrorAs(t, err, &cerr)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, _, err := execute(t, "", "classes", "--output", "xml")
	require.EqualError(t, err, "unknown output format: xml")
}

func TestDebugLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.bin")
	_, _, err := execute(t, "", "intern", "a.B", "--write", path)
	require.NoError(t, err)

	_, stderr, err := execute(t, "", "dump", path, "--log-level", "debug", "--summary")
	require.NoError(t, err)
	require.Contains(t, stderr, "decoded constant pool section")
	require.Contains(t, stderr, "decoded pool")

	_, _, err = execute(t, "", "dump", path, "--log-level", "loud")
	require.EqualError(t, err, `invalid log level "loud"`)
}

func TestQuery(t *testing.T) {
	out, _, err := execute(t, "", "intern", "a.B", "c.D", "--query", "[].multiname")
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	require.Equal(t, []string{"[package]a::B", "[package]c::D"}, names)

	out, _, err = execute(t, "", "classes", "--query", "length([?starts_with(class, 'flash.events::')])")
	require.NoError(t, err)
	require.Equal(t, "3\n", out)

	_, _, err = execute(t, "", "intern", "a.B", "--query", "[")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid query")
}
