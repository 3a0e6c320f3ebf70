// Package dis renders constant pools and class registries as tables for
// inspection. Values are colorized when color output is enabled.
package dis

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/avm2/internal/table"
	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/pool"
	"github.com/deepnoodle-ai/avm2/pkg/registry"
	"github.com/deepnoodle-ai/wonton/color"
	"github.com/mattn/go-runewidth"
)

// maxStringLen is the display width at which string constants are
// truncated.
const maxStringLen = 80

// Entry is one constant of a pool.
type Entry struct {
	Section pool.Section `json:"-"`
	Index   int          `json:"index"`
	Kind    string       `json:"kind"`
	Value   any          `json:"value"`
	Text    string       `json:"text"`
}

// SectionName returns the name of the section holding the entry.
func (e Entry) SectionName() string {
	return e.Section.String()
}

// Entries lists every constant of p in section order and then index order.
func Entries(p *pool.Pool) ([]Entry, error) {
	var entries []Entry
	for _, s := range pool.Sections {
		for i := 1; i <= p.Count(s); i++ {
			e, err := entry(p, s, i)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func entry(p *pool.Pool, s pool.Section, idx int) (Entry, error) {
	e := Entry{Section: s, Index: idx, Kind: s.String()}
	switch s {
	case pool.SectionInt:
		v, err := p.IntAt(idx)
		if err != nil {
			return e, err
		}
		e.Value, e.Text = v, strconv.FormatInt(int64(v), 10)
	case pool.SectionUint:
		v, err := p.UintAt(idx)
		if err != nil {
			return e, err
		}
		e.Value, e.Text = v, strconv.FormatUint(uint64(v), 10)
	case pool.SectionDouble:
		v, err := p.DoubleAt(idx)
		if err != nil {
			return e, err
		}
		e.Text = strconv.FormatFloat(v, 'g', -1, 64)
		e.Value = v
		if math.IsNaN(v) || math.IsInf(v, 0) {
			e.Value = e.Text
		}
	case pool.SectionString:
		v, err := p.StringAt(idx)
		if err != nil {
			return e, err
		}
		e.Value, e.Text = v, strconv.Quote(v)
	case pool.SectionNamespace:
		v, err := p.NamespaceAt(idx)
		if err != nil {
			return e, err
		}
		e.Kind = v.Access.String()
		e.Value, e.Text = v.String(), v.String()
	case pool.SectionNamespaceSet:
		v, err := p.NamespaceSetAt(idx)
		if err != nil {
			return e, err
		}
		e.Value, e.Text = v.String(), v.String()
	case pool.SectionMultiname:
		v, err := p.MultinameAt(idx)
		if err != nil {
			return e, err
		}
		e.Kind = v.Kind.String()
		e.Value, e.Text = v.String(), v.String()
	default:
		return e, fmt.Errorf("unknown section %d", int(s))
	}
	return e, nil
}

// bold applies bold formatting if colors are enabled.
func bold(s string) string {
	if !color.Enabled {
		return s
	}
	return color.ApplyBold(s)
}

func colorize(e Entry) string {
	switch e.Section {
	case pool.SectionInt, pool.SectionUint, pool.SectionDouble:
		return color.Colorize(color.Yellow, e.Text)
	case pool.SectionString:
		text := e.Text
		if v, ok := e.Value.(string); ok && runewidth.StringWidth(text) > maxStringLen {
			text = strconv.Quote(runewidth.Truncate(v, maxStringLen-2, "..."))
		}
		return color.Colorize(color.Green, text)
	case pool.SectionNamespace, pool.SectionNamespaceSet:
		return color.Colorize(color.BrightCyan, e.Text)
	default:
		return color.Colorize(color.Magenta, e.Text)
	}
}

// PrintPool writes every constant of p to w as a table.
func PrintPool(p *pool.Pool, w io.Writer) error {
	entries, err := Entries(p)
	if err != nil {
		return err
	}
	return PrintEntries(entries, w)
}

// PrintEntries writes the given entries to w as a table.
func PrintEntries(entries []Entry, w io.Writer) error {
	var lines [][]string
	for _, e := range entries {
		lines = append(lines, []string{
			e.SectionName(),
			strconv.Itoa(e.Index),
			bold(e.Kind),
			colorize(e),
		})
	}
	return table.NewTable(w).
		WithHeader([]string{"SECTION", "INDEX", "KIND", "VALUE"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

// PrintSummary writes the number of entries per section.
func PrintSummary(p *pool.Pool, w io.Writer) error {
	var lines [][]string
	for _, s := range pool.Sections {
		lines = append(lines, []string{s.String(), strconv.Itoa(p.Count(s))})
	}
	return table.NewTable(w).
		WithHeader([]string{"SECTION", "COUNT"}).
		WithColumnAlignment([]table.Alignment{table.AlignLeft, table.AlignRight}).
		WithRows(lines).
		Render()
}

// PrintClasses writes one row per class with its reference multiname and
// its members.
func PrintClasses(classes []*registry.ClassInfo, w io.Writer) error {
	var lines [][]string
	for _, c := range classes {
		lines = append(lines, []string{
			bold(c.Signature().String()),
			c.Access.String(),
			color.Colorize(color.Magenta, registry.ClassToMultiname(c).String()),
			formatMembers(c.Members()),
		})
	}
	return table.NewTable(w).
		WithHeader([]string{"CLASS", "ACCESS", "MULTINAME", "MEMBERS"}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

// PrintMembers writes the members of a class, one per row.
func PrintMembers(c *registry.ClassInfo, w io.Writer) error {
	var lines [][]string
	for _, m := range c.Members() {
		lines = append(lines, []string{m.Name, color.Colorize(color.BrightCyan, m.Kind.String())})
	}
	return table.NewTable(w).
		WithHeader([]string{"MEMBER", "KIND"}).
		WithRows(lines).
		Render()
}

func formatMembers(members []*registry.MemberInfo) string {
	const limit = 6
	var sb strings.Builder
	for i, m := range members {
		if i == limit {
			fmt.Fprintf(&sb, ", +%d more", len(members)-limit)
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.Name)
	}
	return sb.String()
}

// Multiname renders the multiname at idx, or "NULL" for index 0 the way
// instruction operands refer to an absent name.
func Multiname(p *pool.Pool, idx int) (string, error) {
	if idx == 0 {
		return (*abc.Multiname)(nil).String(), nil
	}
	m, err := p.MultinameAt(idx)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}
