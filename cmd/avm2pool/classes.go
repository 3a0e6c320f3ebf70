package main

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/avm2/pkg/abc"
	"github.com/deepnoodle-ai/avm2/pkg/dis"
	"github.com/deepnoodle-ai/avm2/pkg/errors"
	"github.com/deepnoodle-ai/avm2/pkg/registry"
	"github.com/spf13/cobra"
)

type classOutput struct {
	Class     string         `json:"class"`
	Access    string         `json:"access"`
	Multiname string         `json:"multiname"`
	Members   []memberOutput `json:"members,omitempty"`
}

type memberOutput struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (a *app) classesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes [class]",
		Short: "List the classes known to the registry",
		Long: `List the classes known to the registry.

The registry holds the builtin classes plus any classes listed under
"classes" in the config file. With an argument, the members of that class
are printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runClasses,
	}
	cmd.Flags().String("package", "", "only list classes in this package")
	return cmd
}

// newRegistry returns a registry seeded with the builtin classes and the
// classes from the config file.
func (a *app) newRegistry() (*registry.Registry, error) {
	var specs []registry.ClassSpec
	if err := a.v.UnmarshalKey("classes", &specs); err != nil {
		return nil, errors.ConfigErrorf("classes: %w", err)
	}
	extra, err := registry.BuildClassTable(specs)
	if err != nil {
		return nil, err
	}
	table := registry.DefaultClasses()
	table.Merge(extra)
	return registry.New(registry.WithClasses(table), registry.WithLogger(a.logger)), nil
}

func (a *app) runClasses(cmd *cobra.Command, args []string) error {
	r, err := a.newRegistry()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		pkg, name := abc.SplitQualified(args[0])
		c, ok := r.FindClass(pkg, name)
		if !ok {
			return fmt.Errorf("class not found: %s", args[0])
		}
		if a.outputFormat() == "json" {
			return writeJSON(a.v, out, newClassOutput(c, true))
		}
		return dis.PrintMembers(c, out)
	}

	classes := r.Classes()
	if pkg, _ := cmd.Flags().GetString("package"); cmd.Flags().Changed("package") {
		classes = filterPackage(classes, pkg)
	}
	if a.outputFormat() == "json" {
		result := make([]classOutput, 0, len(classes))
		for _, c := range classes {
			result = append(result, newClassOutput(c, false))
		}
		return writeJSON(a.v, out, result)
	}
	return dis.PrintClasses(classes, out)
}

func filterPackage(classes []*registry.ClassInfo, pkg string) []*registry.ClassInfo {
	var result []*registry.ClassInfo
	for _, c := range classes {
		if strings.EqualFold(c.Package, pkg) {
			result = append(result, c)
		}
	}
	return result
}

func newClassOutput(c *registry.ClassInfo, members bool) classOutput {
	out := classOutput{
		Class:     c.Signature().String(),
		Access:    c.Access.String(),
		Multiname: registry.ClassToMultiname(c).String(),
	}
	if members {
		for _, m := range c.Members() {
			out.Members = append(out.Members, memberOutput{Name: m.Name, Kind: m.Kind.String()})
		}
	}
	return out
}
