package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/avm2/pkg/dis"
	"github.com/deepnoodle-ai/avm2/pkg/pool"
	"github.com/spf13/cobra"
)

type internedName struct {
	Name      string `json:"name"`
	Index     int    `json:"index"`
	Multiname string `json:"multiname"`
}

func (a *app) internCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intern <name>...",
		Short: "Build a constant pool from qualified names",
		Long: `Build a constant pool from qualified names.

Each argument is a qualified name such as "flash.display::MovieClip",
"flash.display:MovieClip" or "flash.display.MovieClip". Equal names share
one multiname index.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runIntern,
	}
	cmd.Flags().StringP("write", "w", "", "write the encoded pool to this file")
	cmd.Flags().StringSlice("string", nil, "additional string constants")
	cmd.Flags().Int32Slice("int", nil, "additional int constants")
	return cmd
}

func (a *app) runIntern(cmd *cobra.Command, args []string) error {
	p := pool.New(pool.WithLogger(a.logger))

	strs, _ := cmd.Flags().GetStringSlice("string")
	for _, s := range strs {
		p.RegisterString(s)
	}
	ints, _ := cmd.Flags().GetInt32Slice("int")
	for _, v := range ints {
		p.RegisterInt(v)
	}

	var names []internedName
	for _, name := range args {
		idx := p.RegisterQualifiedName(name)
		names = append(names, internedName{
			Name:      name,
			Index:     idx,
			Multiname: p.MustMultinameAt(idx).String(),
		})
	}

	if path, _ := cmd.Flags().GetString("write"); path != "" {
		data, err := pool.Marshal(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		a.logger.Info().Str("path", path).Int("bytes", len(data)).Msg("wrote pool")
	}

	out := cmd.OutOrStdout()
	if a.outputFormat() == "json" {
		return writeJSON(a.v, out, names)
	}
	for _, n := range names {
		fmt.Fprintf(out, "%d\t%s\t%s\n", n.Index, n.Name, n.Multiname)
	}
	fmt.Fprintln(out)
	return dis.PrintPool(p, out)
}
