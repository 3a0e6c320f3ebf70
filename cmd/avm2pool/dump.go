package main

import (
	"github.com/deepnoodle-ai/avm2/pkg/dis"
	"github.com/deepnoodle-ai/avm2/pkg/pool"
	"github.com/spf13/cobra"
)

type dumpOutput struct {
	Counts  map[string]int `json:"counts"`
	Entries []dis.Entry    `json:"entries,omitempty"`
}

func (a *app) dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode a serialized constant pool and print its entries",
		Long: `Decode a serialized constant pool and print its entries.

The file must contain exactly one constant pool, as produced by
"avm2pool intern --write". Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runDump,
	}
	cmd.Flags().Bool("summary", false, "only print the number of entries per section")
	return cmd
}

func (a *app) runDump(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	p, err := pool.Unmarshal(data, pool.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.logger.Info().Int("bytes", len(data)).Stringer("pool", p).Msg("decoded pool")
	if err := p.Validate(); err != nil {
		warn(cmd.ErrOrStderr(), "%s", err)
	}

	summary, _ := cmd.Flags().GetBool("summary")
	if a.outputFormat() == "json" {
		out := dumpOutput{Counts: map[string]int{}}
		for _, s := range pool.Sections {
			out.Counts[s.String()] = p.Count(s)
		}
		if !summary {
			if out.Entries, err = dis.Entries(p); err != nil {
				return err
			}
		}
		return writeJSON(a.v, cmd.OutOrStdout(), out)
	}
	if summary {
		return dis.PrintSummary(p, cmd.OutOrStdout())
	}
	return dis.PrintPool(p, cmd.OutOrStdout())
}
