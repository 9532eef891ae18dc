package cli

import (
	"io"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/spf13/cobra"
)

func newLanesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lanes",
		Short: "List lanes in enumeration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, domain.AllLanes)
			}
			printLanes(out)
			return nil
		},
	}
}

func printLanes(w io.Writer) {
	rows := make([][]string, len(domain.AllLanes))
	for i, l := range domain.AllLanes {
		rows[i] = []string{l.String(), l.DisplayName()}
	}
	PrintTable(w, []string{"ID", "Name"}, rows)
}
