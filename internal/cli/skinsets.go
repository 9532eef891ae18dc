package cli

import (
	"context"
	"fmt"

	"github.com/dom/league-skinset-finder/internal/client"
	"github.com/dom/league-skinset-finder/internal/refdata"
	"github.com/spf13/cobra"
)

type skinsetOutput struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Champions []string `json:"champions"`
}

func newSkinsetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "skinsets",
		Short: "List the skinsets in the reference data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skinsets, err := listSkinsets(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, skinsets)
			}

			if len(skinsets) == 0 {
				PrintEmptyState(out, "No skinsets found")
				return nil
			}

			rows := make([][]string, len(skinsets))
			for i, s := range skinsets {
				rows[i] = []string{s.Name, s.ID, fmt.Sprintf("%d", len(s.Champions))}
			}
			PrintSection(out, PrintCount(len(skinsets), "skinset", "skinsets"))
			PrintTable(out, []string{"Name", "ID", "Champions"}, rows)
			return nil
		},
	}
}

func listSkinsets(ctx context.Context, opts *options) ([]skinsetOutput, error) {
	if opts.remote() {
		remote, err := client.NewAPIClient(opts.serverURL).Skinsets(ctx)
		if err != nil {
			return nil, err
		}
		skinsets := make([]skinsetOutput, len(remote))
		for i, s := range remote {
			skinsets[i] = skinsetOutput{ID: s.ID, Name: s.Name, Champions: s.Champions}
		}
		return skinsets, nil
	}

	ds, err := loadDataset(opts.dataPath)
	if err != nil {
		return nil, err
	}
	skinsets := make([]skinsetOutput, len(ds.Skinsets))
	for i, s := range ds.Skinsets {
		skinsets[i] = skinsetOutput{ID: refdata.Slug(s.Name), Name: s.Name, Champions: s.Champions}
	}
	return skinsets, nil
}
