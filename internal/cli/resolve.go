package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dom/league-skinset-finder/internal/client"
	"github.com/dom/league-skinset-finder/internal/finder"
	"github.com/dom/league-skinset-finder/internal/refdata"
	"github.com/spf13/cobra"
)

// rosterFile is the JSON roster accepted by resolve. It has the same shape as
// the body of POST /api/v1/comps/resolve.
type rosterFile struct {
	Players          []refdata.Player `json:"players"`
	ExcludedSkinsets []string         `json:"excludedSkinsets"`
}

type resolveOutput struct {
	Players []string             `json:"players"`
	Count   int                  `json:"count"`
	Results []finder.ResultEntry `json:"results"`
}

func newResolveCmd(opts *options) *cobra.Command {
	var (
		rosterPath string
		exclude    []string
		limits     = finder.DefaultLimits
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "List the comps of a roster that share a skinset",
		Long: `Resolve reads a roster from a JSON file and prints every champion/lane
assignment whose champions all share at least one skinset.

Champions listed without lanes use the lanes from the reference data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := readRoster(cmd.InOrStdin(), rosterPath)
			if err != nil {
				return err
			}
			file.ExcludedSkinsets = append(file.ExcludedSkinsets, exclude...)

			var players []string
			var entries []finder.ResultEntry
			if opts.remote() {
				players, entries, err = resolveRemote(cmd.Context(), opts.serverURL, file)
			} else {
				players, entries, err = resolveLocal(opts.dataPath, file, limits)
			}
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []finder.ResultEntry{}
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, resolveOutput{Players: players, Count: len(entries), Results: entries})
			}

			if len(entries) == 0 {
				PrintWarning(out, "No comps share a skinset")
				return nil
			}

			headers := append([]string{"#"}, players...)
			headers = append(headers, "Skinsets")
			rows := make([][]string, len(entries))
			for i, e := range entries {
				row := []string{fmt.Sprintf("%d", i+1)}
				for _, p := range e.Assignment {
					row = append(row, fmt.Sprintf("%s (%s)", p.Champion, p.Lane))
				}
				names := make([]string, len(e.Skinsets))
				for j, s := range e.Skinsets {
					names[j] = string(s)
				}
				rows[i] = append(row, strings.Join(names, ", "))
			}

			PrintTable(out, headers, rows)
			fmt.Fprintln(out)
			PrintSuccess(out, fmt.Sprintf("Found %s", PrintCount(len(entries), "comp", "comps")))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Roster JSON file (- for stdin)")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "Skinsets to ignore, by name or slug")
	cmd.Flags().IntVar(&limits.MaxPlayers, "max-players", limits.MaxPlayers, "Largest roster accepted (0 for no limit)")
	cmd.Flags().IntVar(&limits.MaxAssignments, "max-assignments", limits.MaxAssignments, "Largest partial search accepted (0 for no limit)")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func resolveLocal(dataPath string, file *rosterFile, limits finder.Limits) ([]string, []finder.ResultEntry, error) {
	ds, err := loadDataset(dataPath)
	if err != nil {
		return nil, nil, err
	}

	q := refdata.BuildQuery(file.Players, file.ExcludedSkinsets, ds.Lookup())
	entries, err := finder.ResolvePlayableCompsWithLimits(q.Roster, ds.Index(), q.Excluded, limits)
	if err != nil {
		return nil, nil, err
	}
	return q.Players, entries, nil
}

// resolveRemote sends the roster as is. The server fills in lanes and
// applies its own limits.
func resolveRemote(ctx context.Context, serverURL string, file *rosterFile) ([]string, []finder.ResultEntry, error) {
	req := client.ResolveRequest{ExcludedSkinsets: file.ExcludedSkinsets}
	for _, p := range file.Players {
		req.Players = append(req.Players, client.Player{Name: p.Name, Exclude: p.Exclude, Champions: p.Champions})
	}

	resp, err := client.NewAPIClient(serverURL).Resolve(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return resp.Players, resp.Results, nil
}

func loadDataset(path string) (*refdata.Dataset, error) {
	if path == "" {
		return refdata.Default()
	}
	return refdata.LoadFile(path)
}

func readRoster(stdin io.Reader, path string) (*rosterFile, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var file rosterFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	return &file, nil
}
