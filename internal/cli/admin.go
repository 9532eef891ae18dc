package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dom/league-skinset-finder/internal/client"
	"github.com/dom/league-skinset-finder/internal/refdata"
	"github.com/spf13/cobra"
)

const passwordEnv = "SKINSETCTL_ADMIN_PASSWORD"

var errServerRequired = errors.New("--server is required")

func adminPassword(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(passwordEnv); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("admin password required: use --password or %s", passwordEnv)
}

func newImportCmd(opts *options) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the server's skinsets with a reference YAML file",
		Long: `Import validates FILE locally, then uploads it to the server, which
replaces its skinsets and champion lanes and reloads the finder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.remote() {
				return errServerRequired
			}
			pw, err := adminPassword(password)
			if err != nil {
				return err
			}

			if _, err := refdata.LoadFile(args[0]); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			api := client.NewAPIClient(opts.serverURL)
			token, err := api.Login(cmd.Context(), pw)
			if err != nil {
				return err
			}
			result, err := api.ImportReference(cmd.Context(), token, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, result)
			}
			PrintSuccess(out, fmt.Sprintf("Imported %s and %s",
				PrintCount(result.Skinsets, "skinset", "skinsets"),
				PrintCount(result.Champions, "champion", "champions")))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Admin password (or set "+passwordEnv+")")
	return cmd
}

func newSyncCmd(opts *options) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the server's champion metadata from Data Dragon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.remote() {
				return errServerRequired
			}
			pw, err := adminPassword(password)
			if err != nil {
				return err
			}

			api := client.NewAPIClient(opts.serverURL)
			token, err := api.Login(cmd.Context(), pw)
			if err != nil {
				return err
			}
			result, err := api.SyncChampions(cmd.Context(), token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, result)
			}
			PrintSuccess(out, fmt.Sprintf("Synced %s from Data Dragon %s",
				PrintCount(result.Synced, "champion", "champions"), result.Version))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Admin password (or set "+passwordEnv+")")
	return cmd
}
