package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// options holds the flags shared by every command.
type options struct {
	jsonOutput bool
	dataPath   string
	serverURL  string
}

// remote reports whether commands should go through a running server.
func (o *options) remote() bool {
	return o.serverURL != ""
}

// NewRootCommand builds the skinsetctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "skinsetctl",
		Version: version,
		Short:   "Find team comps that share a skinset",
		Long: `skinsetctl runs the skinset finder offline against a YAML reference file.

Give it a roster of players and the champions each of them plays, and it lists
every champion/lane assignment whose champions all share at least one skinset.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&opts.dataPath, "data", "", "Reference data YAML (defaults to the bundled dataset)")
	rootCmd.PersistentFlags().StringVar(&opts.serverURL, "server", os.Getenv("SKINSETCTL_SERVER"), "Use a running server instead of local data")

	rootCmd.AddCommand(
		newResolveCmd(opts),
		newSkinsetsCmd(opts),
		newLanesCmd(opts),
		newImportCmd(opts),
		newSyncCmd(opts),
	)

	return rootCmd
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}
