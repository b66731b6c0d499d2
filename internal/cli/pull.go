package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/prompt"
	"github.com/txgo/txgo/internal/sync"
)

// PullCommand handles the pull command
type PullCommand struct {
	fs        filesystem.FileSystem
	prompter  prompt.Prompter
	newClient ClientFactory
}

// NewPullCommand creates a new pull command
func NewPullCommand(fs filesystem.FileSystem, prompter prompt.Prompter, newClient ClientFactory) *cobra.Command {
	cmd := &PullCommand{fs: fs, prompter: prompter, newClient: newClient}

	cobraCmd := &cobra.Command{
		Use:   "pull",
		Short: "Download translation files from the remote service",
		Long: `Downloads the translations of the configured resources into their mapped
files. With --disable-overwrite, existing files are kept and the fetched
version is written next to them with a .new suffix.

--all fetches every language the remote server knows; languages without a
local mapping are saved under .txgo/pulls/ for manual adoption.`,
		Example: `  # Pull all configured translations
  txgo pull

  # Pull only German, even if it is less complete than --minimum-perc
  txgo pull -l de

  # Fetch every remote language of one resource
  txgo pull --all -r myproject.ui`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP("resource", "r", "", "Comma-separated resource keys (default: all)")
	cobraCmd.Flags().StringP("language", "l", "", "Comma-separated language codes (default: all configured)")
	cobraCmd.Flags().BoolP("all", "a", false, "Fetch every language the remote server reports")
	cobraCmd.Flags().BoolP("source", "s", false, "Also fetch the source files")
	cobraCmd.Flags().BoolP("force", "f", false, "Fetch regardless of local state")
	cobraCmd.Flags().Bool("disable-overwrite", false, "Write <file>.new instead of replacing existing files")
	cobraCmd.Flags().Int("minimum-perc", 0, "Skip translations below this completion percentage")
	cobraCmd.Flags().Bool("skip", false, "Record per-file errors and continue")

	return cobraCmd
}

// Run executes the pull command
func (c *PullCommand) Run(cmd *cobra.Command, args []string) error {
	resources, _ := cmd.Flags().GetString("resource")
	languages, _ := cmd.Flags().GetString("language")
	fetchAll, _ := cmd.Flags().GetBool("all")
	fetchSource, _ := cmd.Flags().GetBool("source")
	force, _ := cmd.Flags().GetBool("force")
	disableOverwrite, _ := cmd.Flags().GetBool("disable-overwrite")
	minimumPerc, _ := cmd.Flags().GetInt("minimum-perc")
	skip, _ := cmd.Flags().GetBool("skip")

	p, err := openProject(c.fs)
	if err != nil {
		return err
	}

	client, err := clientForProject(c.fs, c.prompter, c.newClient, p)
	if err != nil {
		return err
	}

	engine := sync.NewEngine(p, client)
	engine.Progress = func(format string, a ...interface{}) {
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", a...)
	}

	report, err := engine.Pull(cmd.Context(), sync.PullOptions{
		Resources:   splitList(resources),
		Languages:   splitList(languages),
		FetchAll:    fetchAll,
		FetchSource: fetchSource,
		Overwrite:   !disableOverwrite,
		Force:       force,
		MinimumPerc: minimumPerc,
		SkipErrors:  skip,
	})
	if err != nil {
		return err
	}

	return finishReport(report, func(format string, a ...interface{}) {
		fmt.Fprintf(cmd.ErrOrStderr(), format, a...)
	})
}
