package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/prompt"
	"github.com/txgo/txgo/internal/sync"
)

// PushCommand handles the push command
type PushCommand struct {
	fs        filesystem.FileSystem
	prompter  prompt.Prompter
	newClient ClientFactory
}

// NewPushCommand creates a new push command
func NewPushCommand(fs filesystem.FileSystem, prompter prompt.Prompter, newClient ClientFactory) *cobra.Command {
	cmd := &PushCommand{fs: fs, prompter: prompter, newClient: newClient}

	cobraCmd := &cobra.Command{
		Use:   "push",
		Short: "Upload local files to the remote service",
		Long: `Uploads the mapped source and/or translation files of the configured
resources. At least one of --source and --translations must be given.

Resources the remote server does not know yet are only created with --force.`,
		Example: `  # Push all source files
  txgo push --source

  # Push the German and French translations of one resource
  txgo push --translations -r myproject.ui -l de,fr`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolP("source", "s", false, "Push source files")
	cobraCmd.Flags().BoolP("translations", "t", false, "Push translation files")
	cobraCmd.Flags().StringP("resource", "r", "", "Comma-separated resource keys (default: all)")
	cobraCmd.Flags().StringP("language", "l", "", "Comma-separated language codes (default: all configured)")
	cobraCmd.Flags().BoolP("force", "f", false, "Create resources missing on the remote server")
	cobraCmd.Flags().Bool("skip", false, "Record per-file errors and continue")

	return cobraCmd
}

// Run executes the push command
func (c *PushCommand) Run(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetBool("source")
	translations, _ := cmd.Flags().GetBool("translations")
	resources, _ := cmd.Flags().GetString("resource")
	languages, _ := cmd.Flags().GetString("language")
	force, _ := cmd.Flags().GetBool("force")
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

	report, err := engine.Push(cmd.Context(), sync.PushOptions{
		Resources:    splitList(resources),
		Languages:    splitList(languages),
		Source:       source,
		Translations: translations,
		Force:        force,
		SkipErrors:   skip,
	})
	if err != nil {
		return err
	}

	return finishReport(report, func(format string, a ...interface{}) {
		fmt.Fprintf(cmd.ErrOrStderr(), format, a...)
	})
}
