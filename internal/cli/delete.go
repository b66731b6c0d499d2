package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/prompt"
	"github.com/txgo/txgo/internal/sync"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	fs        filesystem.FileSystem
	prompter  prompt.Prompter
	newClient ClientFactory
}

// NewDeleteCommand creates a new delete command
func NewDeleteCommand(fs filesystem.FileSystem, prompter prompt.Prompter, newClient ClientFactory) *cobra.Command {
	cmd := &DeleteCommand{fs: fs, prompter: prompter, newClient: newClient}

	cobraCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete resources or translations on the remote service",
		Long: `Deletes translations (with --language) or whole resources (without) on
the remote server. Local files and the local configuration are not touched.`,
		Example: `  # Delete the German translation of one resource remotely
  txgo delete -r myproject.ui -l de

  # Delete a whole remote resource
  txgo delete -r myproject.ui`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP("resource", "r", "", "Comma-separated resource keys (required)")
	cobraCmd.Flags().StringP("language", "l", "", "Comma-separated language codes (default: whole resources)")
	cobraCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
	cobraCmd.Flags().Bool("skip", false, "Record per-resource errors and continue")

	return cobraCmd
}

// Run executes the delete command
func (c *DeleteCommand) Run(cmd *cobra.Command, args []string) error {
	resources, _ := cmd.Flags().GetString("resource")
	languages, _ := cmd.Flags().GetString("language")
	force, _ := cmd.Flags().GetBool("force")
	skip, _ := cmd.Flags().GetBool("skip")

	if resources == "" {
		return fmt.Errorf("--resource is required")
	}

	p, err := openProject(c.fs)
	if err != nil {
		return err
	}

	if !force {
		subject := fmt.Sprintf("resource(s) %s", resources)
		if languages != "" {
			subject = fmt.Sprintf("the %s translation(s) of %s", languages, resources)
		}
		ok, err := c.prompter.Confirm(fmt.Sprintf("Permanently delete %s on the remote server?", subject))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	client, err := clientForProject(c.fs, c.prompter, c.newClient, p)
	if err != nil {
		return err
	}

	engine := sync.NewEngine(p, client)
	engine.Progress = func(format string, a ...interface{}) {
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", a...)
	}

	report, err := engine.Delete(cmd.Context(), sync.DeleteOptions{
		Resources:  splitList(resources),
		Languages:  splitList(languages),
		SkipErrors: skip,
	})
	if err != nil {
		return err
	}

	return finishReport(report, func(format string, a ...interface{}) {
		fmt.Fprintf(cmd.ErrOrStderr(), format, a...)
	})
}
