package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/txgo/txgo/internal/credentials"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/project"
	"github.com/txgo/txgo/internal/prompt"
	"github.com/txgo/txgo/internal/tui"
)

// DefaultHost is offered as the remote host during init.
const DefaultHost = "https://www.transifex.com"

// InitCommand handles the init command
type InitCommand struct {
	fs       filesystem.FileSystem
	prompter prompt.Prompter
}

// NewInitCommand creates a new init command
func NewInitCommand(fs filesystem.FileSystem, prompter prompt.Prompter) *cobra.Command {
	cmd := &InitCommand{fs: fs, prompter: prompter}

	cobraCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a project in the given directory",
		Long: `Creates the .txgo marker directory and a skeleton configuration in the
given directory (default: the current one), then makes sure credentials for
the chosen host are stored in ~/.txgorc.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("host", "", "Remote service host (skips the prompt)")

	return cobraCmd
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if !filepath.IsAbs(dir) {
		cwd, err := c.fs.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if project.Initialized(c.fs, dir) {
		ok, err := c.prompter.Confirm(fmt.Sprintf("%s is already initialized. Overwrite its configuration?", dir))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	host, _ := cmd.Flags().GetString("host")
	if host == "" {
		answer, err := c.prompter.Input("Remote service host", DefaultHost)
		if err != nil {
			return err
		}
		host = strings.TrimSpace(answer)
	}
	if host == "" {
		return fmt.Errorf("a remote service host is required")
	}

	if _, err := project.Init(c.fs, dir, host); err != nil {
		return err
	}

	path, err := credentialsPath()
	if err != nil {
		return err
	}
	store := credentials.NewStore(c.fs, c.prompter, path)
	if _, err := store.GetOrCreate(host); err != nil {
		return fmt.Errorf("storing credentials for %s: %w", host, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render(fmt.Sprintf("Initialized project in %s", dir)))
	return nil
}
