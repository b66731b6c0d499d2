package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/tui"
)

// StatusCommand handles the status command
type StatusCommand struct {
	fs filesystem.FileSystem
}

// NewStatusCommand creates a new status command
func NewStatusCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &StatusCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the configured resources and their mapped files",
		Long: `Lists every configured resource with its source file and translation
files, flagging mapped files that are missing on disk.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP("resource", "r", "", "Comma-separated resource keys (default: all)")

	return cobraCmd
}

// Run executes the status command
func (c *StatusCommand) Run(cmd *cobra.Command, args []string) error {
	filter, _ := cmd.Flags().GetString("resource")

	p, err := openProject(c.fs)
	if err != nil {
		return err
	}

	resources, err := p.ListResources(splitList(filter))
	if err != nil {
		return err
	}

	if len(resources) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No resources configured. Add some with 'txgo set'.")
		return nil
	}

	out := cmd.OutOrStdout()
	for i, res := range resources {
		if i > 0 {
			fmt.Fprintln(out)
		}

		title := fmt.Sprintf("%s (source language %s)", res.Key, res.SourceLang)
		fmt.Fprintln(out, tui.TitleStyle.Render(title))

		table := tablewriter.NewWriter(out)
		table.Header(
			tui.HeaderStyle.Render("Language"),
			tui.HeaderStyle.Render("File"),
			tui.HeaderStyle.Render("State"),
		)

		if res.SourceFile != "" {
			table.Append(res.SourceLang+" (source)", res.SourceFile, c.fileState(p.FullPath(res.SourceFile)))
		}
		for _, lang := range res.Languages() {
			path := res.Translations[lang]
			table.Append(lang, path, c.fileState(p.FullPath(path)))
		}

		table.Render()
	}

	return nil
}

func (c *StatusCommand) fileState(path string) string {
	if c.fs.Exists(path) {
		return "present"
	}
	return "missing"
}
