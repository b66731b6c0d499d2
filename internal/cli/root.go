package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/txgo/txgo/internal/credentials"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/prompt"
	"github.com/txgo/txgo/internal/remote"
	"github.com/txgo/txgo/internal/tui"
)

// ClientFactory builds a remote client for a hostname and its credentials.
// Commands receive it injected so tests can substitute a mock.
type ClientFactory func(hostname string, cred *credentials.Credential) remote.Client

// DefaultClientFactory builds the HTTP client used in production.
func DefaultClientFactory(hostname string, cred *credentials.Credential) remote.Client {
	return remote.NewHTTPClient(hostname, cred.Username, cred.Password, cred.Token)
}

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, prompter prompt.Prompter, newClient ClientFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "txgo",
		Short: "Synchronize translation files with a remote translation service",
		Long: `A CLI tool for keeping local translation files in sync with a remote
translation service.

Resources are mapped to local files in .txgo/config; push uploads source and
translation files, pull downloads what translators produced.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(NewInitCommand(fs, prompter))
	rootCmd.AddCommand(NewSetCommand(fs, prompter, newClient))
	rootCmd.AddCommand(NewPushCommand(fs, prompter, newClient))
	rootCmd.AddCommand(NewPullCommand(fs, prompter, newClient))
	rootCmd.AddCommand(NewStatusCommand(fs))
	rootCmd.AddCommand(NewDeleteCommand(fs, prompter, newClient))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	prompter := tui.NewPrompter()

	rootCmd := NewRootCommand(fs, prompter, DefaultClientFactory)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
