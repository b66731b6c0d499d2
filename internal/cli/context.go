package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/txgo/txgo/internal/credentials"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/project"
	"github.com/txgo/txgo/internal/prompt"
	"github.com/txgo/txgo/internal/remote"
	"github.com/txgo/txgo/internal/sync"
	"github.com/txgo/txgo/internal/tui"
)

// credentialsFileName is the per-user credentials file in the home directory.
const credentialsFileName = ".txgorc"

// credentialsPath resolves the credentials file location. TXGO_CREDENTIALS
// overrides the default for tests and CI.
func credentialsPath() (string, error) {
	if path := os.Getenv("TXGO_CREDENTIALS"); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, credentialsFileName), nil
}

// openProject opens the project enclosing the current working directory.
func openProject(fs filesystem.FileSystem) (*project.Project, error) {
	return project.Open(fs, "")
}

// clientForHost returns a remote client authenticated for hostname, prompting
// for credentials when none are stored yet.
func clientForHost(fs filesystem.FileSystem, prompter prompt.Prompter, newClient ClientFactory, hostname string) (remote.Client, error) {
	path, err := credentialsPath()
	if err != nil {
		return nil, err
	}

	store := credentials.NewStore(fs, prompter, path)
	cred, err := store.GetOrCreate(hostname)
	if err != nil {
		return nil, err
	}

	return newClient(hostname, cred), nil
}

// clientForProject returns a remote client for the project's configured host.
func clientForProject(fs filesystem.FileSystem, prompter prompt.Prompter, newClient ClientFactory, p *project.Project) (remote.Client, error) {
	host, err := p.Host()
	if err != nil {
		return nil, err
	}
	return clientForHost(fs, prompter, newClient, host)
}

// splitList splits a comma-separated flag value into its non-empty entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}

	var entries []string
	for _, entry := range strings.Split(value, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// finishReport prints the failure summary and turns a partially failed run
// into a nonzero exit.
func finishReport(report *sync.Report, errOut func(format string, args ...interface{})) error {
	if report == nil || report.OK() {
		return nil
	}

	errOut("%s", tui.ErrorStyle.Render("Failed operations:"))
	errOut("%s", report.Summary())
	return fmt.Errorf("%d operation(s) failed", len(report.Failed()))
}
