package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/txgo/txgo/internal/discover"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/project"
	"github.com/txgo/txgo/internal/prompt"
	"github.com/txgo/txgo/internal/remote"
	"github.com/txgo/txgo/internal/tui"
)

// SetCommand handles the set command
type SetCommand struct {
	fs        filesystem.FileSystem
	prompter  prompt.Prompter
	newClient ClientFactory
}

// NewSetCommand creates a new set command
func NewSetCommand(fs filesystem.FileSystem, prompter prompt.Prompter, newClient ClientFactory) *cobra.Command {
	cmd := &SetCommand{fs: fs, prompter: prompter, newClient: newClient}

	cobraCmd := &cobra.Command{
		Use:   "set [flags] <file or expression or url>...",
		Short: "Map local files to remote resources",
		Long: `Associates local files with the translations of a remote resource.

Three modes are available:

  Manual:      map one file to one language of a resource.
  Auto-local:  discover files via an expression containing <lang> and map
               everything it matches in one go.
  Auto-remote: read resources from project, release or resource URLs and
               register them locally for pulling.`,
		Example: `  # Map one translation file
  txgo set -r myproject.ui -l de locale/de/ui.po

  # Declare the source file
  txgo set --source -r myproject.ui -l en locale/en/ui.po

  # Discover everything under locale/ (preview, then apply)
  txgo set --auto-local -r myproject.ui -s en 'locale/<lang>/ui.po'
  txgo set --auto-local -r myproject.ui -s en 'locale/<lang>/ui.po' --execute

  # Register every resource of a remote project
  txgo set --auto-remote https://www.transifex.com/projects/p/myproject/`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("auto-local", false, "Discover files with a <lang> expression")
	cobraCmd.Flags().Bool("auto-remote", false, "Register resources from remote URLs")
	cobraCmd.Flags().StringP("resource", "r", "", "Resource key (<project>.<resource>)")
	cobraCmd.Flags().Bool("source", false, "Map the file as the resource's source file")
	cobraCmd.Flags().StringP("language", "l", "", "Language code of the mapped file")
	cobraCmd.Flags().StringP("source-language", "s", "", "Source language code (auto-local)")
	cobraCmd.Flags().StringP("source-file", "f", "", "Explicit source file (auto-local)")
	cobraCmd.Flags().StringP("type", "t", "", "Content type of new resources (auto-remote fallback)")
	cobraCmd.Flags().Bool("execute", false, "Apply auto-local changes instead of previewing them")

	return cobraCmd
}

// Run executes the set command
func (c *SetCommand) Run(cmd *cobra.Command, args []string) error {
	autoLocal, _ := cmd.Flags().GetBool("auto-local")
	autoRemote, _ := cmd.Flags().GetBool("auto-remote")

	if autoLocal && autoRemote {
		return fmt.Errorf("--auto-local and --auto-remote are mutually exclusive")
	}

	p, err := openProject(c.fs)
	if err != nil {
		return err
	}

	switch {
	case autoLocal:
		return c.runAutoLocal(cmd, args, p)
	case autoRemote:
		return c.runAutoRemote(cmd, args, p)
	default:
		return c.runManual(cmd, args, p)
	}
}

func (c *SetCommand) runManual(cmd *cobra.Command, args []string, p *project.Project) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one file path")
	}

	key, _ := cmd.Flags().GetString("resource")
	lang, _ := cmd.Flags().GetString("language")
	isSource, _ := cmd.Flags().GetBool("source")

	if key == "" {
		return fmt.Errorf("--resource is required")
	}
	if lang == "" {
		return fmt.Errorf("--language is required")
	}
	warnUnknownLanguage(cmd, lang)

	// The setters relativize the path themselves; rel is only for the
	// confirmation message.
	rel, err := p.RelPath(args[0])
	if err != nil {
		return err
	}

	if isSource {
		err = p.SetSourceFile(key, lang, args[0])
	} else {
		err = p.SetTranslation(key, lang, args[0])
	}
	if err != nil {
		return err
	}

	if err := p.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s to %s (%s)\n", rel, key, lang)
	return nil
}

func (c *SetCommand) runAutoLocal(cmd *cobra.Command, args []string, p *project.Project) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one expression")
	}

	key, _ := cmd.Flags().GetString("resource")
	sourceLang, _ := cmd.Flags().GetString("source-language")
	sourceFile, _ := cmd.Flags().GetString("source-file")
	execute, _ := cmd.Flags().GetBool("execute")

	if key == "" {
		return fmt.Errorf("--resource is required")
	}
	if !project.ValidSlug(key) {
		return &project.InvalidSlugError{Slug: key}
	}
	if sourceLang == "" {
		return fmt.Errorf("--source-language is required")
	}
	warnUnknownLanguage(cmd, sourceLang)

	expression := args[0]
	opts := discover.Options{
		Expression: expression,
		BaseDir:    p.Root,
		SourceLang: sourceLang,
	}
	if sourceFile != "" {
		rel, err := p.RelPath(sourceFile)
		if err != nil {
			return err
		}
		opts.SourceFile = p.FullPath(rel)
	}

	mapping, err := discover.Match(c.fs, opts)
	if err != nil {
		return err
	}

	relSource, err := p.RelPath(mapping.SourceFile)
	if err != nil {
		return err
	}

	langs := make([]string, 0, len(mapping.Translations))
	relTranslations := make(map[string]string, len(mapping.Translations))
	for lang, path := range mapping.Translations {
		rel, err := p.RelPath(path)
		if err != nil {
			return err
		}
		langs = append(langs, lang)
		relTranslations[lang] = rel
	}
	sort.Strings(langs)

	if !execute {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.SubtleStyle.Render("Previewing only; rerun with --execute to apply."))
		fmt.Fprintf(out, "txgo set --source -r %s -l %s %q\n", key, sourceLang, relSource)
		for _, lang := range langs {
			fmt.Fprintf(out, "txgo set -r %s -l %s %q\n", key, lang, relTranslations[lang])
		}
		return nil
	}

	// mapping holds absolute paths; the setters relativize them against
	// the project root regardless of the working directory.
	if err := p.SetSourceFile(key, sourceLang, mapping.SourceFile); err != nil {
		return err
	}
	if err := p.SetFileFilter(key, expression); err != nil {
		return err
	}
	for _, lang := range langs {
		if err := p.SetTranslation(key, lang, mapping.Translations[lang]); err != nil {
			return err
		}
	}

	if err := p.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s and %d translation file(s) to %s\n", relSource, len(langs), key)
	return nil
}

func (c *SetCommand) runAutoRemote(cmd *cobra.Command, args []string, p *project.Project) error {
	fallbackType, _ := cmd.Flags().GetString("type")

	registered := 0
	for _, raw := range args {
		target, err := remote.ParseURL(raw)
		if err != nil {
			return err
		}

		client, err := clientForHost(c.fs, c.prompter, c.newClient, target.Hostname)
		if err != nil {
			return err
		}

		count, err := c.registerTarget(cmd, p, client, target, fallbackType)
		if err != nil {
			return err
		}
		registered += count
	}

	if err := p.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %d resource(s); run 'txgo pull' to fetch them\n", registered)
	return nil
}

// registerTarget expands a parsed URL into its resources and records each in
// the configuration.
func (c *SetCommand) registerTarget(cmd *cobra.Command, p *project.Project, client remote.Client, target *remote.Target, fallbackType string) (int, error) {
	ctx := cmd.Context()

	var infos []remote.ResourceInfo
	switch target.Kind {
	case remote.TargetResource:
		infos = []remote.ResourceInfo{{Slug: target.ResourceSlug, ProjectSlug: target.ProjectSlug}}
	case remote.TargetProject:
		details, err := client.ProjectDetails(ctx, target.ProjectSlug)
		if err != nil {
			return 0, err
		}
		infos = details.Resources
	case remote.TargetRelease:
		details, err := client.ReleaseDetails(ctx, target.ProjectSlug, target.ReleaseSlug)
		if err != nil {
			return 0, err
		}
		infos = details.Resources
	}

	for i := range infos {
		if infos[i].ProjectSlug == "" {
			infos[i].ProjectSlug = target.ProjectSlug
		}
	}

	for _, info := range infos {
		details, err := client.ResourceDetails(ctx, info.ProjectSlug, info.Slug)
		if err != nil {
			return 0, err
		}

		contentType := details.ContentType
		if contentType == "" {
			contentType = fallbackType
		}

		key := fmt.Sprintf("%s.%s", info.ProjectSlug, info.Slug)
		if err := p.SetRemoteResource(key, details.SourceLanguage, contentType); err != nil {
			return 0, err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (source language %s)\n", key, details.SourceLanguage)
	}

	return len(infos), nil
}

// warnUnknownLanguage prints a warning for language codes BCP 47 cannot make
// sense of. Custom codes are common enough that this never fails the command.
func warnUnknownLanguage(cmd *cobra.Command, code string) {
	normalized := strings.ReplaceAll(code, "_", "-")
	if _, err := language.Parse(normalized); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), tui.WarnStyle.Render(fmt.Sprintf("Warning: %q does not look like a known language code", code)))
	}
}
