// Package sync orchestrates push and pull across the configured resources
// and languages, one file at a time, collecting per-file failures so a long
// run is diagnosable from its report alone.
package sync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/txgo/txgo/internal/project"
	"github.com/txgo/txgo/internal/remote"
)

// ErrConflictingOptions means two mutually exclusive options were combined,
// e.g. fetching all remote languages together with a language filter.
var ErrConflictingOptions = errors.New("--all cannot be combined with a language filter")

// ErrNothingToPush means neither the source nor the translations were
// selected for pushing.
var ErrNothingToPush = errors.New("specify at least one of source or translations to push")

// Engine runs push and pull passes over one project.
type Engine struct {
	project *project.Project
	client  remote.Client

	// Progress receives one line per processed file; nil silences it.
	Progress func(format string, args ...interface{})
}

// NewEngine creates a sync engine for a project and remote client.
func NewEngine(p *project.Project, client remote.Client) *Engine {
	return &Engine{project: p, client: client}
}

func (e *Engine) progressf(format string, args ...interface{}) {
	if e.Progress != nil {
		e.Progress(format, args...)
	}
}

// PushOptions selects what a push pass uploads.
type PushOptions struct {
	Resources    []string // resource keys; empty means all configured
	Languages    []string // language codes; empty means all configured
	Source       bool
	Translations bool
	Force        bool // create resources missing remotely, skip freshness checks
	SkipErrors   bool // record per-file failures and continue
}

// PullOptions selects what a pull pass downloads.
type PullOptions struct {
	Resources   []string
	Languages   []string
	FetchAll    bool // every language the remote reports, not just configured
	FetchSource bool
	Overwrite   bool // false writes <path>.new next to existing files
	Force       bool
	MinimumPerc int // skip translations below this completion percentage
	SkipErrors  bool
}

// DeleteOptions selects remote resources or translations for deletion.
type DeleteOptions struct {
	Resources  []string
	Languages  []string // empty deletes whole resources
	SkipErrors bool
}

// Push uploads source and/or translation files for the selected resources,
// pairing every successful upload with its server-side extract request.
func (e *Engine) Push(ctx context.Context, opts PushOptions) (*Report, error) {
	if !opts.Source && !opts.Translations {
		return nil, ErrNothingToPush
	}

	resources, err := e.project.ListResources(opts.Resources)
	if err != nil {
		return nil, err
	}

	if err := e.checkRemoteResources(ctx, resources, opts.Force); err != nil {
		return nil, err
	}

	report := NewReport()
	for _, res := range resources {
		if opts.Source {
			err := e.pushSource(ctx, res)
			if !report.record(res.Key, res.SourceLang, res.SourceFile, err, opts.SkipErrors) {
				return report, err
			}
		}

		if !opts.Translations {
			continue
		}

		for _, lang := range selectLanguages(res, opts.Languages) {
			err := e.pushTranslation(ctx, res, lang)
			if !report.record(res.Key, lang, res.Translations[lang], err, opts.SkipErrors) {
				return report, err
			}
		}
	}

	return report, nil
}

// checkRemoteResources compares the configured resources against the remote
// listing; creating resources the remote does not know requires Force.
func (e *Engine) checkRemoteResources(ctx context.Context, resources []*project.Resource, force bool) error {
	byProject := make(map[string][]*project.Resource)
	for _, res := range resources {
		byProject[res.ProjectSlug] = append(byProject[res.ProjectSlug], res)
	}

	var missing []string
	for projectSlug, group := range byProject {
		infos, err := e.client.GetResources(ctx, projectSlug)
		if err != nil {
			return fmt.Errorf("listing remote resources of %s: %w", projectSlug, err)
		}

		known := make(map[string]bool, len(infos))
		for _, info := range infos {
			known[info.Slug] = true
		}

		for _, res := range group {
			if !known[res.Slug] {
				missing = append(missing, res.Key)
			}
		}
	}

	if len(missing) > 0 && !force {
		sort.Strings(missing)
		return fmt.Errorf("resources not present on the remote server: %s (use --force to create them)", strings.Join(missing, ", "))
	}

	return nil
}

func (e *Engine) pushSource(ctx context.Context, res *project.Resource) error {
	if res.SourceFile == "" {
		return fmt.Errorf("resource %s has no source file configured", res.Key)
	}

	e.progressf("Pushing source file %s (%s)", res.SourceFile, res.Key)

	content, err := e.project.FS().ReadFile(e.project.FullPath(res.SourceFile))
	if err != nil {
		return fmt.Errorf("reading source file %s: %w", res.SourceFile, err)
	}

	handle, err := e.client.PushFile(ctx, res.ProjectSlug, res.Slug, res.SourceLang, content)
	if err != nil {
		return fmt.Errorf("uploading source of %s: %w", res.Key, err)
	}

	if err := e.client.ExtractSource(ctx, res.ProjectSlug, handle, res.Slug); err != nil {
		return fmt.Errorf("extracting source of %s: %w", res.Key, err)
	}

	return nil
}

func (e *Engine) pushTranslation(ctx context.Context, res *project.Resource, lang string) error {
	path := res.Translations[lang]

	e.progressf("Pushing %q translation %s (%s)", lang, path, res.Key)

	content, err := e.project.FS().ReadFile(e.project.FullPath(path))
	if err != nil {
		return fmt.Errorf("reading translation file %s: %w", path, err)
	}

	handle, err := e.client.PushFile(ctx, res.ProjectSlug, res.Slug, lang, content)
	if err != nil {
		return fmt.Errorf("uploading %q translation of %s: %w", lang, res.Key, err)
	}

	if err := e.client.ExtractTranslation(ctx, res.ProjectSlug, res.Slug, lang, handle); err != nil {
		return fmt.Errorf("extracting %q translation of %s: %w", lang, res.Key, err)
	}

	return nil
}

// Pull downloads translation (and optionally source) files for the selected
// resources. Languages below MinimumPerc are skipped without touching disk;
// with Overwrite disabled, existing files keep their content and the pulled
// version lands in a sibling .new file.
func (e *Engine) Pull(ctx context.Context, opts PullOptions) (*Report, error) {
	if opts.FetchAll && len(opts.Languages) > 0 {
		return nil, ErrConflictingOptions
	}

	resources, err := e.project.ListResources(opts.Resources)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	for _, res := range resources {
		if opts.FetchSource && res.SourceFile != "" {
			err := e.pullFile(ctx, res, res.SourceLang, res.SourceFile, opts)
			if !report.record(res.Key, res.SourceLang, res.SourceFile, err, opts.SkipErrors) {
				return report, err
			}
		}

		langs, err := e.pullLanguages(ctx, res, opts)
		if err != nil {
			if !report.record(res.Key, "", "", err, opts.SkipErrors) {
				return report, err
			}
			continue
		}

		for _, lang := range langs {
			path := res.Translations[lang]
			if path == "" {
				// A language the remote knows but the config does not: save
				// it under the marker directory for manual adoption.
				path = filepath.Join(project.MarkerDir, "pulls", fmt.Sprintf("%s.%s", res.Key, lang))
			}

			err := e.pullFile(ctx, res, lang, path, opts)
			if !report.record(res.Key, lang, path, err, opts.SkipErrors) {
				return report, err
			}
		}
	}

	return report, nil
}

// pullLanguages resolves which languages to fetch for one resource.
func (e *Engine) pullLanguages(ctx context.Context, res *project.Resource, opts PullOptions) ([]string, error) {
	if !opts.FetchAll {
		return selectLanguages(res, opts.Languages), nil
	}

	details, err := e.client.ResourceDetails(ctx, res.ProjectSlug, res.Slug)
	if err != nil {
		return nil, fmt.Errorf("listing remote languages of %s: %w", res.Key, err)
	}

	langs := make([]string, 0, len(details.AvailableLanguages))
	for _, lang := range details.AvailableLanguages {
		if lang != res.SourceLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs, nil
}

func (e *Engine) pullFile(ctx context.Context, res *project.Resource, lang, path string, opts PullOptions) error {
	translation, err := e.client.PullFile(ctx, res.ProjectSlug, res.Slug, lang)
	if err != nil {
		return fmt.Errorf("fetching %q translation of %s: %w", lang, res.Key, err)
	}

	if opts.MinimumPerc > 0 && translation.Completion < opts.MinimumPerc {
		e.progressf("Skipping %q translation of %s: %d%% < %d%% minimum", lang, res.Key, translation.Completion, opts.MinimumPerc)
		return nil
	}

	target := path
	if !opts.Overwrite && e.project.FS().Exists(e.project.FullPath(path)) {
		target = path + ".new"
	}

	e.progressf("Pulling %q translation of %s -> %s", lang, res.Key, target)

	if err := e.project.WriteFile(target, translation.Content); err != nil {
		return fmt.Errorf("writing %q translation of %s: %w", lang, res.Key, err)
	}

	return nil
}

// Delete removes translations (or, with no language filter, whole resources)
// from the remote server. The local configuration is not touched.
func (e *Engine) Delete(ctx context.Context, opts DeleteOptions) (*Report, error) {
	resources, err := e.project.ListResources(opts.Resources)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	for _, res := range resources {
		if len(opts.Languages) == 0 {
			e.progressf("Deleting remote resource %s", res.Key)
			err := e.client.DeleteResource(ctx, res.ProjectSlug, res.Slug)
			if !report.record(res.Key, "", "", err, opts.SkipErrors) {
				return report, err
			}
			continue
		}

		for _, lang := range opts.Languages {
			e.progressf("Deleting %q translation of %s", lang, res.Key)
			err := e.client.DeleteTranslation(ctx, res.ProjectSlug, res.Slug, lang)
			if !report.record(res.Key, lang, "", err, opts.SkipErrors) {
				return report, err
			}
		}
	}

	return report, nil
}

// selectLanguages intersects the configured languages of a resource with the
// caller's filter; an empty filter selects all configured languages. The
// result is sorted for deterministic iteration.
func selectLanguages(res *project.Resource, filter []string) []string {
	if len(filter) == 0 {
		return res.Languages()
	}

	configured := res.Translations
	var langs []string
	for _, lang := range filter {
		if _, ok := configured[lang]; ok {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}
