package project

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/txgo/txgo/internal/config"
)

const transKeyPrefix = "trans."

var slugPattern = regexp.MustCompile(`^[\w-]+\.[\w-]+$`)

// Resource is one translatable unit: a source file plus per-language
// translation files, keyed by project_slug.resource_slug.
type Resource struct {
	Key          string
	ProjectSlug  string
	Slug         string
	SourceLang   string
	SourceFile   string            // relative to the project root
	FileFilter   string
	Type         string            // content type reported by the remote service
	Translations map[string]string // language code -> relative path
}

// Languages returns the translation language codes in sorted order.
func (r *Resource) Languages() []string {
	langs := make([]string, 0, len(r.Translations))
	for lang := range r.Translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ValidSlug reports whether key matches the project_slug.resource_slug
// format with the restricted charset.
func ValidSlug(key string) bool {
	return slugPattern.MatchString(key)
}

// SplitKey splits a resource key into project and resource slugs.
func SplitKey(key string) (projectSlug, resourceSlug string, err error) {
	if !ValidSlug(key) {
		return "", "", &InvalidSlugError{Slug: key}
	}
	parts := strings.SplitN(key, ".", 2)
	return parts[0], parts[1], nil
}

// GetResource returns the configured resource for key.
func (p *Project) GetResource(key string) (*Resource, error) {
	projectSlug, resourceSlug, err := SplitKey(key)
	if err != nil {
		return nil, err
	}

	section, err := p.Config.Section(key)
	if err != nil {
		return nil, &UnknownResourceError{Key: key}
	}

	res := &Resource{
		Key:          key,
		ProjectSlug:  projectSlug,
		Slug:         resourceSlug,
		Translations: make(map[string]string),
	}
	res.SourceLang, _ = section.Get("source_lang")
	res.SourceFile, _ = section.Get("source_file")
	res.FileFilter, _ = section.Get("file_filter")
	res.Type, _ = section.Get("type")

	for _, k := range section.Keys() {
		if !strings.HasPrefix(k, transKeyPrefix) {
			continue
		}
		lang := strings.TrimPrefix(k, transKeyPrefix)
		path, _ := section.Get(k)
		res.Translations[lang] = path
	}

	return res, nil
}

// ListResources returns the configured resources matching the filter, sorted
// by key. An empty filter selects every configured resource; filter entries
// naming an unconfigured resource fail with UnknownResourceError.
func (p *Project) ListResources(filter []string) ([]*Resource, error) {
	var keys []string
	for _, name := range p.Config.Sections() {
		if name == mainSection {
			continue
		}
		if ValidSlug(name) {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)

	if len(filter) > 0 {
		configured := make(map[string]bool, len(keys))
		for _, key := range keys {
			configured[key] = true
		}

		keys = keys[:0]
		seen := make(map[string]bool)
		for _, key := range filter {
			if !configured[key] {
				return nil, &UnknownResourceError{Key: key}
			}
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
	}

	resources := make([]*Resource, 0, len(keys))
	for _, key := range keys {
		res, err := p.GetResource(key)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}

	return resources, nil
}

// SetSourceFile registers the source file and source language of a resource,
// creating the resource section when missing. The path may be absolute or
// relative to the working directory and must live under the project root.
func (p *Project) SetSourceFile(key, lang, path string) error {
	if !ValidSlug(key) {
		return &InvalidSlugError{Slug: key}
	}
	if lang == "" {
		return &InvalidOperationError{Reason: "source language must not be empty"}
	}

	rel, err := p.RelPath(path)
	if err != nil {
		return err
	}

	section := p.Config.AddSection(key)
	if _, exists := section.Get(transKeyPrefix + lang); exists {
		return &InvalidOperationError{
			Reason: fmt.Sprintf("language %q already has a translation file for resource %s; a file cannot be both source and translation", lang, key),
		}
	}

	section.Set("source_file", rel)
	section.Set("source_lang", lang)
	return nil
}

// SetTranslation registers the translation file of a resource for one
// language. Registering a translation for the resource's source language is
// always rejected: the source slot holds the strings being translated.
func (p *Project) SetTranslation(key, lang, path string) error {
	if !ValidSlug(key) {
		return &InvalidSlugError{Slug: key}
	}

	sourceLang, err := p.Config.Get(key, "source_lang")
	if err != nil {
		var notFound *config.NotFoundError
		if errors.As(err, &notFound) && notFound.IsSectionMissing() {
			return &UnknownResourceError{Key: key}
		}
		return err
	}
	if lang == sourceLang {
		return &InvalidOperationError{
			Reason: fmt.Sprintf("cannot set a translation file for the source language %q of resource %s", lang, key),
		}
	}

	rel, err := p.RelPath(path)
	if err != nil {
		return err
	}

	p.Config.Set(key, transKeyPrefix+lang, rel)
	return nil
}

// SetFileFilter stores the auto-discovery expression of a resource.
func (p *Project) SetFileFilter(key, expression string) error {
	if !ValidSlug(key) {
		return &InvalidSlugError{Slug: key}
	}
	if !p.Config.HasSection(key) {
		return &UnknownResourceError{Key: key}
	}
	p.Config.Set(key, "file_filter", expression)
	return nil
}

// SetRemoteResource registers a resource discovered on the remote service,
// recording its source language and content type. Used by the auto-remote
// configuration path.
func (p *Project) SetRemoteResource(key, sourceLang, contentType string) error {
	if !ValidSlug(key) {
		return &InvalidSlugError{Slug: key}
	}
	section := p.Config.AddSection(key)
	section.Set("source_lang", sourceLang)
	section.Set("type", contentType)
	return nil
}

// RemoveResource deletes a resource section from the configuration.
func (p *Project) RemoveResource(key string) error {
	if !ValidSlug(key) {
		return &InvalidSlugError{Slug: key}
	}
	if !p.Config.HasSection(key) {
		return &UnknownResourceError{Key: key}
	}
	p.Config.RemoveSection(key)
	return nil
}

// ResourceFiles returns every registered file of a resource keyed by
// language code, the source file included under the source language.
func (p *Project) ResourceFiles(key string) (map[string]string, error) {
	res, err := p.GetResource(key)
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(res.Translations)+1)
	for lang, path := range res.Translations {
		files[lang] = path
	}
	if res.SourceLang != "" && res.SourceFile != "" {
		files[res.SourceLang] = res.SourceFile
	}

	return files, nil
}
