// Package config implements the ordered, section-based key/value format used
// for the project configuration and the per-user credentials file. Section
// order and key order within a section survive a load, mutate and save
// cycle, so unrelated entries never move in the written file.
package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/txgo/txgo/internal/filesystem"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Section holds the keys of a single configuration section in insertion
// order.
type Section struct {
	keys *orderedmap.OrderedMap[string, string]
}

func newSection() *Section {
	return &Section{keys: orderedmap.New[string, string]()}
}

// Get returns the value of a key and whether it is present.
func (s *Section) Get(key string) (string, bool) {
	return s.keys.Get(key)
}

// Set stores a key, appending it when new and updating in place when it
// already exists.
func (s *Section) Set(key, value string) {
	s.keys.Set(key, value)
}

// Delete removes a key. Removing a missing key is a no-op.
func (s *Section) Delete(key string) {
	s.keys.Delete(key)
}

// Keys returns the key names in insertion order.
func (s *Section) Keys() []string {
	keys := make([]string, 0, s.keys.Len())
	for pair := s.keys.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// File is a parsed configuration tree.
type File struct {
	sections *orderedmap.OrderedMap[string, *Section]
}

// New creates an empty configuration tree.
func New() *File {
	return &File{sections: orderedmap.New[string, *Section]()}
}

// Parse reads the section-based format. Blank lines and #/; comment lines
// are skipped; entries before the first section header, malformed lines and
// duplicate section names fail with a ParseError.
func Parse(data []byte) (*File, error) {
	f := New()

	var current *Section
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			if !strings.HasSuffix(trimmed, "]") {
				return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("malformed section header %q", trimmed)}
			}
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if name == "" {
				return nil, &ParseError{Line: i + 1, Msg: "empty section name"}
			}
			if _, exists := f.sections.Get(name); exists {
				return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("duplicate section %q", name)}
			}
			current = newSection()
			f.sections.Set(name, current)
			continue
		}

		eq := strings.Index(trimmed, "=")
		if eq < 0 {
			return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("expected key = value, got %q", trimmed)}
		}
		if current == nil {
			return nil, &ParseError{Line: i + 1, Msg: "entry before any section header"}
		}

		key := strings.TrimSpace(trimmed[:eq])
		value := strings.TrimSpace(trimmed[eq+1:])
		if key == "" {
			return nil, &ParseError{Line: i + 1, Msg: "empty key"}
		}
		current.Set(key, value)
	}

	return f, nil
}

// Bytes serializes the tree. Sections and keys are written in insertion
// order; a tree that was parsed from store-written bytes serializes back to
// the identical bytes.
func (f *File) Bytes() []byte {
	var buf bytes.Buffer
	for pair := f.sections.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&buf, "[%s]\n", pair.Key)
		for kv := pair.Value.keys.Oldest(); kv != nil; kv = kv.Next() {
			fmt.Fprintf(&buf, "%s = %s\n", kv.Key, kv.Value)
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// Load reads and parses a configuration file.
func Load(fsys filesystem.FileSystem, path string) (*File, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return f, nil
}

// Save writes the serialized tree to path, creating parent directories as
// needed.
func (f *File) Save(fsys filesystem.FileSystem, path string, perm fs.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := fsys.WriteFile(path, f.Bytes(), perm); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// HasSection reports whether a section exists.
func (f *File) HasSection(name string) bool {
	_, exists := f.sections.Get(name)
	return exists
}

// Section returns a section, failing with NotFoundError when missing.
func (f *File) Section(name string) (*Section, error) {
	section, exists := f.sections.Get(name)
	if !exists {
		return nil, &NotFoundError{Section: name}
	}
	return section, nil
}

// AddSection returns the named section, creating it at the end of the file
// when missing.
func (f *File) AddSection(name string) *Section {
	if section, exists := f.sections.Get(name); exists {
		return section
	}
	section := newSection()
	f.sections.Set(name, section)
	return section
}

// RemoveSection deletes a section and all its keys.
func (f *File) RemoveSection(name string) {
	f.sections.Delete(name)
}

// Get returns the value of section/key, distinguishing a missing section
// from a missing key via the returned NotFoundError.
func (f *File) Get(section, key string) (string, error) {
	s, err := f.Section(section)
	if err != nil {
		return "", err
	}
	value, exists := s.Get(key)
	if !exists {
		return "", &NotFoundError{Section: section, Key: key}
	}
	return value, nil
}

// Set stores section/key, creating the section when missing.
func (f *File) Set(section, key, value string) {
	f.AddSection(section).Set(key, value)
}

// Sections returns the section names in insertion order.
func (f *File) Sections() []string {
	names := make([]string, 0, f.sections.Len())
	for pair := f.sections.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
