package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FullPath resolves a root-relative path to an absolute one. Absolute inputs
// are returned unchanged.
func (p *Project) FullPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Root, path)
}

// RelPath converts a path (absolute, or relative to the working directory)
// into a path relative to the project root, validating containment. Fails
// with PathOutsideProjectError when the resolved path escapes the root.
func (p *Project) RelPath(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		cwd, err := p.fs.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		abs = filepath.Join(cwd, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(p.Root, abs)
	if err != nil {
		return "", &PathOutsideProjectError{Path: path, Root: p.Root}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathOutsideProjectError{Path: path, Root: p.Root}
	}

	return rel, nil
}
