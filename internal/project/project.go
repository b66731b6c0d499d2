// Package project implements the local project model: locating the project
// root through its marker directory, the persistent mapping between resource
// identifiers and files on disk, and path containment relative to the root.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/txgo/txgo/internal/config"
	"github.com/txgo/txgo/internal/filesystem"
)

const (
	// MarkerDir is the directory whose presence marks a project root.
	MarkerDir = ".txgo"

	// ConfigFile is the name of the configuration file inside MarkerDir.
	ConfigFile = "config"

	mainSection = "main"
)

// Project associates the local working tree with its remote counterpart. It
// owns the configuration tree; mutations are only durable after Save.
type Project struct {
	fs     filesystem.FileSystem
	Root   string // absolute path of the directory containing MarkerDir
	Config *config.File
}

// Open locates the project root by walking up from startDir (the working
// directory when empty) and loads its configuration. Fails with
// ErrNotInitialized when no ancestor carries the marker directory.
func Open(fsys filesystem.FileSystem, startDir string) (*Project, error) {
	if startDir == "" {
		cwd, err := fsys.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		startDir = cwd
	}

	root, err := findRoot(fsys, startDir)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, MarkerDir, ConfigFile)
	if !fsys.Exists(configPath) {
		return nil, fmt.Errorf("%s missing from %s: %w", ConfigFile, filepath.Join(root, MarkerDir), ErrNotInitialized)
	}

	cfg, err := config.Load(fsys, configPath)
	if err != nil {
		return nil, err
	}

	return &Project{fs: fsys, Root: root, Config: cfg}, nil
}

// Init creates the marker directory and a skeleton configuration holding the
// remote host. An existing configuration is replaced; callers that want to
// protect it must check Initialized first.
func Init(fsys filesystem.FileSystem, dir, host string) (*Project, error) {
	dir = filepath.Clean(dir)
	marker := filepath.Join(dir, MarkerDir)

	if err := fsys.MkdirAll(marker, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", marker, err)
	}

	cfg := config.New()
	cfg.Set(mainSection, "host", host)

	p := &Project{fs: fsys, Root: dir, Config: cfg}
	if err := p.Save(); err != nil {
		return nil, err
	}

	return p, nil
}

// Initialized reports whether dir already carries the marker directory.
func Initialized(fsys filesystem.FileSystem, dir string) bool {
	return fsys.Exists(filepath.Join(filepath.Clean(dir), MarkerDir))
}

// findRoot walks up the directory tree looking for the marker directory.
func findRoot(fsys filesystem.FileSystem, startDir string) (string, error) {
	dir := filepath.Clean(startDir)

	for {
		candidate := filepath.Join(dir, MarkerDir)
		if info, err := fsys.Stat(candidate); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialized
		}
		dir = parent
	}
}

// ConfigPath returns the absolute path of the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, MarkerDir, ConfigFile)
}

// MarkerPath returns the absolute path of the marker directory.
func (p *Project) MarkerPath() string {
	return filepath.Join(p.Root, MarkerDir)
}

// Save writes the configuration tree back to disk.
func (p *Project) Save() error {
	return p.Config.Save(p.fs, p.ConfigPath(), 0644)
}

// Host returns the remote host configured for this project.
func (p *Project) Host() (string, error) {
	host, err := p.Config.Get(mainSection, "host")
	if err != nil {
		var notFound *config.NotFoundError
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("no host configured in %s: %w", p.ConfigPath(), err)
		}
		return "", err
	}
	return host, nil
}

// SetHost stores the remote host in the main section.
func (p *Project) SetHost(host string) {
	p.Config.Set(mainSection, "host", host)
}

// FS exposes the filesystem port the project was opened with.
func (p *Project) FS() filesystem.FileSystem {
	return p.fs
}

// WriteFile writes a file below the project root through the project's
// filesystem port, creating parent directories as needed.
func (p *Project) WriteFile(relPath string, data []byte) error {
	abs := p.FullPath(relPath)
	if err := p.fs.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := p.fs.WriteFile(abs, data, fs.FileMode(0644)); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}
	return nil
}
