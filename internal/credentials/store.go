// Package credentials reads and writes the per-user credentials file
// (~/.txgorc): one section per hostname holding username, password and an
// optional API token. Missing entries are created interactively through the
// prompt port and persisted immediately.
package credentials

import (
	"fmt"

	"github.com/txgo/txgo/internal/config"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/prompt"
)

// Credential holds the stored secrets for one hostname.
type Credential struct {
	Hostname string
	Username string
	Password string
	Token    string
}

// Store provides get-or-create access to credentials by hostname. The file
// is read lazily and entries are cached for the duration of one invocation.
type Store struct {
	fs       filesystem.FileSystem
	prompter prompt.Prompter
	path     string

	file  *config.File
	cache map[string]*Credential
}

// NewStore creates a credential store backed by the file at path.
func NewStore(fs filesystem.FileSystem, prompter prompt.Prompter, path string) *Store {
	return &Store{
		fs:       fs,
		prompter: prompter,
		path:     path,
		cache:    make(map[string]*Credential),
	}
}

// load reads the credentials file once. A missing file is an empty store.
func (s *Store) load() error {
	if s.file != nil {
		return nil
	}

	if !s.fs.Exists(s.path) {
		s.file = config.New()
		return nil
	}

	file, err := config.Load(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	s.file = file
	return nil
}

// Get returns the credential for a hostname, or nil when none is stored.
func (s *Store) Get(hostname string) (*Credential, error) {
	if cred, ok := s.cache[hostname]; ok {
		return cred, nil
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	section, err := s.file.Section(hostname)
	if err != nil {
		return nil, nil
	}

	cred := &Credential{Hostname: hostname}
	cred.Username, _ = section.Get("username")
	cred.Password, _ = section.Get("password")
	cred.Token, _ = section.Get("token")

	s.cache[hostname] = cred
	return cred, nil
}

// GetOrCreate returns the credential for a hostname, prompting for username
// and password and persisting the new entry when none is stored yet.
func (s *Store) GetOrCreate(hostname string) (*Credential, error) {
	cred, err := s.Get(hostname)
	if err != nil {
		return nil, err
	}
	if cred != nil {
		return cred, nil
	}

	username, err := s.prompter.Input(fmt.Sprintf("Username for %s", hostname), "")
	if err != nil {
		return nil, fmt.Errorf("reading username: %w", err)
	}

	password, err := s.prompter.Password(fmt.Sprintf("Password for %s@%s", username, hostname))
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	cred = &Credential{Hostname: hostname, Username: username, Password: password}
	if err := s.Set(cred); err != nil {
		return nil, err
	}

	return cred, nil
}

// Set stores a credential and writes the file with owner-only permissions.
func (s *Store) Set(cred *Credential) error {
	if err := s.load(); err != nil {
		return err
	}

	section := s.file.AddSection(cred.Hostname)
	section.Set("username", cred.Username)
	section.Set("password", cred.Password)
	if cred.Token != "" {
		section.Set("token", cred.Token)
	}

	if err := s.file.Save(s.fs, s.path, 0600); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	s.cache[cred.Hostname] = cred
	return nil
}
