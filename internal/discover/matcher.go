// Package discover implements translation-file auto-discovery: a file-path
// expression containing a <lang> placeholder is compiled into a regular
// expression and matched against every file under the project tree,
// classifying each match by language code.
package discover

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/project"
)

// LangPlaceholder is the token marking the language code inside an
// expression, e.g. "locale/<lang>/app.po".
const LangPlaceholder = "<lang>"

// ErrNoSourceFile means source auto-detection was required but no explicit
// source file was given and no file matched the source language.
var ErrNoSourceFile = errors.New("could not find a source language file; supply one explicitly or fix the expression")

// BadExpressionError reports an expression the matcher cannot compile.
type BadExpressionError struct {
	Expression string
	Reason     string
}

func (e *BadExpressionError) Error() string {
	return fmt.Sprintf("invalid file expression %q: %s", e.Expression, e.Reason)
}

// Options configures one discovery run.
type Options struct {
	// Expression is the file-path pattern, relative to BaseDir, containing
	// exactly one <lang> placeholder. A * matches within one path segment.
	Expression string

	// BaseDir is the absolute directory the walk starts from.
	BaseDir string

	// SourceLang designates which captured code marks the source file.
	SourceLang string

	// SourceFile, when non-empty, names the source file explicitly and fully
	// suppresses auto-detection; files matching SourceLang are then ignored.
	SourceFile string
}

// Mapping is the result of a discovery run. Both paths are absolute.
type Mapping struct {
	SourceFile   string
	Translations map[string]string
}

// Compile turns an expression into the anchored regular expression matching
// absolute file paths under baseDir. Every regex metacharacter is escaped
// except the placeholder (which becomes a language-code capturing group) and
// * (which matches within a path segment).
func Compile(expression, baseDir string) (*regexp.Regexp, error) {
	if strings.Count(expression, LangPlaceholder) != 1 {
		return nil, &BadExpressionError{
			Expression: expression,
			Reason:     fmt.Sprintf("expected exactly one %s placeholder", LangPlaceholder),
		}
	}
	if !filepath.IsAbs(baseDir) {
		return nil, fmt.Errorf("base directory %q must be absolute", baseDir)
	}

	full := filepath.Join(baseDir, expression)
	escaped := regexp.QuoteMeta(full)
	escaped = strings.Replace(escaped, regexp.QuoteMeta(LangPlaceholder), `([A-Za-z0-9_-]+)`, 1)
	escaped = strings.ReplaceAll(escaped, regexp.QuoteMeta("*"), `[^/]*`)

	re, err := regexp.Compile("^" + escaped + "$")
	if err != nil {
		return nil, &BadExpressionError{Expression: expression, Reason: err.Error()}
	}
	return re, nil
}

// Match walks every regular file under BaseDir and classifies matches by the
// captured language code. When two files map to the same code, the last one
// encountered wins; this is deliberate and mirrors the walk order.
func Match(fsys filesystem.FileSystem, opts Options) (*Mapping, error) {
	re, err := Compile(opts.Expression, opts.BaseDir)
	if err != nil {
		return nil, err
	}

	ignore := loadGitignore(fsys, opts.BaseDir)

	mapping := &Mapping{
		SourceFile:   opts.SourceFile,
		Translations: make(map[string]string),
	}
	explicitSource := opts.SourceFile != ""

	err = fsys.WalkDir(opts.BaseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == project.MarkerDir || d.Name() == ".git" {
				return filepath.SkipDir
			}
			if ignored(ignore, opts.BaseDir, path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if ignored(ignore, opts.BaseDir, path, false) {
			return nil
		}

		groups := re.FindStringSubmatch(path)
		if groups == nil {
			return nil
		}
		lang := groups[1]

		if lang == opts.SourceLang {
			if !explicitSource {
				mapping.SourceFile = path
			}
			return nil
		}

		mapping.Translations[lang] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", opts.BaseDir, err)
	}

	if mapping.SourceFile == "" {
		return nil, ErrNoSourceFile
	}

	return mapping, nil
}

// loadGitignore reads the base directory's .gitignore when present, so
// ignored build artifacts never get registered as translation files.
func loadGitignore(fsys filesystem.FileSystem, baseDir string) gitignore.GitIgnore {
	path := filepath.Join(baseDir, ".gitignore")
	if !fsys.Exists(path) {
		return nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil
	}

	return gitignore.New(bytes.NewReader(data), baseDir, nil)
}

func ignored(ignore gitignore.GitIgnore, baseDir, path string, isDir bool) bool {
	if ignore == nil {
		return false
	}

	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == "." {
		return false
	}

	match := ignore.Relative(filepath.ToSlash(rel), isDir)
	return match != nil && match.Ignore()
}
