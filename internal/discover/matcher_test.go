package discover

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/txgo/txgo/internal/filesystem"
)

func TestMatchSeparatesSourceFromTranslations(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/loc/en/app.po", []byte("en"))
	fs.AddFile("/project/loc/de/app.po", []byte("de"))
	fs.AddFile("/project/loc/fr/app.po", []byte("fr"))

	mapping, err := Match(fs, Options{
		Expression: "loc/<lang>/app.po",
		BaseDir:    "/project",
		SourceLang: "en",
	})
	require.NoError(t, err)

	require.Equal(t, "/project/loc/en/app.po", mapping.SourceFile)
	require.Equal(t, map[string]string{
		"de": "/project/loc/de/app.po",
		"fr": "/project/loc/fr/app.po",
	}, mapping.Translations)
}

func TestMatchStarWithinSegment(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/loc/en/app.po", []byte("x"))
	fs.AddFile("/project/loc/de/app.po", []byte("x"))
	fs.AddFile("/project/loc/de/app2.po", []byte("x"))
	// A nested path must not match: * stays within one segment.
	fs.AddFile("/project/loc/de/sub/app.po", []byte("x"))

	mapping, err := Match(fs, Options{
		Expression: "loc/<lang>/*.po",
		BaseDir:    "/project",
		SourceLang: "en",
	})
	require.NoError(t, err)

	require.Equal(t, "/project/loc/en/app.po", mapping.SourceFile)
	// Same language twice: the last file encountered wins.
	require.Equal(t, map[string]string{"de": "/project/loc/de/app2.po"}, mapping.Translations)
}

func TestMatchExplicitSourceSuppressesDetection(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/loc/en/app.po", []byte("x"))
	fs.AddFile("/project/loc/de/app.po", []byte("x"))
	fs.AddFile("/project/explicit.pot", []byte("x"))

	mapping, err := Match(fs, Options{
		Expression: "loc/<lang>/app.po",
		BaseDir:    "/project",
		SourceLang: "en",
		SourceFile: "/project/explicit.pot",
	})
	require.NoError(t, err)

	require.Equal(t, "/project/explicit.pot", mapping.SourceFile)
	require.Equal(t, map[string]string{"de": "/project/loc/de/app.po"}, mapping.Translations)
}

func TestMatchNoSourceFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/loc/de/app.po", []byte("x"))

	_, err := Match(fs, Options{
		Expression: "loc/<lang>/app.po",
		BaseDir:    "/project",
		SourceLang: "en",
	})
	require.ErrorIs(t, err, ErrNoSourceFile)
}

func TestMatchSkipsMarkerAndGitDirs(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/loc/en/app.po", []byte("x"))
	fs.AddFile("/project/.txgo/loc/de/app.po", []byte("x"))
	fs.AddFile("/project/.git/loc/fr/app.po", []byte("x"))

	mapping, err := Match(fs, Options{
		Expression: "loc/<lang>/app.po",
		BaseDir:    "/project",
		SourceLang: "en",
	})
	require.NoError(t, err)
	require.Empty(t, mapping.Translations)
}

func TestMatchHonorsGitignore(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/.gitignore", []byte("build/\n"))
	fs.AddFile("/project/loc/en/app.po", []byte("x"))
	fs.AddFile("/project/loc/de/app.po", []byte("x"))
	fs.AddFile("/project/build/loc/fr/app.po", []byte("x"))

	mapping, err := Match(fs, Options{
		Expression: "loc/<lang>/app.po",
		BaseDir:    "/project",
		SourceLang: "en",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"de": "/project/loc/de/app.po"}, mapping.Translations)
}

func TestCompileRequiresExactlyOnePlaceholder(t *testing.T) {
	_, err := Compile("loc/app.po", "/project")
	var badErr *BadExpressionError
	require.ErrorAs(t, err, &badErr)

	_, err = Compile("loc/<lang>/<lang>.po", "/project")
	require.ErrorAs(t, err, &badErr)
}

func TestCompileEscapesMetacharacters(t *testing.T) {
	re, err := Compile("loc.files/<lang>/app.po", "/project")
	require.NoError(t, err)

	require.True(t, re.MatchString("/project/loc.files/de/app.po"))
	// The dot must not act as a regex wildcard.
	require.False(t, re.MatchString("/project/locXfiles/de/app.po"))
}

func TestCompileLanguageCodeCharset(t *testing.T) {
	re, err := Compile("loc/<lang>/app.po", "/project")
	require.NoError(t, err)

	for _, code := range []string{"de", "pt_BR", "sr-Latn", "zh_Hans_CN"} {
		require.True(t, re.MatchString("/project/loc/"+code+"/app.po"), "code %s", code)
	}
	require.False(t, re.MatchString("/project/loc/de/fr/app.po"), "codes must not span segments")
}
