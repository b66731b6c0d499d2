package project

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/txgo/txgo/internal/filesystem"
)

func newTestProject(t *testing.T) (*Project, *filesystem.MockFileSystem) {
	t.Helper()

	fs := filesystem.NewMockFileSystem()
	fs.SetWorkingDir("/project")

	p, err := Init(fs, "/project", "https://example.com")
	require.NoError(t, err)
	return p, fs
}

func TestInitCreatesMarkerAndConfig(t *testing.T) {
	p, fs := newTestProject(t)

	require.True(t, fs.Exists("/project/.txgo"))
	require.True(t, fs.Exists("/project/.txgo/config"))

	host, err := p.Host()
	require.NoError(t, err)
	require.Equal(t, "https://example.com", host)
}

func TestInitialized(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	require.False(t, Initialized(fs, "/project"))

	_, err := Init(fs, "/project", "https://example.com")
	require.NoError(t, err)
	require.True(t, Initialized(fs, "/project"))
}

func TestOpenFromSubdirectory(t *testing.T) {
	_, fs := newTestProject(t)
	fs.AddFile("/project/src/deep/nested/file.po", []byte("x"))

	p, err := Open(fs, "/project/src/deep/nested")
	require.NoError(t, err)
	require.Equal(t, "/project", p.Root)
}

func TestOpenOutsideProject(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/elsewhere")

	_, err := Open(fs, "/elsewhere")
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestSaveRoundTrip(t *testing.T) {
	p, fs := newTestProject(t)

	require.NoError(t, p.SetRemoteResource("proj.ui", "en", "PO"))
	require.NoError(t, p.Save())

	reopened, err := Open(fs, "/project")
	require.NoError(t, err)

	res, err := reopened.GetResource("proj.ui")
	require.NoError(t, err)
	require.Equal(t, "en", res.SourceLang)
	require.Equal(t, "PO", res.Type)
}

func TestWriteFileCreatesParentDirs(t *testing.T) {
	p, fs := newTestProject(t)

	require.NoError(t, p.WriteFile("locale/de/ui.po", []byte("content")))
	require.True(t, fs.Exists("/project/locale/de/ui.po"))
}

func TestFullPath(t *testing.T) {
	p, _ := newTestProject(t)

	require.Equal(t, "/project/locale/de.po", p.FullPath("locale/de.po"))
	require.Equal(t, "/other/file.po", p.FullPath("/other/file.po"))
}

func TestRelPath(t *testing.T) {
	p, fs := newTestProject(t)

	rel, err := p.RelPath("/project/locale/de.po")
	require.NoError(t, err)
	require.Equal(t, "locale/de.po", rel)

	fs.SetWorkingDir("/project/locale")
	rel, err = p.RelPath("de.po")
	require.NoError(t, err)
	require.Equal(t, "locale/de.po", rel)
}

func TestRelPathOutsideProject(t *testing.T) {
	p, _ := newTestProject(t)

	_, err := p.RelPath("/tmp/stray.po")
	var pathErr *PathOutsideProjectError
	require.ErrorAs(t, err, &pathErr)
}
