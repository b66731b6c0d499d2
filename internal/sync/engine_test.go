package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/txgo/txgo/internal/filesystem"
	"github.com/txgo/txgo/internal/project"
	"github.com/txgo/txgo/internal/remote"
)

// newTestEngine builds a project with one fully mapped resource proj.ui
// (source en, translations de and fr) whose files all exist on disk, and a
// mock server that knows the resource.
func newTestEngine(t *testing.T) (*Engine, *filesystem.MockFileSystem, *remote.MockClient) {
	t.Helper()

	fs := filesystem.NewMockFileSystem()
	fs.SetWorkingDir("/project")
	fs.AddFile("/project/locale/en/ui.po", []byte("source"))
	fs.AddFile("/project/locale/de/ui.po", []byte("german"))
	fs.AddFile("/project/locale/fr/ui.po", []byte("french"))

	p, err := project.Init(fs, "/project", "https://example.com")
	require.NoError(t, err)
	require.NoError(t, p.SetSourceFile("proj.ui", "en", "/project/locale/en/ui.po"))
	require.NoError(t, p.SetTranslation("proj.ui", "de", "/project/locale/de/ui.po"))
	require.NoError(t, p.SetTranslation("proj.ui", "fr", "/project/locale/fr/ui.po"))
	require.NoError(t, p.Save())

	client := remote.NewMockClient()
	client.AddResource("proj", remote.ResourceInfo{Slug: "ui"}, &remote.ResourceDetails{
		SourceLanguage:     "en",
		ContentType:        "PO",
		AvailableLanguages: []string{"en", "de", "fr", "nl"},
	})

	return NewEngine(p, client), fs, client
}

func TestPushRequiresSourceOrTranslations(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Push(context.Background(), PushOptions{})
	require.ErrorIs(t, err, ErrNothingToPush)
}

func TestPushSourcePairsUploadWithExtract(t *testing.T) {
	engine, _, client := newTestEngine(t)

	report, err := engine.Push(context.Background(), PushOptions{Source: true})
	require.NoError(t, err)
	require.True(t, report.OK())

	require.Len(t, client.Pushed, 1)
	require.Equal(t, "proj", client.Pushed[0].ProjectSlug)
	require.Equal(t, "ui", client.Pushed[0].ResourceSlug)
	require.Equal(t, "en", client.Pushed[0].Lang)
	require.Equal(t, []byte("source"), client.Pushed[0].Content)

	require.Len(t, client.Extracts, 1)
	require.Equal(t, client.Pushed[0].Handle, client.Extracts[0].Handle)
	require.Empty(t, client.Extracts[0].Lang, "source extraction carries no language")
}

func TestPushTranslationsWithLanguageFilter(t *testing.T) {
	engine, _, client := newTestEngine(t)

	report, err := engine.Push(context.Background(), PushOptions{
		Translations: true,
		Languages:    []string{"de"},
	})
	require.NoError(t, err)
	require.True(t, report.OK())

	require.Len(t, client.Pushed, 1)
	require.Equal(t, "de", client.Pushed[0].Lang)
	require.Len(t, client.Extracts, 1)
	require.Equal(t, "de", client.Extracts[0].Lang)
}

func TestPushUnknownRemoteResourceNeedsForce(t *testing.T) {
	engine, _, client := newTestEngine(t)
	p := engine.project
	require.NoError(t, p.SetRemoteResource("proj.unknown", "en", "PO"))
	require.NoError(t, p.SetSourceFile("proj.unknown", "en", "/project/locale/en/ui.po"))

	_, err := engine.Push(context.Background(), PushOptions{Source: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "proj.unknown")
	require.Empty(t, client.Pushed, "nothing may be uploaded before the check passes")

	report, err := engine.Push(context.Background(), PushOptions{Source: true, Force: true})
	require.NoError(t, err)
	require.True(t, report.OK())
	require.Len(t, client.Pushed, 2)
}

func TestPushSkipErrorsContinues(t *testing.T) {
	engine, fs, client := newTestEngine(t)
	p := engine.project

	fs.AddFile("/project/locale/en/alpha.po", []byte("alpha"))
	require.NoError(t, p.SetSourceFile("proj.alpha", "en", "/project/locale/en/alpha.po"))
	client.AddResource("proj", remote.ResourceInfo{Slug: "alpha"}, nil)

	fs.AddFile("/project/locale/en/extra.po", []byte("extra"))
	require.NoError(t, p.SetSourceFile("proj.extra", "en", "/project/locale/en/extra.po"))
	client.AddResource("proj", remote.ResourceInfo{Slug: "extra"}, nil)

	// Resources are processed in key order: proj.extra fails in the middle,
	// proj.alpha precedes it and proj.ui follows.
	client.PushFileErrors["proj/extra/en"] = &remote.RemoteError{Status: 500, Message: "boom"}

	report, err := engine.Push(context.Background(), PushOptions{Source: true, SkipErrors: true})
	require.NoError(t, err)

	failed := report.Failed()
	require.Len(t, failed, 1)
	require.Equal(t, "proj.extra", failed[0].Resource)

	require.Len(t, client.Pushed, 2)
	require.Equal(t, "alpha", client.Pushed[0].ResourceSlug)
	require.Equal(t, "ui", client.Pushed[1].ResourceSlug, "the resources after the failure must still be pushed")
}

func TestPushFirstErrorAbortsWithoutSkip(t *testing.T) {
	engine, fs, client := newTestEngine(t)
	p := engine.project

	fs.AddFile("/project/locale/en/extra.po", []byte("extra"))
	require.NoError(t, p.SetSourceFile("proj.extra", "en", "/project/locale/en/extra.po"))
	client.AddResource("proj", remote.ResourceInfo{Slug: "extra"}, nil)

	client.PushFileErrors["proj/extra/en"] = &remote.RemoteError{Status: 500, Message: "boom"}

	_, err := engine.Push(context.Background(), PushOptions{Source: true})
	require.Error(t, err)
	require.Empty(t, client.Pushed, "the run must stop at the first failure")
}

func TestPullWritesTranslationFiles(t *testing.T) {
	engine, fs, client := newTestEngine(t)
	client.SetTranslation("proj", "ui", "de", []byte("neu"), 100)
	client.SetTranslation("proj", "ui", "fr", []byte("nouveau"), 100)

	report, err := engine.Pull(context.Background(), PullOptions{Overwrite: true})
	require.NoError(t, err)
	require.True(t, report.OK())

	data, err := fs.ReadFile("/project/locale/de/ui.po")
	require.NoError(t, err)
	require.Equal(t, []byte("neu"), data)
}

func TestPullDisabledOverwriteWritesNewFile(t *testing.T) {
	engine, fs, client := newTestEngine(t)
	client.SetTranslation("proj", "ui", "de", []byte("neu"), 100)

	report, err := engine.Pull(context.Background(), PullOptions{
		Languages: []string{"de"},
		Overwrite: false,
	})
	require.NoError(t, err)
	require.True(t, report.OK())

	data, err := fs.ReadFile("/project/locale/de/ui.po")
	require.NoError(t, err)
	require.Equal(t, []byte("german"), data, "the existing file must be untouched")

	data, err = fs.ReadFile("/project/locale/de/ui.po.new")
	require.NoError(t, err)
	require.Equal(t, []byte("neu"), data)
}

func TestPullSkipsBelowMinimumCompletion(t *testing.T) {
	engine, fs, client := newTestEngine(t)
	client.SetTranslation("proj", "ui", "de", []byte("neu"), 40)
	client.SetTranslation("proj", "ui", "fr", []byte("nouveau"), 90)

	report, err := engine.Pull(context.Background(), PullOptions{
		Overwrite:   true,
		MinimumPerc: 80,
	})
	require.NoError(t, err)
	require.True(t, report.OK())

	data, err := fs.ReadFile("/project/locale/de/ui.po")
	require.NoError(t, err)
	require.Equal(t, []byte("german"), data, "an incomplete translation must not be written")

	data, err = fs.ReadFile("/project/locale/fr/ui.po")
	require.NoError(t, err)
	require.Equal(t, []byte("nouveau"), data)
}

func TestPullFetchAllRejectsLanguageFilter(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Pull(context.Background(), PullOptions{
		FetchAll:  true,
		Languages: []string{"de"},
	})
	require.ErrorIs(t, err, ErrConflictingOptions)
}

func TestPullFetchAllSavesUnmappedLanguages(t *testing.T) {
	engine, fs, client := newTestEngine(t)
	client.SetTranslation("proj", "ui", "de", []byte("neu"), 100)
	client.SetTranslation("proj", "ui", "fr", []byte("nouveau"), 100)
	client.SetTranslation("proj", "ui", "nl", []byte("nieuw"), 100)

	report, err := engine.Pull(context.Background(), PullOptions{
		FetchAll:  true,
		Overwrite: true,
	})
	require.NoError(t, err)
	require.True(t, report.OK())

	data, err := fs.ReadFile("/project/.txgo/pulls/proj.ui.nl")
	require.NoError(t, err)
	require.Equal(t, []byte("nieuw"), data)
}

func TestPullFetchSource(t *testing.T) {
	engine, fs, client := newTestEngine(t)
	client.SetTranslation("proj", "ui", "en", []byte("fresh source"), 100)
	client.SetTranslation("proj", "ui", "de", []byte("neu"), 100)
	client.SetTranslation("proj", "ui", "fr", []byte("nouveau"), 100)

	report, err := engine.Pull(context.Background(), PullOptions{
		FetchSource: true,
		Overwrite:   true,
	})
	require.NoError(t, err)
	require.True(t, report.OK())

	data, err := fs.ReadFile("/project/locale/en/ui.po")
	require.NoError(t, err)
	require.Equal(t, []byte("fresh source"), data)
}

func TestPullSkipErrorsRecordsAndContinues(t *testing.T) {
	engine, fs, client := newTestEngine(t)
	client.SetTranslation("proj", "ui", "fr", []byte("nouveau"), 100)
	// de stays unknown on the server, so its pull fails with a 404.

	report, err := engine.Pull(context.Background(), PullOptions{
		Overwrite:  true,
		SkipErrors: true,
	})
	require.NoError(t, err)

	failed := report.Failed()
	require.Len(t, failed, 1)
	require.Equal(t, "de", failed[0].Lang)

	data, err := fs.ReadFile("/project/locale/fr/ui.po")
	require.NoError(t, err)
	require.Equal(t, []byte("nouveau"), data)
}

func TestDeleteResource(t *testing.T) {
	engine, _, client := newTestEngine(t)

	report, err := engine.Delete(context.Background(), DeleteOptions{
		Resources: []string{"proj.ui"},
	})
	require.NoError(t, err)
	require.True(t, report.OK())
	require.Equal(t, []string{"proj/ui"}, client.Deleted)
}

func TestDeleteTranslations(t *testing.T) {
	engine, _, client := newTestEngine(t)

	report, err := engine.Delete(context.Background(), DeleteOptions{
		Resources: []string{"proj.ui"},
		Languages: []string{"de", "fr"},
	})
	require.NoError(t, err)
	require.True(t, report.OK())
	require.Equal(t, []string{"proj/ui/de", "proj/ui/fr"}, client.Deleted)
}

func TestReportSummary(t *testing.T) {
	report := NewReport()
	report.record("proj.ui", "de", "locale/de/ui.po", &remote.RemoteError{Status: 500, Message: "boom"}, true)
	report.record("proj.ui", "fr", "locale/fr/ui.po", nil, true)

	require.False(t, report.OK())
	require.Contains(t, report.Summary(), "proj.ui [de]")
	require.NotContains(t, report.Summary(), "[fr]")
}
