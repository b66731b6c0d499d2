package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetResourcesSendsBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/2/project/myproject/resources/", r.URL.Path)

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "alice", username)
		require.Equal(t, "secret", password)

		json.NewEncoder(w).Encode([]ResourceInfo{{Slug: "ui", Name: "UI strings"}})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "alice", "secret", "")

	resources, err := client.GetResources(context.Background(), "myproject")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	require.Equal(t, "ui", resources[0].Slug)
}

func TestTokenAuthReplacesBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]ResourceInfo{})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "alice", "secret", "tok123")

	_, err := client.GetResources(context.Background(), "myproject")
	require.NoError(t, err)
}

func TestResourceDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/2/project/myproject/resource/ui/", r.URL.Path)
		require.Equal(t, "details", r.URL.RawQuery)

		w.Write([]byte(`{
			"source_language": {"code": "en"},
			"i18n_type": "PO",
			"available_languages": [{"code": "en"}, {"code": "de"}]
		}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "alice", "secret", "")

	details, err := client.ResourceDetails(context.Background(), "myproject", "ui")
	require.NoError(t, err)
	require.Equal(t, "en", details.SourceLanguage)
	require.Equal(t, "PO", details.ContentType)
	require.Equal(t, []string{"en", "de"}, details.AvailableLanguages)
}

func TestResourceDetailsUnsupportedServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A server too old to report source_language and i18n_type.
		w.Write([]byte(`{"slug": "ui"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "alice", "secret", "")

	_, err := client.ResourceDetails(context.Background(), "myproject", "ui")
	require.ErrorIs(t, err, ErrUnsupportedServer)
}

func TestPushFileUploadsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/2/project/myproject/files/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "ui", r.FormValue("resource"))
		require.Equal(t, "de", r.FormValue("language"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		w.Write([]byte(`{"files": [{"uuid": "abc-123"}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "alice", "secret", "")

	handle, err := client.PushFile(context.Background(), "myproject", "ui", "de", []byte("content"))
	require.NoError(t, err)
	require.Equal(t, UploadHandle("abc-123"), handle)
}

func TestExtractTranslationSendsHandle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/2/project/myproject/resource/ui/translation/de/", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "abc-123", payload["uuid"])
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "alice", "secret", "")

	err := client.ExtractTranslation(context.Background(), "myproject", "ui", "de", "abc-123")
	require.NoError(t, err)
}

func TestPullFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/2/project/myproject/resource/ui/translation/de/", r.URL.Path)
		w.Write([]byte(`{"content": "msgid \"x\"\n", "completed": 85}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "alice", "secret", "")

	translation, err := client.PullFile(context.Background(), "myproject", "ui", "de")
	require.NoError(t, err)
	require.Equal(t, []byte("msgid \"x\"\n"), translation.Content)
	require.Equal(t, 85, translation.Completion)
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "permission denied"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "alice", "secret", "")

	_, err := client.GetResources(context.Background(), "myproject")

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, http.StatusForbidden, remoteErr.Status)
	require.Equal(t, "permission denied", remoteErr.Message)
}
