package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// HTTPClient implements Client against the remote service's HTTP API.
type HTTPClient struct {
	host     string // scheme://host, no trailing slash
	username string
	password string
	client   *http.Client
}

// NewHTTPClient creates a client for host. When token is non-empty the
// client authenticates with it as a bearer token; otherwise every request
// carries HTTP basic auth with username/password.
func NewHTTPClient(host, username, password, token string) *HTTPClient {
	c := &HTTPClient{
		host:     strings.TrimSuffix(host, "/"),
		username: username,
		password: password,
		client:   http.DefaultClient,
	}

	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		c.client = oauth2.NewClient(context.Background(), ts)
		c.username = ""
		c.password = ""
	}

	return c
}

func (c *HTTPClient) url(format string, args ...interface{}) string {
	return c.host + fmt.Sprintf(format, args...)
}

// do issues a request and decodes the JSON response into out (when non-nil).
// Non-2xx statuses are surfaced as RemoteError with the server's message.
func (c *HTTPClient) do(ctx context.Context, method, url, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("building request %s %s: %w", method, url, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response of %s %s: %w", method, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response of %s %s: %w", method, url, err)
		}
	}

	return nil
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return strings.TrimSpace(string(data))
}

func (c *HTTPClient) GetResources(ctx context.Context, projectSlug string) ([]ResourceInfo, error) {
	var resources []ResourceInfo
	url := c.url("/api/2/project/%s/resources/", projectSlug)
	if err := c.do(ctx, http.MethodGet, url, "", nil, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (c *HTTPClient) ProjectDetails(ctx context.Context, projectSlug string) (*ProjectDetails, error) {
	var payload struct {
		Slug      string         `json:"slug"`
		Resources []ResourceInfo `json:"resources"`
	}
	url := c.url("/api/2/project/%s/?details", projectSlug)
	if err := c.do(ctx, http.MethodGet, url, "", nil, &payload); err != nil {
		return nil, err
	}
	return &ProjectDetails{Slug: payload.Slug, Resources: payload.Resources}, nil
}

func (c *HTTPClient) ReleaseDetails(ctx context.Context, projectSlug, releaseSlug string) (*ReleaseDetails, error) {
	var payload struct {
		Slug      string         `json:"slug"`
		Resources []ResourceInfo `json:"resources"`
	}
	url := c.url("/api/2/project/%s/release/%s/", projectSlug, releaseSlug)
	if err := c.do(ctx, http.MethodGet, url, "", nil, &payload); err != nil {
		return nil, err
	}
	return &ReleaseDetails{Slug: payload.Slug, Resources: payload.Resources}, nil
}

func (c *HTTPClient) ResourceDetails(ctx context.Context, projectSlug, resourceSlug string) (*ResourceDetails, error) {
	var payload struct {
		SourceLanguage *struct {
			Code string `json:"code"`
		} `json:"source_language"`
		ContentType        string `json:"i18n_type"`
		AvailableLanguages []struct {
			Code string `json:"code"`
		} `json:"available_languages"`
	}
	url := c.url("/api/2/project/%s/resource/%s/?details", projectSlug, resourceSlug)
	if err := c.do(ctx, http.MethodGet, url, "", nil, &payload); err != nil {
		return nil, err
	}

	if payload.SourceLanguage == nil || payload.SourceLanguage.Code == "" || payload.ContentType == "" {
		return nil, ErrUnsupportedServer
	}

	details := &ResourceDetails{
		SourceLanguage: payload.SourceLanguage.Code,
		ContentType:    payload.ContentType,
	}
	for _, lang := range payload.AvailableLanguages {
		details.AvailableLanguages = append(details.AvailableLanguages, lang.Code)
	}
	return details, nil
}

func (c *HTTPClient) PushFile(ctx context.Context, projectSlug, resourceSlug, lang string, content []byte) (UploadHandle, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if err := form.WriteField("resource", resourceSlug); err != nil {
		return "", fmt.Errorf("encoding upload form: %w", err)
	}
	if err := form.WriteField("language", lang); err != nil {
		return "", fmt.Errorf("encoding upload form: %w", err)
	}
	part, err := form.CreateFormFile("file", fmt.Sprintf("%s_%s", resourceSlug, lang))
	if err != nil {
		return "", fmt.Errorf("encoding upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("encoding upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("encoding upload form: %w", err)
	}

	var payload struct {
		Files []struct {
			UUID string `json:"uuid"`
		} `json:"files"`
	}
	url := c.url("/api/2/project/%s/files/", projectSlug)
	if err := c.do(ctx, http.MethodPost, url, form.FormDataContentType(), &body, &payload); err != nil {
		return "", err
	}

	if len(payload.Files) == 0 || payload.Files[0].UUID == "" {
		return "", ErrUnsupportedServer
	}
	return UploadHandle(payload.Files[0].UUID), nil
}

func (c *HTTPClient) ExtractSource(ctx context.Context, projectSlug string, handle UploadHandle, resourceSlug string) error {
	body, err := json.Marshal(map[string]string{
		"uuid": string(handle),
		"slug": resourceSlug,
	})
	if err != nil {
		return fmt.Errorf("encoding extract request: %w", err)
	}

	url := c.url("/api/2/project/%s/resources/", projectSlug)
	return c.do(ctx, http.MethodPost, url, "application/json", bytes.NewReader(body), nil)
}

func (c *HTTPClient) ExtractTranslation(ctx context.Context, projectSlug, resourceSlug, lang string, handle UploadHandle) error {
	body, err := json.Marshal(map[string]string{"uuid": string(handle)})
	if err != nil {
		return fmt.Errorf("encoding extract request: %w", err)
	}

	url := c.url("/api/2/project/%s/resource/%s/translation/%s/", projectSlug, resourceSlug, lang)
	return c.do(ctx, http.MethodPut, url, "application/json", bytes.NewReader(body), nil)
}

func (c *HTTPClient) PullFile(ctx context.Context, projectSlug, resourceSlug, lang string) (*Translation, error) {
	var payload struct {
		Content    string `json:"content"`
		Completion int    `json:"completed"`
	}
	url := c.url("/api/2/project/%s/resource/%s/translation/%s/", projectSlug, resourceSlug, lang)
	if err := c.do(ctx, http.MethodGet, url, "", nil, &payload); err != nil {
		return nil, err
	}

	return &Translation{
		Content:    []byte(payload.Content),
		Completion: payload.Completion,
	}, nil
}

func (c *HTTPClient) DeleteResource(ctx context.Context, projectSlug, resourceSlug string) error {
	url := c.url("/api/2/project/%s/resource/%s/", projectSlug, resourceSlug)
	return c.do(ctx, http.MethodDelete, url, "", nil, nil)
}

func (c *HTTPClient) DeleteTranslation(ctx context.Context, projectSlug, resourceSlug, lang string) error {
	url := c.url("/api/2/project/%s/resource/%s/translation/%s/", projectSlug, resourceSlug, lang)
	return c.do(ctx, http.MethodDelete, url, "", nil, nil)
}
