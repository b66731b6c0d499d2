package remote

import (
	"context"
	"fmt"
)

// PushedFile records one upload received by the mock.
type PushedFile struct {
	ProjectSlug  string
	ResourceSlug string
	Lang         string
	Content      []byte
	Handle       UploadHandle
}

// ExtractCall records one extract request received by the mock.
type ExtractCall struct {
	ProjectSlug  string
	ResourceSlug string
	Lang         string // empty for source extraction
	Handle       UploadHandle
}

// MockClient implements Client for testing
type MockClient struct {
	resources    map[string][]ResourceInfo   // key: project slug
	details      map[string]*ResourceDetails // key: "project/resource"
	translations map[string]*Translation     // key: "project/resource/lang"
	releases     map[string]*ReleaseDetails  // key: "project/release"

	// Recorded traffic
	Pushed     []PushedFile
	Extracts   []ExtractCall
	Deleted    []string // "project/resource" or "project/resource/lang"
	nextHandle int

	// Hooks for testing error scenarios
	GetResourcesError       error
	ProjectDetailsError     error
	ReleaseDetailsError     error
	ResourceDetailsError    error
	PushFileError           error
	ExtractSourceError      error
	ExtractTranslationError error
	PullFileError           error
	DeleteError             error

	// Targeted hooks, keyed by "project/resource/lang" ("" lang for source)
	PushFileErrors map[string]error
	PullFileErrors map[string]error
}

// NewMockClient creates a new MockClient
func NewMockClient() *MockClient {
	return &MockClient{
		resources:      make(map[string][]ResourceInfo),
		details:        make(map[string]*ResourceDetails),
		translations:   make(map[string]*Translation),
		releases:       make(map[string]*ReleaseDetails),
		PushFileErrors: make(map[string]error),
		PullFileErrors: make(map[string]error),
	}
}

// AddResource registers a resource on the mock server.
func (m *MockClient) AddResource(projectSlug string, info ResourceInfo, details *ResourceDetails) {
	m.resources[projectSlug] = append(m.resources[projectSlug], info)
	if details != nil {
		m.details[projectSlug+"/"+info.Slug] = details
	}
}

// AddRelease registers a release on the mock server.
func (m *MockClient) AddRelease(projectSlug, releaseSlug string, details *ReleaseDetails) {
	m.releases[projectSlug+"/"+releaseSlug] = details
}

// SetTranslation stores pullable content for project/resource/lang.
func (m *MockClient) SetTranslation(projectSlug, resourceSlug, lang string, content []byte, completion int) {
	key := fmt.Sprintf("%s/%s/%s", projectSlug, resourceSlug, lang)
	m.translations[key] = &Translation{Content: content, Completion: completion}
}

func (m *MockClient) GetResources(ctx context.Context, projectSlug string) ([]ResourceInfo, error) {
	if m.GetResourcesError != nil {
		return nil, m.GetResourcesError
	}
	return m.resources[projectSlug], nil
}

func (m *MockClient) ProjectDetails(ctx context.Context, projectSlug string) (*ProjectDetails, error) {
	if m.ProjectDetailsError != nil {
		return nil, m.ProjectDetailsError
	}
	return &ProjectDetails{Slug: projectSlug, Resources: m.resources[projectSlug]}, nil
}

func (m *MockClient) ReleaseDetails(ctx context.Context, projectSlug, releaseSlug string) (*ReleaseDetails, error) {
	if m.ReleaseDetailsError != nil {
		return nil, m.ReleaseDetailsError
	}
	release, exists := m.releases[projectSlug+"/"+releaseSlug]
	if !exists {
		return nil, &RemoteError{Status: 404, Message: "release not found"}
	}
	return release, nil
}

func (m *MockClient) ResourceDetails(ctx context.Context, projectSlug, resourceSlug string) (*ResourceDetails, error) {
	if m.ResourceDetailsError != nil {
		return nil, m.ResourceDetailsError
	}
	details, exists := m.details[projectSlug+"/"+resourceSlug]
	if !exists {
		return nil, &RemoteError{Status: 404, Message: "resource not found"}
	}
	return details, nil
}

func (m *MockClient) PushFile(ctx context.Context, projectSlug, resourceSlug, lang string, content []byte) (UploadHandle, error) {
	if m.PushFileError != nil {
		return "", m.PushFileError
	}
	key := fmt.Sprintf("%s/%s/%s", projectSlug, resourceSlug, lang)
	if err, exists := m.PushFileErrors[key]; exists {
		return "", err
	}

	m.nextHandle++
	handle := UploadHandle(fmt.Sprintf("upload-%d", m.nextHandle))
	m.Pushed = append(m.Pushed, PushedFile{
		ProjectSlug:  projectSlug,
		ResourceSlug: resourceSlug,
		Lang:         lang,
		Content:      content,
		Handle:       handle,
	})
	return handle, nil
}

func (m *MockClient) ExtractSource(ctx context.Context, projectSlug string, handle UploadHandle, resourceSlug string) error {
	if m.ExtractSourceError != nil {
		return m.ExtractSourceError
	}
	m.Extracts = append(m.Extracts, ExtractCall{
		ProjectSlug:  projectSlug,
		ResourceSlug: resourceSlug,
		Handle:       handle,
	})
	return nil
}

func (m *MockClient) ExtractTranslation(ctx context.Context, projectSlug, resourceSlug, lang string, handle UploadHandle) error {
	if m.ExtractTranslationError != nil {
		return m.ExtractTranslationError
	}
	m.Extracts = append(m.Extracts, ExtractCall{
		ProjectSlug:  projectSlug,
		ResourceSlug: resourceSlug,
		Lang:         lang,
		Handle:       handle,
	})
	return nil
}

func (m *MockClient) PullFile(ctx context.Context, projectSlug, resourceSlug, lang string) (*Translation, error) {
	if m.PullFileError != nil {
		return nil, m.PullFileError
	}
	key := fmt.Sprintf("%s/%s/%s", projectSlug, resourceSlug, lang)
	if err, exists := m.PullFileErrors[key]; exists {
		return nil, err
	}

	translation, exists := m.translations[key]
	if !exists {
		return nil, &RemoteError{Status: 404, Message: "translation not found"}
	}
	return translation, nil
}

func (m *MockClient) DeleteResource(ctx context.Context, projectSlug, resourceSlug string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.Deleted = append(m.Deleted, projectSlug+"/"+resourceSlug)
	return nil
}

func (m *MockClient) DeleteTranslation(ctx context.Context, projectSlug, resourceSlug, lang string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.Deleted = append(m.Deleted, fmt.Sprintf("%s/%s/%s", projectSlug, resourceSlug, lang))
	return nil
}
