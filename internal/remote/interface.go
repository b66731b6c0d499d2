package remote

import (
	"context"
)

// UploadHandle identifies a file stored on the server but not yet extracted
// into its translation memory.
type UploadHandle string

// ResourceInfo is one entry of a remote resource listing.
type ResourceInfo struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	ProjectSlug string `json:"project_slug,omitempty"`
}

// ResourceDetails describes a single remote resource.
type ResourceDetails struct {
	SourceLanguage     string
	ContentType        string
	AvailableLanguages []string
}

// ProjectDetails describes a remote project and its resources.
type ProjectDetails struct {
	Slug      string
	Resources []ResourceInfo
}

// ReleaseDetails describes a remote release and the resources it bundles.
type ReleaseDetails struct {
	Slug      string
	Resources []ResourceInfo
}

// Translation is the content of one pulled translation file together with
// the completion percentage the service reports for it.
type Translation struct {
	Content    []byte
	Completion int
}

// Client provides an abstraction over the remote translation service API
type Client interface {
	// Listing and details
	GetResources(ctx context.Context, projectSlug string) ([]ResourceInfo, error)
	ProjectDetails(ctx context.Context, projectSlug string) (*ProjectDetails, error)
	ReleaseDetails(ctx context.Context, projectSlug, releaseSlug string) (*ReleaseDetails, error)
	ResourceDetails(ctx context.Context, projectSlug, resourceSlug string) (*ResourceDetails, error)

	// Upload and server-side extraction
	PushFile(ctx context.Context, projectSlug, resourceSlug, lang string, content []byte) (UploadHandle, error)
	ExtractSource(ctx context.Context, projectSlug string, handle UploadHandle, resourceSlug string) error
	ExtractTranslation(ctx context.Context, projectSlug, resourceSlug, lang string, handle UploadHandle) error

	// Download
	PullFile(ctx context.Context, projectSlug, resourceSlug, lang string) (*Translation, error)

	// Remote deletion
	DeleteResource(ctx context.Context, projectSlug, resourceSlug string) error
	DeleteTranslation(ctx context.Context, projectSlug, resourceSlug, lang string) error
}
