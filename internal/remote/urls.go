package remote

import (
	"net/url"
	"regexp"
	"strings"
)

// TargetKind tags what a parsed remote URL points at.
type TargetKind string

const (
	TargetProject  TargetKind = "project"
	TargetRelease  TargetKind = "release"
	TargetResource TargetKind = "resource"
)

// Target is the parsed form of a remote service URL.
type Target struct {
	Kind         TargetKind
	Hostname     string // scheme://host
	ProjectSlug  string
	ReleaseSlug  string
	ResourceSlug string
}

var (
	resourcePath = regexp.MustCompile(`^/projects/p/([\w-]+)/resource/([\w-]+)/?$`)
	releasePath  = regexp.MustCompile(`^/projects/p/([\w-]+)/r/([\w-]+)/?$`)
	projectPath  = regexp.MustCompile(`^/projects/p/([\w-]+)/?$`)
)

// ParseURL parses a remote service URL into a project, release or resource
// target. Any other shape fails with UnrecognizedURLError.
func ParseURL(raw string) (*Target, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &UnrecognizedURLError{URL: raw}
	}

	hostname := parsed.Scheme + "://" + parsed.Host

	if m := resourcePath.FindStringSubmatch(parsed.Path); m != nil {
		return &Target{
			Kind:         TargetResource,
			Hostname:     hostname,
			ProjectSlug:  m[1],
			ResourceSlug: m[2],
		}, nil
	}

	if m := releasePath.FindStringSubmatch(parsed.Path); m != nil {
		return &Target{
			Kind:        TargetRelease,
			Hostname:    hostname,
			ProjectSlug: m[1],
			ReleaseSlug: m[2],
		}, nil
	}

	if m := projectPath.FindStringSubmatch(parsed.Path); m != nil {
		return &Target{
			Kind:        TargetProject,
			Hostname:    hostname,
			ProjectSlug: m[1],
		}, nil
	}

	return nil, &UnrecognizedURLError{URL: raw}
}
