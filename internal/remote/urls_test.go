package remote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Target
	}{
		{
			name: "project",
			raw:  "https://www.transifex.com/projects/p/myproject/",
			want: Target{Kind: TargetProject, Hostname: "https://www.transifex.com", ProjectSlug: "myproject"},
		},
		{
			name: "project without trailing slash",
			raw:  "https://www.transifex.com/projects/p/myproject",
			want: Target{Kind: TargetProject, Hostname: "https://www.transifex.com", ProjectSlug: "myproject"},
		},
		{
			name: "release",
			raw:  "https://www.transifex.com/projects/p/myproject/r/all-resources/",
			want: Target{Kind: TargetRelease, Hostname: "https://www.transifex.com", ProjectSlug: "myproject", ReleaseSlug: "all-resources"},
		},
		{
			name: "resource",
			raw:  "https://www.transifex.com/projects/p/myproject/resource/ui-strings/",
			want: Target{Kind: TargetResource, Hostname: "https://www.transifex.com", ProjectSlug: "myproject", ResourceSlug: "ui-strings"},
		},
		{
			name: "self-hosted over http",
			raw:  "http://translate.internal:8000/projects/p/myproject/",
			want: Target{Kind: TargetProject, Hostname: "http://translate.internal:8000", ProjectSlug: "myproject"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := ParseURL(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, *target)
		})
	}
}

func TestParseURLUnrecognized(t *testing.T) {
	raws := []string{
		"",
		"not a url",
		"ftp://example.com/projects/p/myproject/",
		"https://example.com/",
		"https://example.com/projects/",
		"https://example.com/projects/p/myproject/extra/segment/",
		"https://example.com/projects/p/my project/",
	}

	for _, raw := range raws {
		_, err := ParseURL(raw)

		var urlErr *UnrecognizedURLError
		require.ErrorAs(t, err, &urlErr, "url %q", raw)
	}
}
