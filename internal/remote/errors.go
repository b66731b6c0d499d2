package remote

import (
	"errors"
	"fmt"
)

// ErrUnsupportedServer means the remote service's resource-details response
// lacks the fields this client needs, usually because the server runs an
// incompatible version.
var ErrUnsupportedServer = errors.New("remote server response is missing required fields; the server may be running an unsupported version")

// UnrecognizedURLError reports a URL matching none of the known project,
// release or resource shapes.
type UnrecognizedURLError struct {
	URL string
}

func (e *UnrecognizedURLError) Error() string {
	return fmt.Sprintf("URL %q is not a recognized project, release or resource URL", e.URL)
}

// RemoteError carries a failure reported by the remote service.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote service returned status %d", e.Status)
	}
	return fmt.Sprintf("remote service returned status %d: %s", e.Status, e.Message)
}
