package project

import (
	"errors"
	"fmt"
)

// ErrNotInitialized means no ancestor directory carries the project marker.
var ErrNotInitialized = errors.New("not a txgo project (or any parent directory): run 'txgo init' first")

// UnknownResourceError reports a resource key with no configured section.
type UnknownResourceError struct {
	Key string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("unknown resource %q", e.Key)
}

// PathOutsideProjectError reports a file path that does not resolve to a
// descendant of the project root.
type PathOutsideProjectError struct {
	Path string
	Root string
}

func (e *PathOutsideProjectError) Error() string {
	return fmt.Sprintf("file %q is outside the project root %q", e.Path, e.Root)
}

// InvalidOperationError reports a mutation the resource model forbids, such
// as registering a translation for the resource's source language.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return e.Reason
}

// InvalidSlugError reports a resource identifier that does not match the
// project_slug.resource_slug format.
type InvalidSlugError struct {
	Slug string
}

func (e *InvalidSlugError) Error() string {
	return fmt.Sprintf("invalid resource identifier %q: expected project_slug.resource_slug with characters [A-Za-z0-9_-]", e.Slug)
}
