package config

import "fmt"

// ParseError reports a malformed configuration file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config: line %d: %s", e.Line, e.Msg)
}

// NotFoundError reports a missing section or key. Key is empty when the
// section itself is missing, so callers can tell "resource unknown" apart
// from "attribute unset".
type NotFoundError struct {
	Section string
	Key     string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: section %q not found", e.Section)
	}
	return fmt.Sprintf("config: key %q not found in section %q", e.Key, e.Section)
}

// IsSectionMissing reports whether the error refers to the whole section.
func (e *NotFoundError) IsSectionMissing() bool {
	return e.Key == ""
}
