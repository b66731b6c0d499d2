package sync

import (
	"fmt"
	"strings"
)

// Result is the outcome of one file operation during a sync pass.
type Result struct {
	Resource string
	Lang     string
	Path     string
	Err      error
}

// Report collects the per-file outcomes of a sync pass.
type Report struct {
	Results []Result
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// record appends one result. It reports whether the pass may continue:
// false means the error is fatal and the caller must stop.
func (r *Report) record(resource, lang, path string, err error, skipErrors bool) bool {
	r.Results = append(r.Results, Result{Resource: resource, Lang: lang, Path: path, Err: err})
	return err == nil || skipErrors
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// OK reports whether every recorded operation succeeded.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

// Summary renders the failures as one line each, empty when all succeeded.
func (r *Report) Summary() string {
	failed := r.Failed()
	if len(failed) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d operation(s) failed:\n", len(failed))
	for _, res := range failed {
		if res.Lang != "" {
			fmt.Fprintf(&b, "  %s [%s]: %v\n", res.Resource, res.Lang, res.Err)
		} else {
			fmt.Fprintf(&b, "  %s: %v\n", res.Resource, res.Err)
		}
	}
	return b.String()
}
