package deputies

import (
	"fmt"
	"strings"
)

// NoMatchError reports a name search that returned zero candidates.
type NoMatchError struct {
	Name string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no deputy found matching %q", e.Name)
}

// AmbiguousMatchError reports a search that could not be reduced to a single
// deputy. Candidates carries every candidate name so the caller can refine
// the query.
type AmbiguousMatchError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match for %q: candidates are %s",
		e.Name, strings.Join(e.Candidates, ", "))
}
