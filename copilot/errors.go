package copilot

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports a keyword that matched no inventory row.
type NotFoundError struct {
	Keyword string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No record found for %q.", e.Keyword)
}

// AmbiguousError reports a keyword that matched more than one row. It is
// not something to fix programmatically; the operator re-scopes using the
// grid, which the dispatcher refreshes to the keyword before surfacing this.
type AmbiguousError struct {
	Keyword string
	Count   int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("Found %d records for %q. Please be more specific or use the table above to edit/delete.", e.Count, e.Keyword)
}

// ValidationError lists required fields missing from a draft. No network
// call is made when validation fails.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Missing, ", ")
}

// NetworkError reports a non-success response from a collaborator.
type NetworkError struct {
	Op     string
	Status int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s failed: %d", e.Op, e.Status)
}

// ErrPermissionDenied is returned when voice capture cannot start.
var ErrPermissionDenied = errors.New("voice capture permission denied")
