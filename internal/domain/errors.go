package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument reports a selector or input that fails validation before
// any I/O happens. Wrap with %w and test with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound reports a missing local data source.
var ErrNotFound = errors.New("not found")

// UpstreamError reports a non-success response from a remote data source.
type UpstreamError struct {
	Status int
	URL    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d for %s", e.Status, e.URL)
}

// SchemaError reports columns required by an operation that are absent from
// the input table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", "))
}
