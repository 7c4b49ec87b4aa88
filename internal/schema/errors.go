package schema

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// SchemaError reports a mistake in the schema itself. Every SchemaError is
// fatal to the whole generation run.
type SchemaError struct {
	// Subject locates the problem, e.g. `class "Box", attribute "size"`.
	Subject string
	Reason  string
}

func (e *SchemaError) Error() string {
	if e.Subject == "" {
		return "schema error: " + e.Reason
	}
	return fmt.Sprintf("schema error in %s: %s", e.Subject, e.Reason)
}

// NewError creates a SchemaError with a stack trace attached
func NewError(subject, format string, args ...any) error {
	return errors.WithStack(&SchemaError{Subject: subject, Reason: fmt.Sprintf(format, args...)})
}

// IsSchemaError reports whether err is or wraps a SchemaError
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

func classSubject(class string) string {
	return fmt.Sprintf("class %q", class)
}

func memberSubject(class, kind, name string) string {
	return fmt.Sprintf("class %q, %s %q", class, kind, name)
}
