package domain

import (
	"errors"
	"fmt"
)

var (
	ErrResumeNotFound    = errors.New("resume not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoTextContent     = errors.New("no extractable text content")
	ErrNotAResume        = errors.New("document is not a resume or could not be parsed")
	ErrAssembly          = errors.New("profile assembly failed")
	ErrInvalidInput      = errors.New("invalid input")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// SchemaViolation is the structured failure payload reported by the inference
// boundary when its output does not conform to the declared schema. Field
// names the first offending schema property so callers can classify the
// failure without sniffing message text.
type SchemaViolation struct {
	Field  string
	Reason string
}

func (e *SchemaViolation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema violation: %s", e.Reason)
	}
	return fmt.Sprintf("schema violation at %q: %s", e.Field, e.Reason)
}
