package ollama

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

// validateProfileJSON checks the model output against the profile schema and
// converts any mismatch into a *domain.SchemaViolation so callers can react
// to the shape of the failure instead of its wording.
func validateProfileJSON(raw []byte) error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &domain.SchemaViolation{Reason: "model output is not valid JSON"}
	}

	err := profileSchema.Validate(payload)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return &domain.SchemaViolation{Reason: err.Error()}
	}

	leaf := leafCause(validationErr)
	return &domain.SchemaViolation{
		Field:  topLevelField(leaf.InstanceLocation),
		Reason: leaf.Message,
	}
}

func leafCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

// topLevelField extracts the first segment of a JSON pointer, so a failure
// at "/education/2/graduationYear" is attributed to "education".
func topLevelField(instanceLocation string) string {
	trimmed := strings.TrimPrefix(instanceLocation, "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}
