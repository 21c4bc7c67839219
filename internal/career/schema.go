package career

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Every field is optional; missing values are defaulted during normalization.
// Only values of the wrong type are rejected.
const careerPathSchema = `{
  "type": "object",
  "properties": {
    "title": {"type": ["string", "null"]},
    "description": {"type": ["string", "null"]},
    "estimatedTimeline": {"type": ["string", "null"]},
    "skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "potentialRoles": {"type": ["array", "null"], "items": {"type": "string"}},
    "steps": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": ["string", "null"]},
          "title": {"type": ["string", "null"]},
          "description": {"type": ["string", "null"]},
          "timeframe": {"type": ["string", "null"]},
          "resources": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "properties": {
                "id": {"type": ["string", "null"]},
                "title": {"type": ["string", "null"]},
                "type": {"type": ["string", "null"]},
                "link": {"type": ["string", "null"]},
                "description": {"type": ["string", "null"]}
              }
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(careerPathSchema)

// ValidationError lists every field of the document that has the wrong shape.
type ValidationError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("career path document invalid:")
	for _, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ValidateDocument checks a raw JSON document against the career path shape.
func ValidateDocument(document string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(document))
	if err != nil {
		return fmt.Errorf("validate career path document failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
