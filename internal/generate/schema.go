package generate

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// cardArraySchema is what a well-formed generation response must look like:
// a JSON array of card objects. Validation happens before any card is
// decoded or displayed.
const cardArraySchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["type", "front", "back"],
    "properties": {
      "type": {
        "type": "string",
        "enum": ["definition", "why_how", "cloze", "other"]
      },
      "front": {"type": "string", "minLength": 1},
      "back": {
        "oneOf": [
          {"type": "string"},
          {"type": "array", "items": {"type": "string"}}
        ]
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// validateCards checks a raw response document against the card array
// schema and reports the first few violations.
func validateCards(doc string) error {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(cardArraySchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("invalid card schema definition: %w", schemaErr)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := result.Errors()
	msg := ""
	for i, desc := range errs {
		if i == 3 {
			msg += fmt.Sprintf("; and %d more", len(errs)-3)
			break
		}
		if i > 0 {
			msg += "; "
		}
		msg += desc.String()
	}
	return fmt.Errorf("response does not match card schema: %s", msg)
}
