package decode

import (
	"encoding/json"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resultSchemaJSON describes the shape the prompt asks the model for.
// Validation is advisory: a parseable reply that strays from the schema is
// still accepted (the coercing field types absorb the drift), but the
// violation is logged so prompt regressions show up in the logs.
const resultSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "summary": {"type": "string"},
    "missing_info": {"type": "array", "items": {"type": "string"}},
    "issues": {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "string"},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "desc": {"type": "string"},
          "qty": {"type": ["number", "string"]},
          "unit": {"type": "string"},
          "unit_price": {"type": ["number", "string"]},
          "suggested_unit_price": {"type": ["number", "string"]},
          "subtotal": {"type": ["number", "string"]}
        }
      }
    },
    "estimated_total": {"type": ["string", "number"]}
  }
}`

type resultSchema struct {
	compiled *jsonschema.Schema
}

func compileResultSchema() *resultSchema {
	return &resultSchema{
		compiled: jsonschema.MustCompileString("analysis_result.schema.json", resultSchemaJSON),
	}
}

func (s *resultSchema) check(raw string) {
	var inst any
	if err := json.Unmarshal([]byte(raw), &inst); err != nil {
		return
	}
	if err := s.compiled.Validate(inst); err != nil {
		slog.Warn("model output does not fully conform to the result schema", "error", err)
	}
}
