package checkpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// envelopeSchema guards the checkpoint envelope shape before any field is
// trusted. Structural damage (truncation, stray writes) fails here instead
// of surfacing as a half-populated checkpoint.
const envelopeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["metadata", "state", "config"],
  "properties": {
    "metadata": {
      "type": "object",
      "required": ["id", "created_at", "tick", "schema_version"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "created_at": {"type": "string"},
        "tick": {"type": "integer", "minimum": 0},
        "description": {"type": "string"},
        "schema_version": {"type": "integer", "minimum": 1}
      }
    },
    "state": {
      "type": "object",
      "required": ["tick", "entities", "relationships", "economy"],
      "properties": {
        "tick": {"type": "integer", "minimum": 0},
        "entities": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "kind", "wealth", "survival", "active"],
            "properties": {
              "id": {"type": "string", "pattern": "^[a-z][a-z0-9_-]*$"},
              "wealth": {"type": "number", "minimum": 0},
              "survival": {"type": "number", "minimum": 0, "maximum": 1}
            }
          }
        },
        "relationships": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["source_id", "target_id", "kind", "value_flow", "tension"],
            "properties": {
              "value_flow": {"type": "number", "minimum": 0},
              "tension": {"type": "number", "minimum": 0, "maximum": 1}
            }
          }
        },
        "economy": {"type": "object"}
      }
    },
    "config": {"type": "object"}
  }
}`

var compiledSchema = func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("checkpoint.schema.json", strings.NewReader(envelopeSchema)); err != nil {
		panic(fmt.Sprintf("checkpoint schema resource: %v", err))
	}
	return c.MustCompile("checkpoint.schema.json")
}()

// validateEnvelope checks a decompressed envelope document against the
// checkpoint schema.
func validateEnvelope(doc []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("parse envelope: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("envelope schema: %w", err)
	}
	return nil
}
