package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// File-level schemas. They pin the container shape and field types but
// deliberately leave per-record field presence to the structural audit:
// a record missing its answer is an audit issue to isolate, not a reason
// to abort the whole file.

var questionProps = map[string]any{
	"id":          map[string]any{"type": "string"},
	"content":     map[string]any{"type": "string"},
	"options":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	"answer":      map[string]any{"type": "integer"},
	"grade":       map[string]any{"type": "integer"},
	"category":    map[string]any{"type": "string"},
	"difficulty":  map[string]any{"type": "string"},
	"explanation": map[string]any{"type": "string"},
	"source":      map[string]any{"type": "string"},
}

var flatSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":       "object",
				"properties": questionProps,
			},
		},
	},
	"required": []any{"questions"},
}

var gradeSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"grade": map[string]any{"type": "integer"},
		"units": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
					"questions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":       "object",
							"properties": questionProps,
						},
					},
				},
				"required": []any{"name", "questions"},
			},
		},
	},
	"required": []any{"grade", "units"},
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateSchema checks raw JSON against the named schema definition.
func validateSchema(name string, def map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(name, def)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
