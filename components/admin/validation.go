package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PayloadValidator validates raw create payloads against a JSON schema before
// they are decoded into typed inputs. Transports use it so malformed bodies
// fail with field-level messages instead of decode errors.
type PayloadValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewPayloadValidator builds a validator backed by jsonschema v5.
func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate checks a payload against the schema registered for the collection.
// Collections without a schema pass through.
func (v *PayloadValidator) Validate(collection string, payload map[string]any) error {
	raw, ok := payloadSchemas[collection]
	if !ok {
		return nil
	}
	schema, err := v.schemaFor(collection, raw)
	if err != nil {
		return err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("admin: payload for %s failed validation: %w (%w)", collection, err, ErrValidation)
	}
	return nil
}

func (v *PayloadValidator) schemaFor(collection, raw string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[collection]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	compiler := jsonschema.NewCompiler()
	name := collection + ".json"
	if err := compiler.AddResource(name, bytes.NewReader([]byte(raw))); err != nil {
		return nil, fmt.Errorf("admin: load schema %s: %w", collection, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("admin: compile schema %s: %w", collection, err)
	}
	v.mu.Lock()
	v.compiled[collection] = compiled
	v.mu.Unlock()
	return compiled, nil
}

var payloadSchemas = map[string]string{
	CollectionScenarios: scenarioPayloadSchema,
	CollectionResources: resourcePayloadSchema,
}

var scenarioPayloadSchema = mustSchemaJSON(map[string]any{
	"type":                 "object",
	"required":             []string{"title", "description", "category", "severity"},
	"additionalProperties": false,
	"properties": map[string]any{
		"title":       map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string", "minLength": 1},
		"category":    map[string]any{"type": "string", "enum": categoryEnum()},
		"severity":    map[string]any{"type": "string", "enum": severityEnum()},
	},
})

var resourcePayloadSchema = mustSchemaJSON(map[string]any{
	"type":                 "object",
	"required":             []string{"name", "description", "categories", "languages"},
	"additionalProperties": false,
	"properties": map[string]any{
		"name":         map[string]any{"type": "string", "minLength": 1},
		"description":  map[string]any{"type": "string", "minLength": 1},
		"url":          map[string]any{"type": "string"},
		"phone_number": map[string]any{"type": "string"},
		"is_emergency": map[string]any{"type": "boolean"},
		"categories": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string", "enum": categoryEnum()},
		},
		"languages": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string", "enum": languageEnum()},
		},
	},
})

func mustSchemaJSON(schema map[string]any) string {
	data, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func categoryEnum() []string {
	categories := Categories()
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

func severityEnum() []string {
	severities := Severities()
	out := make([]string, len(severities))
	for i, s := range severities {
		out[i] = string(s)
	}
	return out
}

func languageEnum() []string {
	languages := Languages()
	out := make([]string, len(languages))
	for i, l := range languages {
		out[i] = string(l)
	}
	return out
}
