package documents

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-pagebuilder/site"
)

const schemaResource = "pagebuilder-document.json"

var (
	envelopeOnce   sync.Once
	envelopeSchema *jsonschema.Schema
	envelopeErr    error
)

// Serialize encodes the full document in its wire shape.
func Serialize(s site.Site) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("documents: encode: %w", err)
	}
	return payload, nil
}

// Deserialize decodes a stored document. The envelope (pages, blocks and
// element ids and types) is checked against a JSON schema; element content
// is taken as-is. The result is normalized so a dangling current page points
// at the first page.
func Deserialize(data []byte) (site.Site, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return site.Site{}, &MalformedError{Issues: []Issue{{Location: "#", Message: "empty document"}}}
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return site.Site{}, &MalformedError{Cause: err}
	}

	schema, err := documentSchema()
	if err != nil {
		return site.Site{}, err
	}
	if err := schema.Validate(raw); err != nil {
		return site.Site{}, &MalformedError{Issues: schemaIssues(err), Cause: err}
	}

	var decoded site.Site
	if err := json.Unmarshal(data, &decoded); err != nil {
		return site.Site{}, &MalformedError{Cause: err}
	}
	if err := decoded.Validate(); err != nil {
		return site.Site{}, &MalformedError{Cause: err}
	}
	return decoded.Normalize(), nil
}

// ValidateDocument reports whether data would deserialize cleanly.
func ValidateDocument(data []byte) error {
	_, err := Deserialize(data)
	return err
}

func documentSchema() (*jsonschema.Schema, error) {
	envelopeOnce.Do(func() {
		encoded, err := json.Marshal(envelopeDefinition())
		if err != nil {
			envelopeErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaResource, bytes.NewReader(encoded)); err != nil {
			envelopeErr = err
			return
		}
		envelopeSchema, envelopeErr = compiler.Compile(schemaResource)
	})
	if envelopeErr != nil {
		return nil, fmt.Errorf("documents: compile envelope schema: %w", envelopeErr)
	}
	return envelopeSchema, nil
}

func envelopeDefinition() map[string]any {
	blockTypes := make([]any, 0, len(site.BlockTypes()))
	for _, t := range site.BlockTypes() {
		blockTypes = append(blockTypes, string(t))
	}
	elementTypes := make([]any, 0, len(site.ElementTypes()))
	for _, t := range site.ElementTypes() {
		elementTypes = append(elementTypes, string(t))
	}
	id := map[string]any{"type": "string", "minLength": 1}

	return map[string]any{
		"$schema":  "https://json-schema.org/draft/2020-12/schema",
		"type":     "object",
		"required": []any{"pages"},
		"properties": map[string]any{
			"currentPageId": map[string]any{"type": "string"},
			"pages": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"$ref": "#/$defs/page"},
			},
		},
		"$defs": map[string]any{
			"page": map[string]any{
				"type":     "object",
				"required": []any{"id"},
				"properties": map[string]any{
					"id":              id,
					"name":            map[string]any{"type": "string"},
					"backgroundColor": map[string]any{"type": "string"},
					"header":          map[string]any{"$ref": "#/$defs/chrome"},
					"footer":          map[string]any{"$ref": "#/$defs/chrome"},
					"blocks": map[string]any{
						"type":  []any{"array", "null"},
						"items": map[string]any{"$ref": "#/$defs/block"},
					},
				},
			},
			"chrome": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"template": map[string]any{"type": "string"},
				},
			},
			"block": map[string]any{
				"type":     "object",
				"required": []any{"id", "type"},
				"properties": map[string]any{
					"id":    id,
					"type":  map[string]any{"enum": blockTypes},
					"style": map[string]any{"type": []any{"object", "null"}},
					"elements": map[string]any{
						"type":  []any{"array", "null"},
						"items": map[string]any{"$ref": "#/$defs/element"},
					},
				},
			},
			"element": map[string]any{
				"type":     "object",
				"required": []any{"id", "type"},
				"properties": map[string]any{
					"id":      id,
					"type":    map[string]any{"enum": elementTypes},
					"content": map[string]any{"type": []any{"object", "null"}},
				},
			},
		},
	}
}

func schemaIssues(err error) []Issue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) || validationErr == nil {
		return []Issue{{Location: "#", Message: err.Error()}}
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: "#" + strings.TrimPrefix(strings.TrimSpace(node.InstanceLocation), "#"),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}
