package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed batch_request.schema.json
var batchRequestSchemaJSON string

// BatchRequest is a validated batch translation request body.
type BatchRequest struct {
	Words     []string `json:"words"`
	Direction string   `json:"direction,omitempty"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ValidateBatchRequest checks payload against the batch request schema and
// decodes it. The schema guarantees that words is a non-empty list of strings
// and that direction, when present, is one of the known wire forms.
func ValidateBatchRequest(payload json.RawMessage) (*BatchRequest, error) {
	value, err := decodeJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload JSON: %w", err)
	}

	compiled, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	if err := compiled.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var req BatchRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("decode batch request: %w", err)
	}
	return &req, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("batch_request.schema.json", strings.NewReader(batchRequestSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile("batch_request.schema.json")
	})
	return compiledSchema, compiledSchemaErr
}

func decodeJSON(payload json.RawMessage) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, fmt.Errorf("payload contains trailing data")
	}
	return value, nil
}
