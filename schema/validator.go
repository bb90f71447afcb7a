package payloadschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed detect_request.schema.json
var detectRequestSchemaJSON string

// DetectRequest is the body of POST /api/v1/detect.
type DetectRequest struct {
	Text string `json:"text"`
}

// FieldError reports which request field failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ValidateDetectRequest decodes and validates a detect request body.
// Validation failures are returned as *FieldError.
func ValidateDetectRequest(payload []byte) (*DetectRequest, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return nil, &FieldError{Field: "body", Message: err.Error()}
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return nil, schemaFieldError(err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize payload JSON: %w", err)
	}

	var req DetectRequest
	if err := json.Unmarshal(normalized, &req); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &req, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("detect_request.schema.json", strings.NewReader(detectRequestSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("detect_request.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}

func schemaFieldError(err error) *FieldError {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return &FieldError{Field: "body", Message: err.Error()}
	}

	leaf := validationErr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	message := leaf.Message
	switch {
	case strings.Contains(message, "missing properties") && strings.Contains(message, "text"):
		field, message = "text", "is required"
	case field == "text" && strings.Contains(message, "length"):
		message = "must not be empty"
	case field == "text":
		message = "must be a string"
	case field == "" && strings.Contains(message, "additionalProperties"):
		field = "body"
	case field == "":
		field = "body"
	}
	return &FieldError{Field: field, Message: message}
}
