package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "validate-test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"count": map[string]any{"type": "integer"},
			},
			"required": []string{"name", "count"},
		},
	}
}

func TestValidateResponse_NilSchemaAlwaysPasses(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_ValidPayload(t *testing.T) {
	raw := json.RawMessage(`{"name":"quiz","count":5}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{"name":"quiz"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
	if string(invalid.Content) != string(raw) {
		t.Fatalf("expected offending content preserved, got: %s", invalid.Content)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"name": `))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestCompileSchema_CachesByName(t *testing.T) {
	schema := testSchema()
	first, err := compileSchema(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := compileSchema(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected cached compiled schema on second compile")
	}
}
