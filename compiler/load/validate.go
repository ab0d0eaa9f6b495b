package load

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/schemaforge/schemaforge"
)

//go:embed schema.json
var documentSchema []byte

// validateDocument checks the raw document against the embedded JSON
// Schema before decoding, so misspelled keys and wrong value types are
// rejected with field paths instead of surfacing later as zero values.
// YAML documents are normalized to JSON for validation.
func validateDocument(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return schemaforge.NewSchemaValidationError("", "", "cannot parse document", err)
	}
	normalized, err := json.Marshal(normalizeKeys(raw))
	if err != nil {
		return schemaforge.NewSchemaValidationError("", "", "cannot normalize document", err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(documentSchema),
		gojsonschema.NewBytesLoader(normalized),
	)
	if err != nil {
		return schemaforge.NewSchemaValidationError("", "", "document validation failed", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return schemaforge.NewSchemaValidationError("", "", strings.Join(msgs, "; "), nil)
}

// normalizeKeys converts the map[any]any values yaml.v3 may produce
// into the map[string]any shape encoding/json requires.
func normalizeKeys(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = normalizeKeys(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = normalizeKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalizeKeys(val)
		}
		return out
	default:
		return v
	}
}
