// JSON encoding helpers for the open-bag columns (block and item
// properties, view config) and for the ordered properties_schema column.
package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/binder-notes/binder/pkg/types"
)

// marshalBag encodes an open key/value bag to its TEXT column form.
// A nil bag encodes as "{}".
func marshalBag(bag map[string]any) (string, error) {
	if bag == nil {
		return "{}", nil
	}
	data, err := json.Marshal(bag)
	if err != nil {
		return "", fmt.Errorf("marshaling bag: %w", err)
	}
	return string(data), nil
}

// unmarshalBag decodes a TEXT column into an open bag. Empty and "null"
// columns decode to an empty map, never nil.
func unmarshalBag(raw string) (map[string]any, error) {
	bag := make(map[string]any)
	if raw == "" || raw == "null" {
		return bag, nil
	}
	if err := json.Unmarshal([]byte(raw), &bag); err != nil {
		return nil, fmt.Errorf("parsing bag: %w", err)
	}
	if bag == nil {
		bag = make(map[string]any)
	}
	return bag, nil
}

// marshalSchema encodes an ordered property definition sequence.
// Insertion order is preserved: the JSON array drives display column
// order. A nil schema encodes as "[]".
func marshalSchema(schema []types.PropertyDef) (string, error) {
	if schema == nil {
		return "[]", nil
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return string(data), nil
}

// unmarshalSchema decodes a properties_schema column. Empty and "null"
// columns decode to an empty slice, never nil.
func unmarshalSchema(raw string) ([]types.PropertyDef, error) {
	if raw == "" || raw == "null" {
		return []types.PropertyDef{}, nil
	}
	var schema []types.PropertyDef
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if schema == nil {
		schema = []types.PropertyDef{}
	}
	return schema, nil
}
