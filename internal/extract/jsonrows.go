package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// envelopeSchema names the JSON export shapes we accept: a bare array
// of row objects, or an object wrapping one under "rows" or
// "transactions".
var envelopeSchema = mustCompileSchema(map[string]any{
	"oneOf": []any{
		map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "object"},
		},
		map[string]any{
			"type":     "object",
			"required": []any{"rows"},
			"properties": map[string]any{
				"rows": map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
			},
		},
		map[string]any{
			"type":     "object",
			"required": []any{"transactions"},
			"properties": map[string]any{
				"transactions": map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
			},
		},
	},
})

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("envelope.json", bytes.NewReader(b)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("envelope.json")
}

// gridFromJSON converts a JSON export into a raw grid. The header row
// is the union of object keys in first-seen order. Returns an empty
// grid when the content is not a recognized envelope.
func gridFromJSON(text string) [][]string {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil
	}
	if err := envelopeSchema.Validate(doc); err != nil {
		return nil
	}

	var raws []json.RawMessage
	switch {
	case json.Unmarshal([]byte(text), &raws) == nil:
	default:
		var envelope struct {
			Rows         []json.RawMessage `json:"rows"`
			Transactions []json.RawMessage `json:"transactions"`
		}
		if err := json.Unmarshal([]byte(text), &envelope); err != nil {
			return nil
		}
		raws = envelope.Rows
		if len(raws) == 0 {
			raws = envelope.Transactions
		}
	}
	if len(raws) == 0 {
		return nil
	}

	var headers []string
	seen := make(map[string]int)
	objects := make([]map[string]string, 0, len(raws))
	for _, raw := range raws {
		obj, keys, err := decodeOrderedObject(raw)
		if err != nil {
			continue
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = len(headers)
				headers = append(headers, k)
			}
		}
		objects = append(objects, obj)
	}
	if len(objects) == 0 {
		return nil
	}

	grid := make([][]string, 0, len(objects)+1)
	grid = append(grid, headers)
	for _, obj := range objects {
		row := make([]string, len(headers))
		for k, v := range obj {
			row[seen[k]] = v
		}
		grid = append(grid, row)
	}
	return grid
}

// decodeOrderedObject decodes one JSON object, keeping key order.
func decodeOrderedObject(raw json.RawMessage) (map[string]string, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("not an object")
	}

	obj := make(map[string]string)
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		obj[key] = stringifyJSONValue(value)
	}
	return obj, keys, nil
}

func stringifyJSONValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
