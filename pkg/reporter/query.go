package reporter

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// compileQuery parses and compiles a jq filter.
func compileQuery(query string) (*gojq.Code, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	return code, nil
}

// plain converts data to the maps, slices and scalars gojq operates on,
// going through its JSON encoding so custom marshalers apply.
func plain(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// runQuery returns every value the filter emits for data.
func runQuery(code *gojq.Code, data any) ([]any, error) {
	input, err := plain(data)
	if err != nil {
		return nil, err
	}

	var results []any
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return results, nil
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
}
