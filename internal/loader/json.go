// Package loader turns producer input files into candidate event sequences
// for the batch runner. Candidates stay loosely typed; the validator owns
// all admission decisions.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidFormat indicates input that is neither a JSON array of events
// nor an {"events": [...]} envelope.
var ErrInvalidFormat = errors.New("invalid JSON format: expected 'events' key or array")

// LoadJSON reads candidates from r. Both a bare array and an envelope with
// an "events" key are accepted.
func LoadJSON(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode events JSON: %w", err)
	}

	switch v := data.(type) {
	case []any:
		return v, nil
	case map[string]any:
		events, ok := v["events"].([]any)
		if !ok {
			return nil, ErrInvalidFormat
		}
		return events, nil
	default:
		return nil, ErrInvalidFormat
	}
}

// LoadJSONFile reads candidates from a JSON file on disk.
func LoadJSONFile(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()
	return LoadJSON(f)
}
