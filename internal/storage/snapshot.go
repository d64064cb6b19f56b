package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serialises a whole mapping as indented UTF-8 JSON with the
// record IDs as top-level keys.
func EncodeSnapshot[T any](records map[string]T) ([]byte, error) {
	if records == nil {
		records = map[string]T{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSnapshot parses data produced by EncodeSnapshot. Malformed input
// yields an empty map and a *CorruptError naming store and location.
func DecodeSnapshot[T any](data []byte, store, location string) (map[string]T, error) {
	records := map[string]T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, &CorruptError{Store: store, Location: location, Err: fmt.Errorf("empty document")}
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return map[string]T{}, &CorruptError{Store: store, Location: location, Err: err}
	}
	if records == nil {
		// "null" decodes to a nil map.
		records = map[string]T{}
	}
	return records, nil
}
