package api

import (
	"bytes"
	"encoding/json"
)

// Codec is a Connect codec for plain Go structs. It replaces the default
// protobuf JSON codec under the "json" name, so clients send
// application/json and no generated message types are needed.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal rejects unknown fields so that typos in field names surface as
// invalid_argument instead of being silently dropped.
func (Codec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
