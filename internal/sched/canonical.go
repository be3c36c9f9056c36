package sched

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalCanonical serializes a DayRecord to deterministic JSON: fixed
// struct field order, no HTML escaping, two-space indent, trailing
// newline. This is the serialization used for store payloads and golden
// comparisons; equal records always produce byte-identical output.
func MarshalCanonical(d DayRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("marshal day record: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalDay decodes a stored DayRecord payload, rejecting unknown
// fields so a corrupted or foreign document fails loudly instead of
// loading with silently dropped state.
func UnmarshalDay(data []byte) (DayRecord, error) {
	var d DayRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return DayRecord{}, fmt.Errorf("unmarshal day record: %w", err)
	}
	return d, nil
}
