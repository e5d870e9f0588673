package domain

import (
	"bytes"
	"encoding/json"
)

// DecodeList decodes the object elements of a JSON array into records.
// Elements that are not objects, or that the record type rejects, are
// skipped. The number of skipped elements is returned alongside.
func DecodeList[T any](data []byte) ([]T, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, err
	}

	out := make([]T, 0, len(raw))
	skipped := 0
	for _, elem := range raw {
		if !isObject(elem) {
			skipped++
			continue
		}
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
