// File: internal/listing/codec.go
package listing

import (
	"encoding/json"
	"strings"
)

// Historically the characteristics and images columns have held three shapes:
// plain free text, comma-separated text, and JSON array text, depending on
// which revision of the backend wrote the row. The codec reads all three and
// writes only JSON going forward. Decoding is best-effort display data, never
// validated input, so it must not fail.

// EncodeStringList serializes a list of values as JSON array text. Empty or
// absent input encodes as nil so the column stays NULL.
func EncodeStringList(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		// A []string cannot fail to marshal; kept for the signature's honesty.
		return nil
	}
	encoded := string(data)
	return &encoded
}

// DecodeStringList parses stored column text back into a list. JSON array
// text is preferred; anything else is treated as comma-separated text with
// empty tokens dropped. NULL or blank input yields an empty list.
func DecodeStringList(raw *string) []string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return []string{}
	}
	if values, ok := decodeJSONArray(*raw); ok {
		return values
	}
	return splitCommaList(*raw)
}

// decodeJSONArray strictly parses JSON array text. The second return value
// reports whether the input was valid JSON.
func decodeJSONArray(raw string) ([]string, bool) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	if values == nil {
		values = []string{}
	}
	return values, true
}

func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
