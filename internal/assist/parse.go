package assist

import (
	"encoding/json"
	"strings"
)

// extractJSON pulls the first JSON object out of a free-text model
// response. Models wrap answers in prose or markdown fences often enough
// that strict unmarshalling of the whole reply is a losing strategy.
func extractJSON(raw string) ([]byte, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	candidate := []byte(raw[start : end+1])
	if !json.Valid(candidate) {
		return nil, false
	}
	return candidate, true
}

func decodeInto(raw string, out any) bool {
	data, ok := extractJSON(raw)
	if !ok {
		return false
	}
	return json.Unmarshal(data, out) == nil
}
