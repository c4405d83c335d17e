package assist

import "testing"

func TestExtractJSONPlainObject(t *testing.T) {
	data, ok := extractJSON(`{"enhanced": "Led a team"}`)
	if !ok {
		t.Fatalf("expected a JSON object")
	}
	if string(data) != `{"enhanced": "Led a team"}` {
		t.Fatalf("got %s", data)
	}
}

func TestExtractJSONInsideProse(t *testing.T) {
	raw := "Sure! Here is the result:\n{\"summary\": \"A concise summary.\"}\nHope that helps."
	data, ok := extractJSON(raw)
	if !ok {
		t.Fatalf("expected a JSON object")
	}
	var out struct {
		Summary string `json:"summary"`
	}
	if !decodeInto(raw, &out) || out.Summary != "A concise summary." {
		t.Fatalf("decode failed: %s", data)
	}
}

func TestExtractJSONMarkdownFence(t *testing.T) {
	raw := "```json\n{\"score\": 72, \"strengths\": [], \"improvements\": []}\n```"
	var out struct {
		Score int `json:"score"`
	}
	if !decodeInto(raw, &out) || out.Score != 72 {
		t.Fatalf("decode failed for fenced reply")
	}
}

func TestExtractJSONRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "no json here", "{broken", "}{"} {
		if _, ok := extractJSON(raw); ok {
			t.Fatalf("extractJSON accepted %q", raw)
		}
	}
}
