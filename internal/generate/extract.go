// internal/generate/extract.go
package generate

import (
	"encoding/json"
	"regexp"
	"strings"

	"template-forge/internal/template"
)

// Model output is untrusted; script markup is stripped before any parsing.
var scriptMarkupPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>|<script[^>]*>`)

// Extract recovers a single JSON object from the raw model reply, which may
// wrap it in prose or markdown fencing. The candidate span runs from the
// first '{' to the last '}' (greedy outer-brace match). When no span exists
// or it does not parse, the deterministic fallback object is returned and
// ok is false. The result always flows through the template validator.
func Extract(raw string) (obj any, ok bool) {
	cleaned := scriptMarkupPattern.ReplaceAllString(raw, "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return fallbackObject(), false
	}

	var v any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &v); err != nil {
		return fallbackObject(), false
	}
	return v, true
}

// fallbackObject mirrors template.Fallback as a decoded JSON value so it
// takes the same validation path as a real model reply.
func fallbackObject() map[string]any {
	f := template.Fallback()
	return map[string]any{
		"title":      f.Title,
		"sections":   []any{},
		"properties": []any{},
		"notes":      f.Notes,
	}
}
