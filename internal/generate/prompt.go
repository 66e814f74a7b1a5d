// internal/generate/prompt.go
package generate

import (
	"fmt"
	"strings"

	"template-forge/internal/template"
)

// BuildPrompt combines the fixed system instruction with the user's
// validated text. Pure, no I/O; the user text is embedded verbatim.
func BuildPrompt(userText, category string) string {
	var sb strings.Builder

	sb.WriteString("You are a page template designer. ")
	sb.WriteString("Reply with a single JSON object and nothing else. The object must have this shape:\n\n")
	sb.WriteString(`{
  "title": "string, a short name for the template",
  "sections": [{"name": "string", "description": "string"}],
  "properties": [{"name": "string", "type": "string", "description": "string"}],
  "notes": "optional string with usage hints"
}`)
	sb.WriteString("\n\nEvery property type must be one of: ")
	sb.WriteString(template.PropertyTypeList())
	sb.WriteString(".\nDo not wrap the JSON in markdown fences or add commentary.\n")

	if category != "" {
		sb.WriteString(fmt.Sprintf("\nThe template belongs to the %q category.\n", category))
	}

	sb.WriteString("\nDesign a page template for the following description:\n")
	sb.WriteString(userText)

	return sb.String()
}
