// internal/template/markdown.go
package template

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// Markdown renders the template as a Markdown document: title as H1,
// sections as H2 blocks, properties as a table.
func Markdown(t *Template) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", t.Title))

	if len(t.Properties) > 0 {
		sb.WriteString("## Properties\n\n")
		sb.WriteString("| Name | Type | Description |\n")
		sb.WriteString("| --- | --- | --- |\n")
		for _, p := range t.Properties {
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n",
				escapeCell(p.Name), p.Type, escapeCell(p.Description)))
		}
		sb.WriteString("\n")
	}

	for _, s := range t.Sections {
		sb.WriteString(fmt.Sprintf("## %s\n\n%s\n\n", s.Name, s.Description))
	}

	if t.Notes != "" {
		sb.WriteString(fmt.Sprintf("> %s\n", t.Notes))
	}

	return sb.String()
}

// HTML converts the Markdown rendering to HTML for the preview endpoint.
func HTML(t *Template) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(t)), &buf); err != nil {
		return "", fmt.Errorf("render template html: %w", err)
	}
	return buf.String(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
