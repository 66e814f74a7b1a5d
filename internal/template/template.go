// internal/template/template.go
package template

import "strings"

// Template is the structured artifact produced from a user prompt. It is
// constructed once per successful generation and never mutated afterwards.
type Template struct {
	Title      string     `json:"title"`
	Sections   []Section  `json:"sections"`
	Properties []Property `json:"properties"`
	Notes      string     `json:"notes,omitempty"`
}

type Section struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Property struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// PropertyTypes is the fixed set of recognized property kinds. A template
// carrying any other type value is rejected as a whole.
var PropertyTypes = []string{
	"title", "text", "number", "select", "multi_select", "status",
	"date", "person", "files", "checkbox", "url", "email", "phone",
	"formula", "relation", "rollup", "created_time", "last_edited_time",
}

var propertyTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(PropertyTypes))
	for _, t := range PropertyTypes {
		m[t] = true
	}
	return m
}()

// IsPropertyType reports whether t is a recognized property kind.
func IsPropertyType(t string) bool {
	return propertyTypeSet[t]
}

// PropertyTypeList returns the allowed kinds as a single comma-separated
// string for error messages.
func PropertyTypeList() string {
	return strings.Join(PropertyTypes, ", ")
}

const FallbackTitle = "Template Generation Error"

// Fallback returns the deterministic placeholder used when the model reply
// cannot be parsed. It is minimally valid: empty sections and properties
// trigger warnings only.
func Fallback() *Template {
	return &Template{
		Title:      FallbackTitle,
		Sections:   []Section{},
		Properties: []Property{},
		Notes:      "The model reply could not be parsed into a template. Please try again with a different description.",
	}
}
