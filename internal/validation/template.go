// internal/validation/template.go
package validation

import (
	"fmt"
	"strings"

	"template-forge/internal/template"
)

const (
	maxTitleLength       = 200
	maxSectionDescLength = 500
	maxPropDescLength    = 300
	maxNotesLength       = 1000
	sectionCountWarning  = 20
	propertyCountWarning = 50
)

// CheckTemplate validates an arbitrary decoded JSON value against the
// template shape. Every structural problem is accumulated so one call
// reports all of them; sequence elements are addressed by 1-based position.
// The returned template is non-nil only when the result is valid.
func CheckTemplate(raw any) (*template.Template, Result) {
	result := newResult()

	obj, ok := raw.(map[string]any)
	if !ok {
		result.addError("Template must be a JSON object")
		return nil, result
	}

	out := &template.Template{
		Sections:   []template.Section{},
		Properties: []template.Property{},
	}

	checkTitle(obj, out, &result)
	checkSections(obj, out, &result)
	checkProperties(obj, out, &result)
	checkNotes(obj, out, &result)

	if !result.Valid {
		return nil, result
	}
	return out, result
}

func checkTitle(obj map[string]any, out *template.Template, result *Result) {
	title, ok := stringField(obj, "title")
	if !ok {
		result.addError("Title is required and must be a string")
		return
	}
	title = strings.TrimSpace(title)
	if title == "" {
		result.addError("Title is required and must be a string")
		return
	}
	if len(title) > maxTitleLength {
		result.addWarning("Title is longer than 200 characters")
	}
	out.Title = title
}

func checkSections(obj map[string]any, out *template.Template, result *Result) {
	rawList, ok := obj["sections"].([]any)
	if !ok {
		result.addError("Sections must be an array")
		return
	}

	if len(rawList) == 0 {
		result.addWarning("Template has no sections")
	}
	if len(rawList) > sectionCountWarning {
		result.addWarning("Template has more than 20 sections")
	}

	for i, rawItem := range rawList {
		pos := i + 1
		item, ok := rawItem.(map[string]any)
		if !ok {
			result.addError(fmt.Sprintf("Section %d: must be an object", pos))
			continue
		}

		var sec template.Section
		if name, ok := stringField(item, "name"); ok && strings.TrimSpace(name) != "" {
			sec.Name = strings.TrimSpace(name)
		} else {
			result.addError(fmt.Sprintf("Section %d: name is required", pos))
		}

		if desc, ok := stringField(item, "description"); ok && strings.TrimSpace(desc) != "" {
			sec.Description = strings.TrimSpace(desc)
			if len(sec.Description) > maxSectionDescLength {
				result.addWarning(fmt.Sprintf("Section %d: description is longer than 500 characters", pos))
			}
		} else {
			result.addError(fmt.Sprintf("Section %d: description is required", pos))
		}

		out.Sections = append(out.Sections, sec)
	}
}

func checkProperties(obj map[string]any, out *template.Template, result *Result) {
	rawList, ok := obj["properties"].([]any)
	if !ok {
		result.addError("Properties must be an array")
		return
	}

	if len(rawList) == 0 {
		result.addWarning("Template has no properties")
	}
	if len(rawList) > propertyCountWarning {
		result.addWarning("Template has more than 50 properties")
	}

	for i, rawItem := range rawList {
		pos := i + 1
		item, ok := rawItem.(map[string]any)
		if !ok {
			result.addError(fmt.Sprintf("Property %d: must be an object", pos))
			continue
		}

		var prop template.Property
		if name, ok := stringField(item, "name"); ok && strings.TrimSpace(name) != "" {
			prop.Name = strings.TrimSpace(name)
		} else {
			result.addError(fmt.Sprintf("Property %d: name is required", pos))
		}

		typ, ok := stringField(item, "type")
		switch {
		case !ok:
			result.addError(fmt.Sprintf("Property %d: type is required", pos))
		case !template.IsPropertyType(typ):
			result.addError(fmt.Sprintf("Property %d: type must be one of: %s", pos, template.PropertyTypeList()))
		default:
			prop.Type = typ
		}

		if desc, ok := stringField(item, "description"); ok && strings.TrimSpace(desc) != "" {
			prop.Description = strings.TrimSpace(desc)
			if len(prop.Description) > maxPropDescLength {
				result.addWarning(fmt.Sprintf("Property %d: description is longer than 300 characters", pos))
			}
		} else {
			result.addError(fmt.Sprintf("Property %d: description is required", pos))
		}

		out.Properties = append(out.Properties, prop)
	}
}

func checkNotes(obj map[string]any, out *template.Template, result *Result) {
	raw, present := obj["notes"]
	if !present || raw == nil {
		return
	}
	notes, ok := raw.(string)
	if !ok {
		result.addError("Notes must be a string")
		return
	}
	if len(notes) > maxNotesLength {
		result.addWarning("Notes are longer than 1000 characters")
	}
	out.Notes = notes
}

func stringField(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key].(string)
	return v, ok
}
