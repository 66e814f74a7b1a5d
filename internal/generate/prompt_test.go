// internal/generate/prompt_test.go
package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"template-forge/internal/template"
)

func TestBuildPrompt_EmbedsUserTextVerbatim(t *testing.T) {
	prompt := BuildPrompt("daily planning board", "")
	assert.Contains(t, prompt, "daily planning board")
}

func TestBuildPrompt_DescribesShapeAndEnum(t *testing.T) {
	prompt := BuildPrompt("anything", "")
	assert.Contains(t, prompt, `"title"`)
	assert.Contains(t, prompt, `"sections"`)
	assert.Contains(t, prompt, `"properties"`)
	for _, kind := range template.PropertyTypes {
		assert.Contains(t, prompt, kind)
	}
}

func TestBuildPrompt_CategoryHint(t *testing.T) {
	assert.Contains(t, BuildPrompt("x y z", "project"), `"project" category`)
	assert.NotContains(t, BuildPrompt("x y z", ""), "category")
}
