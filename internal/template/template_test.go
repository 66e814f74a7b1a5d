// internal/template/template_test.go
package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func plannerTemplate() *Template {
	return &Template{
		Title: "Daily Planner",
		Sections: []Section{
			{Name: "Today", Description: "Tasks for today"},
			{Name: "This Week", Description: "Upcoming work"},
		},
		Properties: []Property{
			{Name: "Status", Type: "status", Description: "Task status"},
			{Name: "Due | Date", Type: "date", Description: "When it is due"},
		},
		Notes: "Review every morning.",
	}
}

// ==========================
// Rendering Tests
// ==========================

func TestMarkdown_Layout(t *testing.T) {
	md := Markdown(plannerTemplate())

	assert.Contains(t, md, "# Daily Planner\n")
	assert.Contains(t, md, "## Properties\n")
	assert.Contains(t, md, "| Name | Type | Description |")
	assert.Contains(t, md, "| Status | `status` | Task status |")
	assert.Contains(t, md, "## Today\n\nTasks for today")
	assert.Contains(t, md, "## This Week\n\nUpcoming work")
	assert.Contains(t, md, "> Review every morning.")
}

func TestMarkdown_EscapesPipesInTableCells(t *testing.T) {
	md := Markdown(plannerTemplate())

	assert.Contains(t, md, "Due \\| Date")
	assert.NotContains(t, md, "| Due | Date |")
}

func TestMarkdown_OmitsEmptyParts(t *testing.T) {
	md := Markdown(&Template{Title: "Bare"})

	assert.Contains(t, md, "# Bare\n")
	assert.NotContains(t, md, "## Properties")
	assert.NotContains(t, md, ">")
}

func TestHTML_RendersHeadings(t *testing.T) {
	html, err := HTML(plannerTemplate())
	require.NoError(t, err)

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Daily Planner")
	assert.Contains(t, html, "<h2")
	assert.Contains(t, html, "<blockquote>")
}

// ==========================
// Model Tests
// ==========================

func TestIsPropertyType(t *testing.T) {
	for _, pt := range PropertyTypes {
		assert.True(t, IsPropertyType(pt), pt)
	}
	assert.False(t, IsPropertyType("banner"))
	assert.False(t, IsPropertyType("Status"))
	assert.False(t, IsPropertyType(""))
}

func TestFallback(t *testing.T) {
	fb := Fallback()

	assert.Equal(t, FallbackTitle, fb.Title)
	assert.Empty(t, fb.Sections)
	assert.Empty(t, fb.Properties)
	assert.NotEmpty(t, fb.Notes)
}
