// internal/validation/input.go
package validation

import (
	"regexp"
	"strings"
)

const (
	minPromptLength  = 3
	maxPromptLength  = 1000
	longPromptLength = 500
)

type dangerousPattern struct {
	re      *regexp.Regexp
	message string
}

// The denylist is inherited as-is. It will false-positive on benign prompts
// that mention words like "import" or "function(" in natural language.
var dangerousPatterns = []dangerousPattern{
	{regexp.MustCompile(`(?i)<script`), "Prompt must not contain script markup"},
	{regexp.MustCompile(`(?i)javascript:`), "Prompt must not contain javascript: URLs"},
	{regexp.MustCompile(`(?i)\bon\w+\s*=`), "Prompt must not contain inline event handlers"},
	{regexp.MustCompile(`(?i)\beval\s*\(`), "Prompt must not contain eval calls"},
	{regexp.MustCompile(`(?i)\bfunction\s*\(`), "Prompt must not contain function definitions"},
	{regexp.MustCompile(`(?i)\b(import|require)\s*[\s(]`), "Prompt must not contain import or require statements"},
}

var spamKeywordPattern = regexp.MustCompile(`(?i)\b(viagra|casino|lottery|jackpot|free money)\b`)

// hasRepeatedRun reports whether s contains a run of 11 or more identical
// characters, the equivalent of the backreference pattern `(.)\1{10,}`,
// which Go's RE2 regexp engine cannot compile. Like `.`, it does not
// count newlines.
func hasRepeatedRun(s string) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev && r != '\n' {
			count++
			if count >= 11 {
				return true
			}
		} else {
			prev = r
			count = 1
		}
	}
	return false
}

// CheckPrompt validates a candidate prompt string. Pure function: all
// dangerous patterns are checked independently and every match contributes
// its own error.
func CheckPrompt(prompt string) Result {
	result := newResult()

	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		result.addError("Prompt is required")
		return result
	}

	if len(trimmed) < minPromptLength {
		result.addError("Prompt must be at least 3 characters long")
	}
	if len(trimmed) > maxPromptLength {
		result.addError("Prompt must be at most 1000 characters long")
	}

	for _, p := range dangerousPatterns {
		if p.re.MatchString(trimmed) {
			result.addError(p.message)
		}
	}

	if len(trimmed) > longPromptLength {
		result.addWarning("Long prompts may take longer to process")
	}
	if hasRepeatedRun(trimmed) {
		result.addWarning("Prompt contains long runs of a repeated character")
	}
	if spamKeywordPattern.MatchString(trimmed) {
		result.addWarning("Prompt contains terms commonly associated with spam")
	}

	return result
}

// CheckContent applies the dangerous-pattern denylist to arbitrary content,
// used by the publish path before anything is forwarded upstream.
func CheckContent(content string) Result {
	result := newResult()

	if strings.TrimSpace(content) == "" {
		result.addError("Content is required")
		return result
	}

	for _, p := range dangerousPatterns {
		if p.re.MatchString(content) {
			result.addError(strings.Replace(p.message, "Prompt", "Content", 1))
		}
	}

	return result
}
