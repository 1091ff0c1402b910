package suggest

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Limits applied to generated suggestions.
const (
	// MaxPromptTasks is how many recent completed tasks go into the prompt.
	MaxPromptTasks = 10

	// MaxGenerated is how many generated suggestions are returned.
	MaxGenerated = 5

	// minGeneratedLength is exclusive: candidates must be longer than this.
	minGeneratedLength = 5

	// listMarkers are trimmed from both ends of each generated line.
	listMarkers = "-1234567890. "
)

// BuildPrompt renders the completed task titles (newest first) into the
// prompt given to the text generator.
func BuildPrompt(titles []string) string {
	return "Existing tasks:\n" + strings.Join(titles, "\n") + "\n\nRelated new task:"
}

// FilterGenerated turns raw generator output into at most limit clean,
// title-cased task titles.
//
// The echoed prompt is removed, each line is stripped of list markers, and a
// line is kept only if it is longer than five characters, contains no colon
// and does not match an existing title case-insensitively. Results are
// de-duplicated in first-seen order.
func FilterGenerated(outputs []string, prompt string, existing []string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	known := make(map[string]struct{}, len(existing))
	for _, title := range existing {
		known[strings.ToLower(title)] = struct{}{}
	}

	caser := cases.Title(language.English)
	seen := make(map[string]struct{})
	result := make([]string, 0, limit)

	for _, output := range outputs {
		if prompt != "" && strings.Contains(output, prompt) {
			output = strings.TrimSpace(strings.ReplaceAll(output, prompt, ""))
		}

		for _, line := range strings.Split(output, "\n") {
			candidate := strings.TrimSpace(strings.Trim(line, listMarkers))
			if !acceptable(candidate, known) {
				continue
			}

			titled := caser.String(candidate)
			if _, dup := seen[titled]; dup {
				continue
			}
			seen[titled] = struct{}{}
			result = append(result, titled)

			if len(result) == limit {
				return result
			}
		}
	}
	return result
}

func acceptable(candidate string, known map[string]struct{}) bool {
	if candidate == "" || utf8.RuneCountInString(candidate) <= minGeneratedLength {
		return false
	}
	if strings.Contains(candidate, ":") {
		return false
	}
	_, exists := known[strings.ToLower(candidate)]
	return !exists
}
