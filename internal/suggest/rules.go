package suggest

import (
	"regexp"
	"strings"
)

// Stage names as they appear in titles. Matching is case-insensitive.
const (
	StageReview          = "Review"
	StageFollowUpMeeting = "Follow-up Meeting"
	StageFinalization    = "Finalization"
	projectTitlePrefix   = "Project"
	stageKeyReview       = "review"
	stageKeyFollowUp     = "follow-up meeting"
	stageKeyFinalization = "finalization"
)

// projectTitle matches from the start of the title only. The lazy name group
// stops at the first stage keyword, so "Project A Review Finalization" is
// project "A" at stage Review.
var projectTitle = regexp.MustCompile(`(?i)^Project (.+?) (Review|Follow-up Meeting|Finalization)`)

// ParseProjectTitle extracts the project name and lower-cased stage from a
// title following the "Project <Name> <Stage>" convention.
func ParseProjectTitle(title string) (project, stage string, ok bool) {
	m := projectTitle.FindStringSubmatch(title)
	if m == nil {
		return "", "", false
	}
	project = strings.TrimSpace(m[1])
	if project == "" {
		return "", "", false
	}
	return project, strings.ToLower(m[2]), true
}

// FromTitles suggests the next stage for every project whose titles show a
// gap: Review without Follow-up Meeting, or Follow-up Meeting without
// Finalization. Project names are grouped case-sensitively. Suggestions are
// ordered by the first appearance of each project in titles.
//
// All grouping state is local to the call.
func FromTitles(titles []string) []string {
	stages := make(map[string]map[string]struct{})
	var order []string

	for _, title := range titles {
		project, stage, ok := ParseProjectTitle(title)
		if !ok {
			continue
		}
		seen, exists := stages[project]
		if !exists {
			seen = make(map[string]struct{}, 3)
			stages[project] = seen
			order = append(order, project)
		}
		seen[stage] = struct{}{}
	}

	suggestions := make([]string, 0, len(order))
	for _, project := range order {
		seen := stages[project]
		_, hasReview := seen[stageKeyReview]
		_, hasFollowUp := seen[stageKeyFollowUp]
		_, hasFinalization := seen[stageKeyFinalization]

		if hasReview && !hasFollowUp {
			suggestions = append(suggestions, projectStageTitle(project, StageFollowUpMeeting))
		}
		if hasFollowUp && !hasFinalization {
			suggestions = append(suggestions, projectStageTitle(project, StageFinalization))
		}
	}
	return suggestions
}

func projectStageTitle(project, stage string) string {
	return projectTitlePrefix + " " + project + " " + stage
}
