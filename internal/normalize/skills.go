package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanSkills title-cases a comma list, drops blanks and repeats, and keeps
// first-seen order. "N/A" and blank input give "".
func CleanSkills(text string) string {
	s := strings.TrimSpace(text)
	if s == "" || strings.EqualFold(s, Unknown) {
		return ""
	}

	caser := cases.Title(language.Und)
	seen := make(map[string]bool)
	var skills []string
	for _, part := range strings.Split(s, ",") {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		skill := caser.String(part)
		if seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, skill)
	}
	return strings.Join(skills, ", ")
}

// SplitList explodes a comma-joined normalized column back into its items.
func SplitList(joined string) []string {
	var items []string
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
