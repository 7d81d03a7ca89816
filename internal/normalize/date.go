package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var threePlusRegex = regexp.MustCompile(`(?:^|\D)3\s*\+`)

// ParsePostedDate resolves a relative phrase ("today", "4 days ago",
// "3+ weeks ago") against now. The result depends on when it runs; the site
// only ever shows relative ages, so two runs can disagree for the same text.
func ParsePostedDate(text string, now time.Time) *time.Time {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return nil
	}

	switch {
	case strings.Contains(s, "today"):
		return calendarDate(now)
	case strings.Contains(s, "yesterday"):
		return calendarDate(now.AddDate(0, 0, -1))
	case strings.Contains(s, "day"):
		n, ok := firstInt(s)
		if !ok {
			return nil
		}
		return calendarDate(now.AddDate(0, 0, -n))
	case strings.Contains(s, "week"):
		n, ok := firstInt(s)
		if threePlusRegex.MatchString(s) {
			n, ok = 3, true
		}
		if !ok {
			return nil
		}
		return calendarDate(now.AddDate(0, 0, -7*n))
	default:
		return nil
	}
}

func firstInt(s string) (int, bool) {
	m := integerRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// calendarDate keeps the wall-clock date of t and pins it to UTC midnight so
// stored and re-read values compare equal.
func calendarDate(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
