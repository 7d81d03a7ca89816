package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	integerRegex     = regexp.MustCompile(`\d+`)
	fresherIndicator = regexp.MustCompile(`(?i)\b(fresher|freshers|entry[\s-]?level|no experience)\b`)
)

// ParseExperience returns the years of experience asked for. Zero means the
// listing explicitly takes freshers; nil means the text could not be read.
func ParseExperience(text string) *float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	if fresherIndicator.MatchString(s) {
		return float64Ptr(0)
	}

	matches := integerRegex.FindAllString(s, -1)
	switch len(matches) {
	case 1:
		v, err := strconv.Atoi(matches[0])
		if err != nil {
			return nil
		}
		return float64Ptr(float64(v))
	case 2:
		lo, err := strconv.Atoi(matches[0])
		if err != nil {
			return nil
		}
		hi, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil
		}
		return float64Ptr((float64(lo) + float64(hi)) / 2)
	default:
		// zero numbers, or too many to tell which pair is the range
		return nil
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
