package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// salaryScale maps a unit keyword pattern to its multiplier. Order matters:
// the first pattern that matches wins.
type salaryScale struct {
	pattern *regexp.Regexp
	factor  float64
}

var (
	salaryScales = []salaryScale{
		{regexp.MustCompile(`(?:^|[^a-z])(lakhs?|lacs?|lpa)\b`), 100_000},
		{regexp.MustCompile(`(?:^|[^a-z])(crores?|cr)\b`), 10_000_000},
		{regexp.MustCompile(`(?:^|[^a-z])(thousands?|k)\b`), 1_000},
	}
	salaryNumberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

	undisclosedMarkers = []string{"disclosed", "not specified", "negotiable"}
)

// ParseSalary turns free compensation text into (min, max, avg) in absolute
// units. All three are nil together when nothing numeric can be read or the
// text says the salary is undisclosed.
//
// The first two numbers are taken as min and max in source order. A range
// written high-to-low comes back inverted.
func ParseSalary(text string) (min, max, avg *int64) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return nil, nil, nil
	}
	for _, marker := range undisclosedMarkers {
		if strings.Contains(s, marker) {
			return nil, nil, nil
		}
	}

	s = strings.ReplaceAll(s, ",", "")

	factor := 1.0
	for _, scale := range salaryScales {
		if scale.pattern.MatchString(s) {
			factor = scale.factor
			break
		}
	}

	tokens := salaryNumberRegex.FindAllString(s, -1)
	var values []int64
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, nil, nil
		}
		scaled, ok := scaleSalary(v, factor)
		if !ok {
			return nil, nil, nil
		}
		values = append(values, scaled)
		if len(values) == 2 {
			break
		}
	}

	switch len(values) {
	case 0:
		return nil, nil, nil
	case 1:
		v := values[0]
		return int64Ptr(v), int64Ptr(v), int64Ptr(v)
	default:
		lo, hi := values[0], values[1]
		return int64Ptr(lo), int64Ptr(hi), int64Ptr(midpoint(lo, hi))
	}
}

// scaleSalary multiplies and truncates. The epsilon absorbs float error such
// as 2.3*100000 = 229999.99999999997. ok is false when the result does not
// fit in an int64.
func scaleSalary(v, factor float64) (int64, bool) {
	f := math.Floor(v*factor + 1e-6)
	if math.IsNaN(f) || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// midpoint is floor((lo+hi)/2) for non-negative values without overflowing
// the sum.
func midpoint(lo, hi int64) int64 {
	return lo/2 + hi/2 + (lo%2+hi%2)/2
}

func int64Ptr(v int64) *int64 {
	return &v
}
