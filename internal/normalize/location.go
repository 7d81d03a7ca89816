package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// Unknown is the display value for a missing location.
	Unknown = "N/A"
	// Remote is returned for any location mentioning remote work.
	Remote = "Remote"
)

var (
	jobsInRegex  = regexp.MustCompile(`(?i)jobs\s+in\s*`)
	countryRegex = regexp.MustCompile(`(?i)[\s,(]*\b(india)\b[\s,)]*$`)
)

// KnownCities is the curated lookup. Matching is a case-insensitive substring
// test, so "New Delhi" yields Delhi.
var KnownCities = []string{
	"Delhi", "Mumbai", "Pune", "Bengaluru", "Chennai", "Hyderabad", "Noida",
	"Jaipur", "Lucknow", "Ranchi", "Thiruvananthapuram", "Udaipur", "Roorkee",
	"Coimbatore", "Ahmedabad", "Indore", "Surat", "Kochi", "Gurugram",
	"Kolkata", "Chandigarh", "Nagpur",
}

// cityAliases maps older or alternate spellings onto a KnownCities entry.
var cityAliases = map[string]string{
	"bangalore":  "Bengaluru",
	"gurgaon":    "Gurugram",
	"bombay":     "Mumbai",
	"trivandrum": "Thiruvananthapuram",
	"cochin":     "Kochi",
	"calcutta":   "Kolkata",
}

// CleanLocation reduces a location string to a sorted city set, "Remote", or
// "N/A". When no known city is present the cleaned input is returned as is,
// so callers must not assume the result is a single validated city. A bare
// country qualifier cleans down to "".
func CleanLocation(text string) string {
	loc := strings.TrimSpace(text)
	if loc == "" {
		return Unknown
	}

	loc = jobsInRegex.ReplaceAllString(loc, "")
	loc = countryRegex.ReplaceAllString(loc, "")
	loc = strings.Trim(loc, ", ")

	folded := foldText(loc)
	if strings.Contains(folded, "remote") {
		return Remote
	}

	seen := make(map[string]bool)
	var found []string
	add := func(city string) {
		if !seen[city] {
			seen[city] = true
			found = append(found, city)
		}
	}
	for _, city := range KnownCities {
		if strings.Contains(folded, strings.ToLower(city)) {
			add(city)
		}
	}
	for alias, city := range cityAliases {
		if strings.Contains(folded, alias) {
			add(city)
		}
	}

	if len(found) == 0 {
		return loc
	}
	sort.Strings(found)
	return strings.Join(found, ", ")
}

// foldText lower-cases and strips diacritics so "Bengalūru" still matches.
func foldText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}
