package naukri

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// selectorRule is one CSS selector, optionally narrowed to elements whose
// lower-cased text contains one of the markers.
type selectorRule struct {
	css     string
	markers []string
}

func (r selectorRule) accepts(text string) bool {
	if len(r.markers) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, m := range r.markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// selectorField tries its rules in order. With all unset the first accepted
// element wins; with all set every accepted element of the first productive
// rule is joined with ", " (duplicates dropped).
type selectorField struct {
	rules []selectorRule
	all   bool
}

func (f selectorField) Extract(doc *goquery.Document) string {
	for _, rule := range f.rules {
		var values []string
		seen := make(map[string]bool)
		doc.Find(rule.css).EachWithBreak(func(i int, s *goquery.Selection) bool {
			text := cleanText(s.Text())
			if text == "" || !rule.accepts(text) || seen[text] {
				return true
			}
			seen[text] = true
			values = append(values, text)
			return f.all
		})
		if len(values) > 0 {
			return strings.Join(values, ", ")
		}
	}
	return ""
}

var (
	titleField = selectorField{rules: []selectorRule{
		{css: "h1.styles_jd-header-title__rZwM1"},
		{css: `h1[class*="jd-header-title"]`},
		{css: "h1"},
	}}

	companyField = selectorField{rules: []selectorRule{
		{css: "a[title$='Careers']"},
		{css: `div[class*="jd-header-comp-name"] a`},
	}}

	experienceField = selectorField{rules: []selectorRule{
		{css: `div[class*="jhc__exp"] span`},
		{css: "span", markers: []string{"year", "yrs", "fresher"}},
	}}

	salaryField = selectorField{rules: []selectorRule{
		{css: `div[class*="jhc__salary"] span`},
		{css: "span", markers: []string{"lacs", "lakh", "lpa", "crore", "disclosed"}},
	}}

	descriptionField = selectorField{rules: []selectorRule{
		{css: `section[class*="job-desc"] div[class*="dang-inner-html"]`},
		{css: `section[class*="job-desc"]`},
		{css: "p"},
	}}

	skillsField = selectorField{all: true, rules: []selectorRule{
		{css: "div.styles_heading__veHpg + div a span"},
		{css: `div[class*="key-skill"] a span`},
	}}
)

var (
	wfhMarkerSelectors = []string{"a.styles_jhc__wfhmode-link__aHmrK", `a[class*="wfhmode-link"]`}
	locBlockSelectors  = []string{"div.styles_jhc__loc___Du2H", `div[class*="jhc__loc"]`}
)

// locationField resolves the location block. An explicit remote marker or a
// remote entry in the location block wins over any city links.
type locationField struct{}

func (locationField) Extract(doc *goquery.Document) string {
	for _, css := range wfhMarkerSelectors {
		if mentionsRemote(doc.Find(css).First()) {
			return "Remote"
		}
	}
	for _, css := range locBlockSelectors {
		if mentionsRemote(doc.Find(css).First().Find("a").First()) {
			return "Remote"
		}
	}

	var cities []string
	seen := make(map[string]bool)
	doc.Find(`a[title*="Jobs in"]`).Each(func(i int, s *goquery.Selection) {
		text := cleanText(s.Text())
		if text != "" && !seen[text] {
			seen[text] = true
			cities = append(cities, text)
		}
	})
	return strings.Join(cities, ", ")
}

func mentionsRemote(s *goquery.Selection) bool {
	return s.Length() > 0 && strings.Contains(strings.ToLower(s.Text()), "remote")
}

var postedLabelRegex = regexp.MustCompile(`(?i)posted`)

// postedField reads the relative age next to the "Posted:" label.
type postedField struct{}

func (postedField) Extract(doc *goquery.Document) string {
	label := doc.Find("label").FilterFunction(func(i int, s *goquery.Selection) bool {
		return postedLabelRegex.MatchString(s.Text())
	}).First()
	if label.Length() == 0 {
		return ""
	}

	if text := cleanText(label.NextAllFiltered("span").First().Text()); text != "" {
		return text
	}
	return cleanText(label.Parent().Find("span").First().Text())
}
