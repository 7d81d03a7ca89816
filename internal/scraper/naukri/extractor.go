package naukri

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-jobmarket-scraper/internal/models"
)

// FieldExtractor reads one field from a listing page. It returns "" when the
// page does not carry the field.
type FieldExtractor interface {
	Extract(doc *goquery.Document) string
}

// fieldBinding ties an extractor to the RawListing field it fills.
type fieldBinding struct {
	name      string
	extractor FieldExtractor
	set       func(raw *models.RawListing, value string)
}

// Extractor reads a Naukri job detail page. Each field is tried on its own so
// a layout change in one block leaves the others intact.
type Extractor struct {
	fields []fieldBinding
}

func NewExtractor() *Extractor {
	return &Extractor{
		fields: []fieldBinding{
			{"title", titleField, func(r *models.RawListing, v string) { r.Title = v }},
			{"company", companyField, func(r *models.RawListing, v string) { r.Company = v }},
			{"experience", experienceField, func(r *models.RawListing, v string) { r.ExperienceText = v }},
			{"salary", salaryField, func(r *models.RawListing, v string) { r.SalaryText = v }},
			{"location", locationField{}, func(r *models.RawListing, v string) { r.LocationText = v }},
			{"description", descriptionField, func(r *models.RawListing, v string) { r.Description = v }},
			{"skills", skillsField, func(r *models.RawListing, v string) { r.SkillsText = v }},
			{"posted", postedField{}, func(r *models.RawListing, v string) { r.PostedText = v }},
		},
	}
}

// Extract parses html and fills every field it can. Only an unparseable
// document is an error.
func (e *Extractor) Extract(html, listingURL string) (models.RawListing, error) {
	raw := models.RawListing{URL: listingURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return raw, fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, f := range e.fields {
		f.set(&raw, extractSafely(f.name, f.extractor, doc))
	}
	return raw, nil
}

// extractSafely isolates a misbehaving extractor to its own field.
func extractSafely(name string, fe FieldExtractor, doc *goquery.Document) (value string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("    ⚠️ Could not extract %s: %v", name, r)
			value = ""
		}
	}()
	return fe.Extract(doc)
}

// ExtractLinks returns the absolute hrefs of all result cards on a search
// page, in page order.
func ExtractLinks(html, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	var links []string
	doc.Find(listingLinkSelector).Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return links, nil
}

// cleanText trims and collapses runs of whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
