package browser

import (
	"encoding/json"
	"os"

	"github.com/playwright-community/playwright-go"
)

//Cookie struct represents a browser cookie from an exported JSON file
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// LoadCookies reads a cookie export (e.g. cookies-naukri.json) for the
// browser context. A logged-in session avoids the login wall on detail pages.
func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, err
	}

	pwCookies := make([]playwright.OptionalCookie, len(cookies))
	for i, c := range cookies {
		pwCookies[i] = c.ToPlaywright()
	}
	return pwCookies, nil
}

func (c Cookie) ToPlaywright() playwright.OptionalCookie {
	path := c.Path
	if path == "" {
		path = "/"
	}
	pwCookie := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(path),
	}

	if c.Expires > 0 {
		pwCookie.Expires = playwright.Float(c.Expires)
	}
	if c.HTTPOnly {
		pwCookie.HttpOnly = playwright.Bool(true)
	}
	if c.Secure {
		pwCookie.Secure = playwright.Bool(true)
	}

	switch c.SameSite {
	case "Lax", "lax":
		pwCookie.SameSite = playwright.SameSiteAttributeLax
	case "Strict", "strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None", "no_restriction":
		pwCookie.SameSite = playwright.SameSiteAttributeNone
	}

	return pwCookie
}
