package process

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sriram-PR/seo-audit/pkg/models"
	"github.com/Sriram-PR/seo-audit/pkg/parse"
)

// ExtractSignals reads the SEO-relevant head signals of a parsed page.
//
// The first <title> and the first rel=canonical link win. Only meta tags
// whose name is a recognized models.MetaTag are kept, in document order.
// Alternates are rel=alternate links that carry an hreflang attribute; feed
// links and other alternates without a language are not counted.
// Canonical and alternate hrefs are resolved against pageURL.
func ExtractSignals(doc *goquery.Document, pageURL *url.URL, status int) *models.CrawledPage {
	page := &models.CrawledPage{
		URL:    pageURL.String(),
		Status: status,
		Meta:   []models.MetaValue{},
	}

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		tag, ok := models.ParseMetaTag(strings.TrimSpace(name))
		if !ok {
			return
		}
		content, _ := s.Attr("content")
		page.Meta = append(page.Meta, models.MetaValue{Name: tag, Content: content})
	})

	canonicalFound := false
	doc.Find("link[rel]").Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		href, hasHref := s.Attr("href")
		if !hasHref {
			return
		}
		switch {
		case hasRel(rel, "canonical"):
			if canonicalFound || strings.TrimSpace(href) == "" {
				return
			}
			canonicalFound = true
			page.Canonical = absolute(pageURL, href)
		case hasRel(rel, "alternate"):
			hreflang, ok := s.Attr("hreflang")
			if !ok {
				return
			}
			page.Alternates = append(page.Alternates, models.Alternate{
				Hreflang: strings.TrimSpace(hreflang),
				Href:     absolute(pageURL, href),
			})
		}
	})

	return page
}

// hasRel reports whether the space-separated rel attribute contains token.
func hasRel(rel, token string) bool {
	for _, r := range strings.Fields(rel) {
		if strings.EqualFold(r, token) {
			return true
		}
	}
	return false
}

// absolute resolves href against base, keeping the raw value when it cannot be resolved.
func absolute(base *url.URL, href string) string {
	u, err := parse.Resolve(base, href)
	if err != nil {
		return strings.TrimSpace(href)
	}
	return u.String()
}
