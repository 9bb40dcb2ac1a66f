package parse

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

// XMLLink represents an <xhtml:link> child of a <url> element
type XMLLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// XMLURL represents a <url> element in a sitemap
type XMLURL struct {
	Loc        string    `xml:"loc"`
	LastMod    string    `xml:"lastmod,omitempty"`
	ChangeFreq string    `xml:"changefreq,omitempty"`
	Priority   string    `xml:"priority,omitempty"`
	Links      []XMLLink `xml:"link"` // any namespace; sitemaps use xhtml:link
}

// XMLSitemap represents a <sitemap> element in a sitemap index file
type XMLSitemap struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// XMLSitemapDocument is either a <urlset> or a <sitemapindex>; whichever
// child list is populated tells which.
type XMLSitemapDocument struct {
	XMLName  xml.Name
	URLs     []XMLURL     `xml:"url"`
	Sitemaps []XMLSitemap `xml:"sitemap"`
}

// IsIndex reports whether the document lists child sitemaps rather than pages.
func (d *XMLSitemapDocument) IsIndex() bool {
	return len(d.URLs) == 0 && len(d.Sitemaps) > 0
}

// ParseSitemap decodes a sitemap or sitemap index document.
// Text fields are trimmed of surrounding whitespace.
func ParseSitemap(data []byte) (*XMLSitemapDocument, error) {
	var doc XMLSitemapDocument
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding sitemap XML: %w", utils.ErrParsing, err)
	}
	for i := range doc.URLs {
		u := &doc.URLs[i]
		u.Loc = strings.TrimSpace(u.Loc)
		u.LastMod = strings.TrimSpace(u.LastMod)
		u.ChangeFreq = strings.TrimSpace(u.ChangeFreq)
		u.Priority = strings.TrimSpace(u.Priority)
		for j := range u.Links {
			l := &u.Links[j]
			l.Rel = strings.TrimSpace(l.Rel)
			l.Hreflang = strings.TrimSpace(l.Hreflang)
			l.Href = strings.TrimSpace(l.Href)
		}
	}
	for i := range doc.Sitemaps {
		doc.Sitemaps[i].Loc = strings.TrimSpace(doc.Sitemaps[i].Loc)
	}
	return &doc, nil
}
