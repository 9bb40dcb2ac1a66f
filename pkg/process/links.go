package process

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/seo-audit/pkg/parse"
)

// LinkScope decides which anchors of a page are candidates for discovery
type LinkScope int

const (
	// ScopePagePrefix keeps links that start with the linking page's URL.
	ScopePagePrefix LinkScope = iota
	// ScopeSameOrigin keeps any link on the page's scheme and host.
	ScopeSameOrigin
)

// DiscoverLinks returns the in-scope anchor targets of doc, resolved
// against pageURL, without fragments, deduplicated in document order.
func DiscoverLinks(doc *goquery.Document, pageURL *url.URL, scope LinkScope, log *logrus.Entry) []string {
	pagePrefix := pageURL.String()
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.TrimSpace(href) == "" || strings.HasPrefix(strings.TrimSpace(href), "#") {
			return
		}
		linkURL, err := parse.Resolve(pageURL, href)
		if err != nil {
			log.Tracef("Skipping link '%s': %v", href, err)
			return
		}
		link := parse.StripFragment(linkURL.String())

		switch scope {
		case ScopeSameOrigin:
			if !parse.SameOrigin(linkURL, pageURL) {
				return
			}
		default:
			if !strings.HasPrefix(link, pagePrefix) {
				return
			}
		}
		if link == parse.StripFragment(pagePrefix) || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links
}
