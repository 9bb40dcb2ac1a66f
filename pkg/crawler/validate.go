package crawler

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/seo-audit/pkg/models"
	"github.com/Sriram-PR/seo-audit/pkg/report"
)

// Validator cross-checks crawled pages against each other and against the
// sitemap collection.
type Validator struct {
	sitemaps     *models.SitemapCollection
	agg          *report.Aggregator
	titles       map[string]bool
	descriptions map[string]bool
	log          *logrus.Entry
}

// NewValidator creates a Validator
func NewValidator(sitemaps *models.SitemapCollection, agg *report.Aggregator, log *logrus.Entry) *Validator {
	if sitemaps == nil {
		sitemaps = models.NewSitemapCollection()
	}
	return &Validator{
		sitemaps:     sitemaps,
		agg:          agg,
		titles:       make(map[string]bool),
		descriptions: make(map[string]bool),
		log:          log,
	}
}

// Check records findings for page and reports whether it declares hreflang
// alternates. A page without alternates gets a deferred finding that only
// counts if the site turns out to be multilingual.
func (v *Validator) Check(page *models.CrawledPage) bool {
	v.checkTitle(page)
	v.checkMeta(page)

	if page.Canonical == "" {
		v.agg.Add(report.CatCanonicalMissing, "Canonical link is missing for this page %s", page.URL)
	}

	multilingual := len(page.Alternates) > 0
	if multilingual {
		v.checkDuplicateAlternates(page)
	} else {
		v.agg.Defer(report.CatAlternatesMissing, "Alternates links are missing for this page %s", page.URL)
	}

	if page.Canonical != "" {
		v.reconcile(page)
	}
	return multilingual
}

func (v *Validator) checkTitle(page *models.CrawledPage) {
	if page.Title == "" {
		v.agg.Add(report.CatTitleMissing, "Title is missing for this page %s", page.URL)
		return
	}
	if v.titles[page.Title] {
		v.agg.Add(report.CatTitleDuplicate, "Title %q is duplicated for this page %s", page.Title, page.URL)
	}
	v.titles[page.Title] = true
}

func (v *Validator) checkMeta(page *models.CrawledPage) {
	present := make(map[models.MetaTag]bool, len(page.Meta))
	for _, m := range page.Meta {
		present[m.Name] = true
		if m.Name != models.MetaDescription {
			continue
		}
		if v.descriptions[m.Content] {
			v.agg.Add(report.CatDescriptionDuplicate, "Description %q is duplicated for this page %s", m.Content, page.URL)
		}
		v.descriptions[m.Content] = true
	}

	if len(present) == len(models.AllMetaTags) {
		return
	}
	for _, tag := range models.AllMetaTags {
		if !present[tag] {
			v.agg.Add(report.CatMetaMissing, "Meta tag %s is missing for this page %s", tag, page.URL)
		}
	}
}

func (v *Validator) checkDuplicateAlternates(page *models.CrawledPage) {
	counts := make(map[string]int, len(page.Alternates))
	for _, alt := range page.Alternates {
		counts[alt.Href]++
	}
	for _, alt := range page.Alternates {
		if counts[alt.Href] > 1 {
			v.agg.Add(report.CatAlternatesDuplicate, "Alternate %s is duplicated for this page %s", alt.Href, page.URL)
			counts[alt.Href] = 0
		}
	}
}

// reconcile matches the page's canonical to a sitemap location and compares
// their alternates in both directions.
func (v *Validator) reconcile(page *models.CrawledPage) {
	entry, ok := v.sitemaps.Lookup(page.Canonical)
	if !ok {
		v.agg.Add(report.CatCanonicalNotInSitemap,
			"No matching loc corresponding canonical %s is found for this page %s", page.Canonical, page.URL)
		return
	}
	if len(entry.Alternates) == 0 {
		return
	}

	onPage := make(map[string]bool, len(page.Alternates))
	for _, alt := range page.Alternates {
		onPage[alt.Href] = true
		sitemapAlt, listed := entry.Alternates[alt.Href]
		if !listed {
			v.agg.Add(report.CatAlternateNotInSitemap,
				"Alternate href %s has no match in sitemap for canonical %s for this page %s", alt.Href, page.Canonical, page.URL)
			continue
		}
		if sitemapAlt.Hreflang != alt.Hreflang {
			v.agg.Add(report.CatAlternateHreflangMismatch,
				"Alternate hreflang %s of %s doesn't match sitemap hreflang %s for loc %s for this page %s",
				alt.Hreflang, alt.Href, sitemapAlt.Hreflang, page.Canonical, page.URL)
		}
	}

	hrefs := make([]string, 0, len(entry.Alternates))
	for href := range entry.Alternates {
		if !onPage[href] {
			hrefs = append(hrefs, href)
		}
	}
	sort.Strings(hrefs)
	for _, href := range hrefs {
		v.agg.Add(report.CatAlternateMissingOnPage,
			"Sitemap alternate %s (%s) for loc %s is missing in head links of this page %s",
			href, entry.Alternates[href].Hreflang, page.Canonical, page.URL)
	}
}
