package sitemap

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"

	"github.com/Sriram-PR/seo-audit/pkg/fetch"
	"github.com/Sriram-PR/seo-audit/pkg/models"
	"github.com/Sriram-PR/seo-audit/pkg/parse"
	"github.com/Sriram-PR/seo-audit/pkg/report"
	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

// MaxURLsPerSitemap is the protocol limit of locations in one sitemap file
const MaxURLsPerSitemap = 50000

// Aggregator fetches sitemaps and merges their entries into one collection.
//
// Sitemap indexes are followed exactly one level: the children of an index
// are read as URL sets, and an index found among them is reported, not
// followed.
type Aggregator struct {
	fetcher   fetch.HTTPFetcher
	agg       *report.Aggregator
	robots    *robotstxt.RobotsData
	userAgent string
	log       *logrus.Entry
}

// NewAggregator creates a sitemap Aggregator
func NewAggregator(fetcher fetch.HTTPFetcher, agg *report.Aggregator, log *logrus.Entry) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		agg:     agg,
		log:     log.WithField("component", "sitemap"),
	}
}

// WithRobots enables checking listed URLs against robots.txt for userAgent.
func (a *Aggregator) WithRobots(data *robotstxt.RobotsData, userAgent string) *Aggregator {
	a.robots = data
	a.userAgent = userAgent
	return a
}

// Aggregate processes every sitemap URL in order. Failures are recorded as
// findings and never stop the remaining sitemaps.
func (a *Aggregator) Aggregate(ctx context.Context, sitemapURLs []string, origin string) *models.SitemapCollection {
	collection := models.NewSitemapCollection()

	for _, sitemapURL := range sitemapURLs {
		if ctx.Err() != nil {
			a.log.Warn("Context cancelled, skipping remaining sitemaps")
			break
		}
		doc, ok := a.load(ctx, sitemapURL)
		if !ok {
			continue
		}

		switch {
		case len(doc.URLs) > 0:
			a.processFile(collection, sitemapURL, doc.URLs, origin)
		case len(doc.Sitemaps) > 0:
			a.log.WithFields(logrus.Fields{"url": sitemapURL, "children": len(doc.Sitemaps)}).Info("Reading sitemap index")
			for _, child := range doc.Sitemaps {
				if child.Loc == "" {
					continue
				}
				childDoc, ok := a.load(ctx, child.Loc)
				if !ok {
					continue
				}
				if childDoc.IsIndex() {
					a.agg.Add(report.CatSitemapFailed, "Nested sitemap index %s in %s is not followed", child.Loc, sitemapURL)
					continue
				}
				if len(childDoc.URLs) == 0 {
					a.agg.Add(report.CatSitemapEmpty, "Sitemap %s has no URLs", child.Loc)
					continue
				}
				a.processFile(collection, child.Loc, childDoc.URLs, origin)
			}
		default:
			a.agg.Add(report.CatSitemapEmpty, "Sitemap %s has no URLs", sitemapURL)
		}
	}

	a.log.WithFields(logrus.Fields{
		"files":  len(collection.Files),
		"total":  collection.Total,
		"unique": len(collection.URLs),
	}).Info("Sitemaps aggregated")
	return collection
}

// load fetches and decodes one sitemap document, recording any failure.
func (a *Aggregator) load(ctx context.Context, sitemapURL string) (*parse.XMLSitemapDocument, bool) {
	smLog := a.log.WithField("url", sitemapURL)

	resp, err := a.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		smLog.WithField("error_type", utils.CategorizeError(err)).Warnf("Fetching sitemap failed: %v", err)
		a.agg.Add(report.CatSitemapFailed, "Error during processing sitemap %s: %v", sitemapURL, err)
		return nil, false
	}
	if !resp.OK() {
		smLog.WithField("status_code", resp.StatusCode).Warn("Sitemap not available")
		a.agg.Add(report.CatSitemapFailed, "Sitemap %s returned status %d", sitemapURL, resp.StatusCode)
		return nil, false
	}
	doc, err := parse.ParseSitemap(resp.Body)
	if err != nil {
		smLog.Warnf("Parsing sitemap failed: %v", err)
		a.agg.Add(report.CatSitemapFailed, "Error during processing sitemap %s: %v", sitemapURL, err)
		return nil, false
	}
	return doc, true
}

// processFile validates one URL set and merges it into collection.
func (a *Aggregator) processFile(collection *models.SitemapCollection, file string, urls []parse.XMLURL, origin string) {
	fileLog := a.log.WithField("sitemap", file)

	var locs []string
	counts := make(map[string]int)
	var unique []string
	entries := make(map[string]*models.SitemapEntry)

	for _, u := range urls {
		if u.Loc == "" {
			fileLog.Debug("Skipping <url> without <loc>")
			continue
		}
		locs = append(locs, u.Loc)
		if counts[u.Loc] == 0 {
			unique = append(unique, u.Loc)
		}
		counts[u.Loc]++
		entries[u.Loc] = toEntry(u)
	}

	stats := &models.SitemapStats{Total: len(locs), TotalUnique: len(unique)}

	if len(locs) >= MaxURLsPerSitemap {
		a.agg.Add(report.CatSitemapLimit, "Sitemap %s reached the limit %d with %d URLs", file, MaxURLsPerSitemap, len(locs))
	}

	if len(unique) != len(locs) {
		for _, loc := range unique {
			for i := 1; i < counts[loc]; i++ {
				a.agg.Add(report.CatSitemapDuplicates, "Duplicate url: %s in sitemap: %s", loc, file)
			}
		}
	}

	for _, loc := range unique {
		if !strings.HasPrefix(loc, origin) {
			a.agg.Add(report.CatSitemapWrongOrigin, "Incorrect origin %s in sitemap %s", loc, file)
		}
		if strings.HasSuffix(loc, "/") {
			stats.WithTrailingSlash++
		} else {
			stats.WithoutTrailingSlash++
		}
	}
	if stats.WithTrailingSlash > 0 && stats.WithoutTrailingSlash > 0 {
		a.agg.Add(report.CatSitemapTrailingSlash,
			"Trailing slash inconsistencies in sitemap %s: withTrailingSlash = %d, withoutTrailingSlash = %d",
			file, stats.WithTrailingSlash, stats.WithoutTrailingSlash)
	}

	if a.robots != nil {
		for _, loc := range unique {
			if blocked, path := a.blockedByRobots(loc, origin); blocked {
				a.agg.Add(report.CatSitemapBlockedByRobots, "URL %s in sitemap %s is disallowed by robots.txt (%s) for %s", loc, file, path, a.userAgent)
			}
		}
	}

	for _, loc := range unique {
		if collection.Merge(entries[loc]) {
			fileLog.WithField("loc", loc).Debug("Location already listed by another sitemap, keeping the latest entry")
		}
	}
	collection.Total += len(locs)
	collection.Files[file] = stats

	fileLog.WithFields(logrus.Fields{"total": stats.Total, "unique": stats.TotalUnique}).Info("Processed sitemap")
}

// blockedByRobots tests a same-origin location against robots.txt.
func (a *Aggregator) blockedByRobots(loc, origin string) (bool, string) {
	u, err := url.Parse(loc)
	if err != nil || !strings.HasPrefix(loc, origin) {
		return false, ""
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path = fmt.Sprintf("%s?%s", path, u.RawQuery)
	}
	return !a.robots.TestAgent(path, a.userAgent), path
}

func toEntry(u parse.XMLURL) *models.SitemapEntry {
	entry := &models.SitemapEntry{
		Loc:        u.Loc,
		LastMod:    u.LastMod,
		ChangeFreq: u.ChangeFreq,
		Priority:   u.Priority,
	}
	for _, l := range u.Links {
		if l.Rel != "alternate" || l.Href == "" {
			continue
		}
		if entry.Alternates == nil {
			entry.Alternates = make(map[string]models.Alternate)
		}
		entry.Alternates[l.Href] = models.Alternate{Hreflang: l.Hreflang, Href: l.Href}
	}
	return entry
}
