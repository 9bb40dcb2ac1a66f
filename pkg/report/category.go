package report

// Category is a kind of finding. The set is closed; each value has a fixed
// title that appears in the report's overall list.
type Category int

const (
	// robots.txt
	CatNoRobots Category = iota
	CatRobotsEmpty
	CatRobotsFetchFailed
	CatAgentBlocked
	CatAgentNoRules
	CatNoSitemapInRobots

	// sitemaps
	CatSitemapFailed
	CatSitemapEmpty
	CatSitemapLimit
	CatSitemapDuplicates
	CatSitemapWrongOrigin
	CatSitemapTrailingSlash
	CatSitemapBlockedByRobots

	// pages
	CatFetchFailed
	CatTitleMissing
	CatTitleDuplicate
	CatDescriptionDuplicate
	CatMetaMissing
	CatCanonicalMissing
	CatAlternatesMissing
	CatAlternatesDuplicate
	CatCanonicalNotInSitemap
	CatAlternateNotInSitemap
	CatAlternateHreflangMismatch
	CatAlternateMissingOnPage
	CatNotInSitemap

	numCategories
)

var categoryTitles = [numCategories]string{
	CatNoRobots:                  "No robots.txt",
	CatRobotsEmpty:               "robots.txt is empty",
	CatRobotsFetchFailed:         "robots.txt could not be processed",
	CatAgentBlocked:              "Some user-agents are not allowed to crawl by robots.txt",
	CatAgentNoRules:              "Some user-agents have no rules in robots.txt",
	CatNoSitemapInRobots:         "No sitemap in robots.txt",
	CatSitemapFailed:             "Some sitemaps could not be processed",
	CatSitemapEmpty:              "Some sitemaps have no URLs",
	CatSitemapLimit:              "Some sitemaps reached the limit of 50000 URLs",
	CatSitemapDuplicates:         "There are duplications in sitemaps",
	CatSitemapWrongOrigin:        "Some sitemap URLs have an incorrect origin",
	CatSitemapTrailingSlash:      "Trailing slash inconsistencies in sitemaps",
	CatSitemapBlockedByRobots:    "Some sitemap URLs are blocked by robots.txt",
	CatFetchFailed:               "Some pages could not be fetched",
	CatTitleMissing:              "Title is missing",
	CatTitleDuplicate:            "Some pages have identical titles",
	CatDescriptionDuplicate:      "Some pages have identical descriptions",
	CatMetaMissing:               "Some meta tags are missing",
	CatCanonicalMissing:          "Canonicals are not set for some pages",
	CatAlternatesMissing:         "Alternates are not set for some pages",
	CatAlternatesDuplicate:       "Some alternates are duplicated in head links",
	CatCanonicalNotInSitemap:     "Some loc and canonical don't match",
	CatAlternateNotInSitemap:     "Some alternate hrefs from pages are not in sitemap",
	CatAlternateHreflangMismatch: "Some alternate hreflangs from sitemap don't match alternate hreflangs from pages",
	CatAlternateMissingOnPage:    "Some alternates from sitemap are missing in head links",
	CatNotInSitemap:              "Some URLs are not listed in sitemap",
}

// Title returns the human-readable title of c.
func (c Category) Title() string {
	if c < 0 || c >= numCategories {
		return "Unknown"
	}
	return categoryTitles[c]
}

func (c Category) String() string { return c.Title() }
