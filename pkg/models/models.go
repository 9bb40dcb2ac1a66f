package models

import "strconv"

// CrashedBucket is the byError key for pages whose fetch failed outright
const CrashedBucket = "crashed"

// AgentRules holds the allow/disallow patterns declared for one user agent
type AgentRules struct {
	Allow    []string `json:"allow"`
	Disallow []string `json:"disallow"`
	Blocked  bool     `json:"blocked,omitempty"` // Disallow: / was declared
}

// Empty reports whether no allow or disallow rule was declared.
func (a *AgentRules) Empty() bool {
	return len(a.Allow) == 0 && len(a.Disallow) == 0
}

// RobotsRules is the parsed content of a robots.txt file
type RobotsRules struct {
	Sitemaps   []string               `json:"sitemap"`
	UserAgents map[string]*AgentRules `json:"user-agent"`
	agentOrder []string
}

// NewRobotsRules returns an empty ruleset
func NewRobotsRules() *RobotsRules {
	return &RobotsRules{
		Sitemaps:   []string{},
		UserAgents: make(map[string]*AgentRules),
	}
}

// Agent returns the rules for name, creating an empty entry on first use.
func (r *RobotsRules) Agent(name string) *AgentRules {
	if rules, ok := r.UserAgents[name]; ok {
		return rules
	}
	rules := &AgentRules{Allow: []string{}, Disallow: []string{}}
	r.UserAgents[name] = rules
	r.agentOrder = append(r.agentOrder, name)
	return rules
}

// AgentNames returns user agents in declaration order.
func (r *RobotsRules) AgentNames() []string {
	return append([]string(nil), r.agentOrder...)
}

// Alternate is one hreflang alternate link
type Alternate struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// SitemapEntry is one <url> element of a sitemap
type SitemapEntry struct {
	Loc        string               `json:"loc"`
	LastMod    string               `json:"lastmod,omitempty"`
	ChangeFreq string               `json:"changefreq,omitempty"`
	Priority   string               `json:"priority,omitempty"`
	Alternates map[string]Alternate `json:"alternates,omitempty"` // keyed by href
}

// SitemapStats summarizes one sitemap file
type SitemapStats struct {
	Total                int `json:"total"`
	TotalUnique          int `json:"totalUnique"`
	WithTrailingSlash    int `json:"withTrailingSlash"`
	WithoutTrailingSlash int `json:"withoutTrailingSlash"`
}

// SitemapCollection gathers entries from every sitemap of a site.
// It only grows; entries keep first-insertion order.
type SitemapCollection struct {
	URLs  map[string]*SitemapEntry `json:"urls"`
	Total int                      `json:"total"` // locations seen across files, duplicates included
	Files map[string]*SitemapStats `json:"files"`
	order []string
}

// NewSitemapCollection returns an empty collection
func NewSitemapCollection() *SitemapCollection {
	return &SitemapCollection{
		URLs:  make(map[string]*SitemapEntry),
		Files: make(map[string]*SitemapStats),
	}
}

// Merge stores entry under its location. Returns true if an entry with the
// same location was replaced.
func (c *SitemapCollection) Merge(entry *SitemapEntry) bool {
	_, exists := c.URLs[entry.Loc]
	if !exists {
		c.order = append(c.order, entry.Loc)
	}
	c.URLs[entry.Loc] = entry
	return exists
}

// Lookup returns the entry for loc, if any.
func (c *SitemapCollection) Lookup(loc string) (*SitemapEntry, bool) {
	e, ok := c.URLs[loc]
	return e, ok
}

// Locations returns all locations in insertion order.
func (c *SitemapCollection) Locations() []string {
	return append([]string(nil), c.order...)
}

// MetaValue is one recognized meta tag found on a page
type MetaValue struct {
	Name    MetaTag `json:"name"`
	Content string  `json:"content"`
}

// CrawledPage holds the signals extracted from one fetched page
type CrawledPage struct {
	URL        string      `json:"url"`
	Status     int         `json:"status"`
	Title      string      `json:"title,omitempty"`
	Meta       []MetaValue `json:"meta"`
	Canonical  string      `json:"canonical,omitempty"`
	Alternates []Alternate `json:"alternates,omitempty"`
}

// MetaContent returns the content of the first meta tag with the given name.
func (p *CrawledPage) MetaContent(name MetaTag) (string, bool) {
	for _, m := range p.Meta {
		if m.Name == name {
			return m.Content, true
		}
	}
	return "", false
}

// ErrorBucket lists the URLs that ended with the same status
type ErrorBucket struct {
	URLs  []string `json:"urls"`
	Total int      `json:"total"`
}

// PageData is the crawl section of the report
type PageData struct {
	Pages             map[string]*CrawledPage `json:"pages"`
	Total             int                     `json:"total"`
	TotalWithoutError int                     `json:"totalWithoutError"`
	TotalWithError    int                     `json:"totalWithError"`
	ByError           map[string]*ErrorBucket `json:"byError"`
	IsMultiLang       bool                    `json:"isMultiLang"`
}

// NewPageData returns empty crawl data
func NewPageData() *PageData {
	return &PageData{
		Pages:   make(map[string]*CrawledPage),
		ByError: make(map[string]*ErrorBucket),
	}
}

// RecordPage stores page and updates the status counters.
func (d *PageData) RecordPage(page *CrawledPage) {
	d.Pages[page.URL] = page
	if page.Status == 200 {
		d.TotalWithoutError++
		return
	}
	d.TotalWithError++
	d.addToBucket(strconv.Itoa(page.Status), page.URL)
}

// RecordCrash notes a URL whose fetch produced no response. It counts
// toward TotalWithError like any non-200 page.
func (d *PageData) RecordCrash(url string) {
	d.TotalWithError++
	d.addToBucket(CrashedBucket, url)
}

func (d *PageData) addToBucket(key, url string) {
	bucket, ok := d.ByError[key]
	if !ok {
		bucket = &ErrorBucket{URLs: []string{}}
		d.ByError[key] = bucket
	}
	bucket.URLs = append(bucket.URLs, url)
	bucket.Total++
}
