package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobotsRules_Agent(t *testing.T) {
	rules := NewRobotsRules()
	rules.Agent("*").Disallow = append(rules.Agent("*").Disallow, "/private")
	rules.Agent("Googlebot")
	rules.Agent("*")

	assert.Equal(t, []string{"*", "Googlebot"}, rules.AgentNames())
	assert.Equal(t, []string{"/private"}, rules.UserAgents["*"].Disallow)
	assert.True(t, rules.UserAgents["Googlebot"].Empty())
}

func TestRobotsRules_JSONKeys(t *testing.T) {
	rules := NewRobotsRules()
	rules.Sitemaps = append(rules.Sitemaps, "https://example.com/sitemap.xml")
	rules.Agent("*")

	data, err := json.Marshal(rules)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"sitemap":["https://example.com/sitemap.xml"],"user-agent":{"*":{"allow":[],"disallow":[]}}}`,
		string(data))
}

func TestSitemapCollection_Merge(t *testing.T) {
	c := NewSitemapCollection()

	assert.False(t, c.Merge(&SitemapEntry{Loc: "https://example.com/a", Priority: "0.5"}))
	assert.False(t, c.Merge(&SitemapEntry{Loc: "https://example.com/b"}))
	assert.True(t, c.Merge(&SitemapEntry{Loc: "https://example.com/a", Priority: "0.9"}))

	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, c.Locations())
	e, ok := c.Lookup("https://example.com/a")
	require.True(t, ok)
	assert.Equal(t, "0.9", e.Priority)
}

func TestPageData_Record(t *testing.T) {
	d := NewPageData()
	d.RecordPage(&CrawledPage{URL: "https://example.com/", Status: 200})
	d.RecordPage(&CrawledPage{URL: "https://example.com/gone", Status: 404})
	d.RecordPage(&CrawledPage{URL: "https://example.com/missing", Status: 404})
	d.RecordCrash("https://example.com/boom")

	assert.Equal(t, 1, d.TotalWithoutError)
	assert.Equal(t, 3, d.TotalWithError)
	assert.Equal(t, 4, d.TotalWithoutError+d.TotalWithError)
	assert.Len(t, d.Pages, 3)
	require.Contains(t, d.ByError, "404")
	assert.Equal(t, 2, d.ByError["404"].Total)
	assert.Equal(t, []string{"https://example.com/boom"}, d.ByError[CrashedBucket].URLs)
}

func TestCrawledPage_MetaContent(t *testing.T) {
	p := &CrawledPage{Meta: []MetaValue{{Name: MetaDescription, Content: "first"}, {Name: MetaDescription, Content: "second"}}}
	got, ok := p.MetaContent(MetaDescription)
	assert.True(t, ok)
	assert.Equal(t, "first", got)

	_, ok = p.MetaContent(MetaKeywords)
	assert.False(t, ok)
}

func TestParseMetaTag(t *testing.T) {
	assert.Len(t, AllMetaTags, 16)

	tag, ok := ParseMetaTag("og:title")
	assert.True(t, ok)
	assert.Equal(t, MetaOGTitle, tag)

	_, ok = ParseMetaTag("viewport")
	assert.False(t, ok)
	_, ok = ParseMetaTag("Description")
	assert.False(t, ok)
}
