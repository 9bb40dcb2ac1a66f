package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

func TestParseSitemap_URLSet(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:xhtml="http://www.w3.org/1999/xhtml">
  <url>
    <loc> https://example.com/en </loc>
    <lastmod>2024-01-01</lastmod>
    <changefreq>daily</changefreq>
    <priority>0.8</priority>
    <xhtml:link rel="alternate" hreflang="en" href="https://example.com/en"/>
    <xhtml:link rel="alternate" hreflang="fr" href="https://example.com/fr"/>
  </url>
  <url><loc>https://example.com/fr</loc></url>
</urlset>`)

	doc, err := ParseSitemap(data)
	require.NoError(t, err)
	assert.False(t, doc.IsIndex())
	require.Len(t, doc.URLs, 2)

	first := doc.URLs[0]
	assert.Equal(t, "https://example.com/en", first.Loc)
	assert.Equal(t, "2024-01-01", first.LastMod)
	assert.Equal(t, "daily", first.ChangeFreq)
	assert.Equal(t, "0.8", first.Priority)
	require.Len(t, first.Links, 2)
	assert.Equal(t, XMLLink{Rel: "alternate", Hreflang: "fr", Href: "https://example.com/fr"}, first.Links[1])
	assert.Empty(t, doc.URLs[1].Links)
}

func TestParseSitemap_Index(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/a.xml</loc></sitemap>
  <sitemap><loc>https://example.com/b.xml</loc><lastmod>2024-02-02</lastmod></sitemap>
</sitemapindex>`)

	doc, err := ParseSitemap(data)
	require.NoError(t, err)
	assert.True(t, doc.IsIndex())
	require.Len(t, doc.Sitemaps, 2)
	assert.Equal(t, "https://example.com/b.xml", doc.Sitemaps[1].Loc)
	assert.Equal(t, "2024-02-02", doc.Sitemaps[1].LastMod)
}

func TestParseSitemap_Empty(t *testing.T) {
	doc, err := ParseSitemap([]byte(`<urlset></urlset>`))
	require.NoError(t, err)
	assert.False(t, doc.IsIndex())
	assert.Empty(t, doc.URLs)
}

func TestParseSitemap_Invalid(t *testing.T) {
	_, err := ParseSitemap([]byte("this is not xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrParsing)
	assert.Equal(t, "Content_ParsingXML", utils.CategorizeError(err))
}
