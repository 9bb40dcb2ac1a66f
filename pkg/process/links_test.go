package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const linksPage = `<html><body>
	<a href="/docs/intro">Intro</a>
	<a href="/docs/intro#part">Intro again</a>
	<a href="https://example.com/docs/api?x=1">API</a>
	<a href="/blog">Blog</a>
	<a href="https://other.com/docs/intro">Elsewhere</a>
	<a href="mailto:team@example.com">Mail</a>
	<a href="#top">Top</a>
	<a href="">Empty</a>
	<a href="/docs">Self</a>
</body></html>`

func TestDiscoverLinks_PagePrefix(t *testing.T) {
	links := DiscoverLinks(mustDoc(t, linksPage), mustURL(t, "https://example.com/docs"), ScopePagePrefix, testLogger())

	assert.Equal(t, []string{
		"https://example.com/docs/intro",
		"https://example.com/docs/api?x=1",
	}, links)
}

func TestDiscoverLinks_SameOrigin(t *testing.T) {
	links := DiscoverLinks(mustDoc(t, linksPage), mustURL(t, "https://example.com/docs"), ScopeSameOrigin, testLogger())

	assert.Equal(t, []string{
		"https://example.com/docs/intro",
		"https://example.com/docs/api?x=1",
		"https://example.com/blog",
	}, links)
}
