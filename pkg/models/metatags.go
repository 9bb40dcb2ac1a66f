package models

// MetaTag is one of the meta names the audit recognizes
type MetaTag string

const (
	MetaDescription        MetaTag = "description"
	MetaKeywords           MetaTag = "keywords"
	MetaRobots             MetaTag = "robots"
	MetaOGType             MetaTag = "og:type"
	MetaOGURL              MetaTag = "og:url"
	MetaOGTitle            MetaTag = "og:title"
	MetaOGDescription      MetaTag = "og:description"
	MetaOGSiteName         MetaTag = "og:site_name"
	MetaOGImage            MetaTag = "og:image"
	MetaTwitterSite        MetaTag = "twitter:site"
	MetaTwitterCreator     MetaTag = "twitter:creator"
	MetaTwitterTitle       MetaTag = "twitter:title"
	MetaTwitterDescription MetaTag = "twitter:description"
	MetaTwitterCard        MetaTag = "twitter:card"
	MetaTwitterEmbed       MetaTag = "twitter:widgets:new-embed-design"
	MetaTwitterImageSrc    MetaTag = "twitter:image:src"
)

// AllMetaTags lists every recognized tag in reporting order
var AllMetaTags = []MetaTag{
	MetaDescription,
	MetaKeywords,
	MetaRobots,
	MetaOGType,
	MetaOGURL,
	MetaOGTitle,
	MetaOGDescription,
	MetaOGSiteName,
	MetaOGImage,
	MetaTwitterSite,
	MetaTwitterCreator,
	MetaTwitterTitle,
	MetaTwitterDescription,
	MetaTwitterCard,
	MetaTwitterEmbed,
	MetaTwitterImageSrc,
}

var metaTagSet = func() map[MetaTag]struct{} {
	set := make(map[MetaTag]struct{}, len(AllMetaTags))
	for _, t := range AllMetaTags {
		set[t] = struct{}{}
	}
	return set
}()

// ParseMetaTag maps a meta name attribute to a recognized tag.
// Matching is exact, as the name appears in the document.
func ParseMetaTag(name string) (MetaTag, bool) {
	tag := MetaTag(name)
	_, ok := metaTagSet[tag]
	return tag, ok
}
