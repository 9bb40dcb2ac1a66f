package parse

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

// ParseOrigin validates the audit target and returns it with every
// whitespace character and trailing slashes removed.
func ParseOrigin(raw string) (string, error) {
	origin := strings.TrimRight(strings.Join(strings.Fields(raw), ""), "/")
	u, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("%w: invalid origin URL '%s': %w", utils.ErrConfigValidation, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: origin '%s' must use http or https", utils.ErrConfigValidation, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: origin '%s' has no host", utils.ErrConfigValidation, raw)
	}
	return origin, nil
}

// StripFragment returns rawURL without its #fragment.
func StripFragment(rawURL string) string {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// Resolve resolves href against base. Only http and https results are returned.
func Resolve(base *url.URL, href string) (*url.URL, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, fmt.Errorf("%w: empty URL", utils.ErrParsing)
	}
	u, err := base.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving URL '%s': %w", utils.ErrParsing, href, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme '%s'", utils.ErrParsing, u.Scheme)
	}
	return u, nil
}

// SameOrigin reports whether a and b share scheme and host.
func SameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}
