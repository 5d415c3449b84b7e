// Package constant defines immutable application-level identifiers and site defaults.
package constant

const (
	// Nekosama is the canonical application identifier used for filesystem paths and CLI branding.
	Nekosama = "nekosama"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for network requests to the site and providers.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

const (
	// BaseURL is the root of the scraped catalog site. Relative links found on pages are resolved against it.
	BaseURL = "https://neko-sama.fr"

	// SearchIndexURL points at the site's public JSON catalog index used for title search.
	SearchIndexURL = BaseURL + "/animes-search-vostfr.json"
)

// SegmentHeaders are sent with playlist and transport segment requests.
// Some providers refuse segment requests that lack an Accept/Referer pair.
var SegmentHeaders = map[string]string{
	"Accept":  "*/*",
	"Referer": BaseURL + "/",
}
