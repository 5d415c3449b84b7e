package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nekosama-cli/nekosama/constant"
	"github.com/nekosama-cli/nekosama/util"
	"github.com/samber/lo"
)

// completeURL resolves a possibly site-relative link against the base URL.
func completeURL(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return constant.BaseURL + u
}

// rawName is the last path segment of a catalog URL, e.g.
// "4973-one-piece_vostfr" for ".../info/4973-one-piece_vostfr".
func rawName(u string) string {
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		u = u[i+1:]
	}
	return u
}

// nameRe splits a raw catalog name into its id prefix, slug and language suffix.
var nameRe = regexp.MustCompile(`^(?:\d+-)?(?P<slug>.+?)(?:_(?:vostfr|vf))?$`)

// formatName normalizes a raw catalog name into a display name:
// "4973-one-piece_vostfr" becomes "One Piece".
func formatName(raw string) string {
	slug := util.ReGroups(nameRe, raw)["slug"]
	if slug == "" {
		slug = raw
	}

	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	return strings.Join(lo.Map(words, func(w string, _ int) string {
		return util.Capitalize(w)
	}), " ")
}

// episodeIndexRe matches the zero-padded episode token before the language suffix.
var episodeIndexRe = regexp.MustCompile(`-(\d+)(_[^_/]*)$`)

// episodeURL deterministically rewrites an anime info URL into the URL of the
// episode at the given index, with no existence check against the server:
// ".../info/4973-one-piece_vostfr" becomes ".../episode/4973-one-piece-07_vostfr" for index 7.
func episodeURL(animeURL string, index int) string {
	u := strings.Replace(animeURL, "/info/", "/episode/", 1)

	token := fmt.Sprintf("-%02d", index)
	if i := strings.LastIndex(u, "_"); i >= 0 {
		return u[:i] + token + u[i:]
	}
	return u + token
}

// animeURLFromEpisode inverts episodeURL, recovering the parent info URL.
func animeURLFromEpisode(epURL string) string {
	u := strings.Replace(epURL, "/episode/", "/info/", 1)
	return episodeIndexRe.ReplaceAllString(u, "$2")
}
