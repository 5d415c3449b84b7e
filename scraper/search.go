package scraper

import (
	"encoding/json"
	"fmt"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nekosama-cli/nekosama/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// catalogEntry is one record of the site's public JSON search index.
type catalogEntry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Image string `json:"url_image"`
}

// Search fuzzy-matches the query against the site's catalog index and returns
// the matching shows ranked by edit distance, closest first. Result count is
// bounded by the search.limit setting when it is positive.
func (c *Client) Search(query string) ([]*Anime, error) {
	raw, err := c.session.GetOK(c.searchIndex, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch search index: %w", err)
	}

	var index []catalogEntry
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("decode search index: %w", err)
	}

	matches := lo.Filter(index, func(e catalogEntry, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, e.Title)
	})

	q := strings.ToLower(query)
	slices.SortStableFunc(matches, func(a, b catalogEntry) int {
		return levenshtein.Distance(q, strings.ToLower(a.Title)) -
			levenshtein.Distance(q, strings.ToLower(b.Title))
	})

	if limit := viper.GetInt(key.SearchLimit); limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return lo.Map(matches, func(e catalogEntry, _ int) *Anime {
		return c.Anime(e.URL)
	}), nil
}
