package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/nekosama-cli/nekosama/download"
	"github.com/nekosama-cli/nekosama/log"
)

// Episode represents one episode of a show. It keeps a non-owning
// back-reference to its Anime, fixed at construction, and its own page
// snapshot slot, independent of the show's.
type Episode struct {
	URL     string
	RawName string
	Name    string

	// Anime is the owning show; never nil, never reassigned.
	Anime *Anime

	pageCache *Page

	picture  field[Image]
	poster   field[Image]
	tags     field[map[string]string]
	metadata field[Metadata]
	provider field[string]
}

func newEpisode(url string, anime *Anime) *Episode {
	raw := rawName(url)
	e := &Episode{
		URL:     url,
		RawName: raw,
		Name:    formatName(raw),
		Anime:   anime,
	}

	log.Debugf("scraper: new episode %s", e.Name)
	return e
}

// Episode builds an episode entity directly from its URL, deriving the parent
// show from the URL pattern.
func (c *Client) Episode(url string) *Episode {
	url = completeURL(url)
	return newEpisode(url, c.Anime(animeURLFromEpisode(url)))
}

func (e *Episode) String() string {
	return e.Name
}

func (e *Episode) page(cache, force bool) (*Page, error) {
	if e.pageCache != nil && !force {
		return e.pageCache, nil
	}

	p, err := e.Anime.client.fetcher.Fetch(e.URL)
	if err != nil {
		return nil, err
	}
	if cache {
		e.pageCache = p
	}
	return p, nil
}

// Picture resolves the episode's thumbnail by locating its entry in the
// parent show's episode container. Uses the show's page snapshot, not the
// episode's.
func (e *Episode) Picture(opts ...PageOption) (Image, error) {
	o := makePageOptions(opts)
	return resolveField(&e.picture, e.Anime, o, func(p *Page) (Image, error) {
		var src string
		p.Find(".js-list-episode-container .holder").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, ok := s.Find("a").First().Attr("href")
			if !ok || completeURL(href) != e.URL {
				return true
			}
			src, _ = s.Find("img").First().Attr("src")
			return false
		})

		if src == "" {
			return Image{}, fmt.Errorf("episode %s not present in its show listing", e.Name)
		}

		src = completeURL(src)
		raw, err := e.Anime.client.session.GetOK(src, nil)
		if err != nil {
			return Image{}, fmt.Errorf("fetch picture: %w", err)
		}
		return newImage(raw, src), nil
	})
}

// Poster resolves the episode page's poster image.
func (e *Episode) Poster(opts ...PageOption) (Image, error) {
	return resolveField(&e.poster, e, makePageOptions(opts), func(p *Page) (Image, error) {
		return parsePoster(p, e.Anime.client, e.URL)
	})
}

// Tags resolves the episode page's tag mapping.
func (e *Episode) Tags(opts ...PageOption) (map[string]string, error) {
	return resolveField(&e.tags, e, makePageOptions(opts), func(p *Page) (map[string]string, error) {
		return parseTags(p, e.URL)
	})
}

// Metadata resolves the episode page's info list.
func (e *Episode) Metadata(opts ...PageOption) (Metadata, error) {
	return resolveField(&e.metadata, e, makePageOptions(opts), func(p *Page) (Metadata, error) {
		return parseMetadata(p, e.URL)
	})
}

// Provider resolves the embed player endpoint hosting the episode's video.
func (e *Episode) Provider(opts ...PageOption) (string, error) {
	return resolveField(&e.provider, e, makePageOptions(opts), func(p *Page) (string, error) {
		src, ok := p.Find("#display-player iframe").First().Attr("src")
		if !ok {
			return "", fmt.Errorf("no player iframe on %s", e.URL)
		}

		log.Infof("scraper: resolved provider %s for %s", src, e.Name)
		return src, nil
	})
}

// Download resolves the episode's provider and runs the segment pipeline
// into path. Provider resolution failure is terminal for the episode.
func (e *Episode) Download(path string, opts download.Options) (string, error) {
	provider, err := e.Provider()
	if err != nil {
		return "", fmt.Errorf("resolve provider: %w", err)
	}

	pipe := &download.Pipeline{
		Session: e.Anime.client.session,
		Grab:    e.Anime.client.grab,
	}
	return pipe.Run(provider, path, opts)
}
