package scraper

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nekosama-cli/nekosama/download"
	"github.com/nekosama-cli/nekosama/log"
	"github.com/nekosama-cli/nekosama/util"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// MetadataItem is one labeled entry of a page's info list ("Status: Airing").
type MetadataItem struct {
	Label string
	Value string
}

// Metadata is the ordered info list of a page, in document order.
type Metadata []MetadataItem

// Get returns the value for a label, or the empty string.
func (m Metadata) Get(label string) string {
	for _, item := range m {
		if item.Label == label {
			return item.Value
		}
	}
	return ""
}

// Anime represents one catalog show. Its identity is the canonical URL; every
// derived attribute starts unresolved and is computed from the page snapshot
// on first access, then cached until a forced refresh.
type Anime struct {
	URL     string
	RawName string
	Name    string

	client    *Client
	pageCache *Page

	synopsis field[string]
	metadata field[Metadata]
	picture  field[Image]
	poster   field[Image]
	tags     field[map[string]string]
	episodes field[[]*Episode]
}

// Anime constructs the lazy entity for a show URL. No request is issued until
// a derived attribute is first read.
func (c *Client) Anime(url string) *Anime {
	url = completeURL(url)
	raw := rawName(url)

	a := &Anime{
		URL:     url,
		RawName: raw,
		Name:    formatName(raw),
		client:  c,
	}

	log.Debugf("scraper: new anime %s", a.Name)
	return a
}

func (a *Anime) String() string {
	return a.Name
}

// page implements the single-slot snapshot cache: the cached page is served
// unless a refresh is forced, and a fetched page replaces the slot iff the
// resolver asked for caching.
func (a *Anime) page(cache, force bool) (*Page, error) {
	if a.pageCache != nil && !force {
		return a.pageCache, nil
	}

	p, err := a.client.fetcher.Fetch(a.URL)
	if err != nil {
		return nil, err
	}
	if cache {
		a.pageCache = p
	}
	return p, nil
}

// Synopsis resolves the show's synopsis text.
func (a *Anime) Synopsis(opts ...PageOption) (string, error) {
	return resolveField(&a.synopsis, a, makePageOptions(opts), func(p *Page) (string, error) {
		sel := p.Find(".synopsis")
		if sel.Length() == 0 {
			return "", fmt.Errorf("no synopsis block on %s", a.URL)
		}
		return strings.TrimSpace(sel.First().Text()), nil
	})
}

// Metadata resolves the show's info list, order preserved as on the page.
func (a *Anime) Metadata(opts ...PageOption) (Metadata, error) {
	return resolveField(&a.metadata, a, makePageOptions(opts), func(p *Page) (Metadata, error) {
		return parseMetadata(p, a.URL)
	})
}

// Picture resolves the show's thumbnail image, fetching its bytes.
func (a *Anime) Picture(opts ...PageOption) (Image, error) {
	return resolveField(&a.picture, a, makePageOptions(opts), func(p *Page) (Image, error) {
		src, ok := p.Find(".loading").First().Attr("src")
		if !ok {
			return Image{}, fmt.Errorf("no picture on %s", a.URL)
		}

		src = completeURL(src)
		raw, err := a.client.session.GetOK(src, nil)
		if err != nil {
			return Image{}, fmt.Errorf("fetch picture: %w", err)
		}
		return newImage(raw, src), nil
	})
}

// Poster resolves the show's poster image, encoded in the header's
// background-image style attribute.
func (a *Anime) Poster(opts ...PageOption) (Image, error) {
	return resolveField(&a.poster, a, makePageOptions(opts), func(p *Page) (Image, error) {
		return parsePoster(p, a.client, a.URL)
	})
}

// Tags resolves the show's search tags as a name to URL mapping.
func (a *Anime) Tags(opts ...PageOption) (map[string]string, error) {
	return resolveField(&a.tags, a, makePageOptions(opts), func(p *Page) (map[string]string, error) {
		return parseTags(p, a.URL)
	})
}

// Episodes resolves the full episode listing: every link of the episode
// container, deduplicated and sorted by URL ascending.
//
// Deprecated: listing forces a full page resolution; prefer Episode for
// positional access.
func (a *Anime) Episodes(opts ...PageOption) ([]*Episode, error) {
	return resolveField(&a.episodes, a, makePageOptions(opts), func(p *Page) ([]*Episode, error) {
		var urls []string
		p.Find(".js-list-episode-container a").Each(func(_ int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok {
				urls = append(urls, completeURL(href))
			}
		})

		if len(urls) == 0 {
			return nil, fmt.Errorf("no episode listing on %s", a.URL)
		}

		urls = lo.Uniq(urls)
		slices.Sort(urls)

		return lo.Map(urls, func(u string, _ int) *Episode {
			return newEpisode(u, a)
		}), nil
	})
}

// Episode constructs the episode at a positional index by deterministic URL
// rewriting, with no existence check against the server. Faster than listing,
// but the resulting entity may point at a nonexistent resource if the site's
// URL scheme diverges.
func (a *Anime) Episode(index int) *Episode {
	u := episodeURL(a.URL, index)
	log.Debugf("scraper: generated index %d url for %s: %s", index, a.Name, u)
	return newEpisode(u, a)
}

// Download retrieves every episode of the show sequentially into dir,
// sleeping for pause between items as a crude rate limit. Returns the ordered
// output paths; the first failing episode fails the whole batch.
func (a *Anime) Download(dir string, pause time.Duration, opts download.Options) ([]string, error) {
	episodes, err := a.Episodes()
	if err != nil {
		return nil, err
	}

	var paths []string
	for i, episode := range episodes {
		if i > 0 {
			time.Sleep(pause)
		}

		path := filepath.Join(dir, util.SanitizeFilename(episode.RawName))
		log.Infof("downloading %s to %s", episode.Name, path)

		out, err := episode.Download(path, opts)
		if err != nil {
			return nil, fmt.Errorf("episode %s: %w", episode.Name, err)
		}
		paths = append(paths, out)
	}

	return paths, nil
}

// Shared parse rules between show and episode pages.

func parseMetadata(p *Page, url string) (Metadata, error) {
	items := p.Find("#anime-info-list .item")
	if items.Length() == 0 {
		return nil, fmt.Errorf("no info list on %s", url)
	}

	var meta Metadata
	items.Each(func(_ int, s *goquery.Selection) {
		lines := lo.FilterMap(strings.Split(s.Text(), "\n"), func(line string, _ int) (string, bool) {
			line = strings.TrimSpace(line)
			return line, line != ""
		})
		if len(lines) == 0 {
			return
		}

		meta = append(meta, MetadataItem{
			Label: lines[0],
			Value: strings.Join(lines[1:], " "),
		})
	})
	return meta, nil
}

func parsePoster(p *Page, c *Client, url string) (Image, error) {
	style, ok := p.Find("#head").First().Attr("style")
	if !ok {
		return Image{}, fmt.Errorf("no poster header on %s", url)
	}

	_, after, found := strings.Cut(style, "url(")
	src, _, _ := strings.Cut(after, ")")
	src = strings.Trim(src, `'" `)
	if !found || src == "" {
		return Image{}, fmt.Errorf("no poster url in header style on %s", url)
	}

	src = completeURL(src)
	raw, err := c.session.GetOK(src, nil)
	if err != nil {
		return Image{}, fmt.Errorf("fetch poster: %w", err)
	}
	return newImage(raw, src), nil
}

func parseTags(p *Page, url string) (map[string]string, error) {
	links := p.Find(".tag").First().Find("a")
	if links.Length() == 0 {
		return nil, fmt.Errorf("no tag list on %s", url)
	}

	tags := make(map[string]string, links.Length())
	links.Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		tags[strings.TrimSpace(s.Text())] = completeURL(href)
	})
	return tags, nil
}
