// Package grabber resolves a provider embed endpoint into its raw quality manifest.
//
// The provider page encodes the master playlist address inside its player
// script; the grabber fetches the page, locates that address and returns the
// playlist text. Everything downstream treats that text as opaque except for
// the (level, URL) pairs extracted by ParseQualities.
package grabber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nekosama-cli/nekosama/log"
	"github.com/nekosama-cli/nekosama/network"
	"github.com/nekosama-cli/nekosama/quality"
)

// Grabber turns a provider embed URL into the raw manifest source text.
type Grabber interface {
	Source(providerURL string) (string, error)
}

// playlistRe locates the master playlist address inside the provider's player markup.
var playlistRe = regexp.MustCompile(`https?://[^\s"'\\]+?\.m3u8[^\s"'\\]*`)

// streamInfRe extracts the vertical resolution from an EXT-X-STREAM-INF attribute list.
var streamInfRe = regexp.MustCompile(`RESOLUTION=\d+x(\d+)`)

// HTTP is the default Grabber. It performs two blocking requests: one for the
// embed page, one for the master playlist referenced inside it.
type HTTP struct {
	Session *network.Session
}

// New returns an HTTP grabber bound to the given session.
func New(session *network.Session) *HTTP {
	return &HTTP{Session: session}
}

// Source fetches the provider embed page and returns the master playlist text.
func (g *HTTP) Source(providerURL string) (string, error) {
	page, err := g.Session.GetOK(providerURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch provider page: %w", err)
	}

	playlistURL := playlistRe.FindString(string(page))
	if playlistURL == "" {
		return "", fmt.Errorf("no playlist reference found on provider page %s", providerURL)
	}

	log.Debugf("grabber: found playlist %s", playlistURL)

	manifest, err := g.Session.GetOK(playlistURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch master playlist: %w", err)
	}
	return string(manifest), nil
}

// ParseQualities extracts the (quality level, URL) pairs from a master playlist.
// Pairs appear as an EXT-X-STREAM-INF line followed by the rendition URL; lines
// that do not form such a pair are ignored. Order of appearance is preserved.
func ParseQualities(manifest string) []quality.Entry {
	var entries []quality.Entry

	lines := strings.Split(manifest, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#EXT-X-STREAM-INF:") {
			continue
		}

		match := streamInfRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		level, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		// The rendition URL is the next non-comment, non-blank line.
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next == "" {
				continue
			}
			if strings.HasPrefix(next, "#") {
				break
			}
			entries = append(entries, quality.Entry{Level: level, URL: next})
			break
		}
	}

	return entries
}
