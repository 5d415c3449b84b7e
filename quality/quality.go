// Package quality implements rendition selection over a provider manifest.
package quality

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
)

// ErrManifestEmpty is returned when resolution is attempted against a manifest with no entries.
// An empty manifest is a hard failure: no placeholder URL is ever returned in its place.
var ErrManifestEmpty = errors.New("no qualities available")

// Entry is a single (quality level, URL) pair extracted from a provider manifest.
type Entry struct {
	// Level is the numeric quality level, typically the vertical resolution (e.g. 1080).
	Level int
	// URL is the playlist address for this rendition.
	URL string
}

// Symbolic selection tokens.
const (
	TokenBest   = "best"
	TokenWorst  = "worst"
	TokenMiddle = "middle"
)

// Spec designates one rendition out of a manifest, either symbolically or by a literal level.
type Spec struct {
	token   string
	level   int
	numeric bool
}

// Best selects the entry with the maximum level.
var Best = Spec{token: TokenBest}

// Worst selects the entry with the minimum level.
var Worst = Spec{token: TokenWorst}

// Middle selects the lower-middle entry of the ascending sort.
var Middle = Spec{token: TokenMiddle}

// Level selects the entry whose level is nearest to n, ties broken toward the lower level.
func Level(n int) Spec {
	return Spec{numeric: true, level: n}
}

// Parse interprets a textual quality specification: one of the symbolic
// tokens, or a literal signed integer level.
func Parse(s string) (Spec, error) {
	switch s {
	case TokenBest:
		return Best, nil
	case TokenWorst:
		return Worst, nil
	case TokenMiddle:
		return Middle, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid quality %q: expected best, worst, middle or an integer level", s)
	}
	return Level(n), nil
}

func (s Spec) String() string {
	if s.numeric {
		return strconv.Itoa(s.level)
	}
	if s.token == "" {
		return TokenBest
	}
	return s.token
}

// Select resolves exactly one URL from the manifest for the given Spec.
// The input slice is never mutated; selection works on a sorted copy.
//
// For an even-length manifest, middle resolves to the lower-middle entry.
// For a numeric spec, distance ties resolve to the lower level.
func Select(entries []Entry, spec Spec) (string, error) {
	if len(entries) == 0 {
		return "", ErrManifestEmpty
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return a.Level - b.Level
	})

	if spec.numeric {
		pick := sorted[0]
		for _, e := range sorted[1:] {
			if abs(e.Level-spec.level) < abs(pick.Level-spec.level) {
				pick = e
			}
		}
		return pick.URL, nil
	}

	switch spec.token {
	case TokenWorst:
		return sorted[0].URL, nil
	case TokenMiddle:
		return sorted[(len(sorted)-1)/2].URL, nil
	default:
		// Best is the zero-value behavior.
		return sorted[len(sorted)-1].URL, nil
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
