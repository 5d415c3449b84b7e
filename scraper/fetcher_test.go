package scraper

import "fmt"

// fakeFetcher serves canned HTML and counts fetches, so tests can assert the
// lazy resolution protocol's I/O behavior.
type fakeFetcher struct {
	pages map[string]string
	calls int
}

func (f *fakeFetcher) Fetch(url string) (*Page, error) {
	f.calls++
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return NewPage(url, []byte(html))
}
