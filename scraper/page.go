// Package scraper models catalog entities (animes and their episodes) as
// lazily-populated objects backed by a scraped page snapshot.
package scraper

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/nekosama-cli/nekosama/network"
)

// Fetcher obtains a render-complete, queryable page for a URL.
// It owns the rendering concern; entities only layer their single-slot
// snapshot cache on top of it.
type Fetcher interface {
	Fetch(url string) (*Page, error)
}

// Page is a queryable snapshot of one fetched URL.
type Page struct {
	URL string

	doc *goquery.Document
}

// NewPage parses raw HTML into a queryable page.
func NewPage(url string, html []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", url, err)
	}
	return &Page{URL: url, doc: doc}, nil
}

// Find returns the selection matching a CSS selector.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.doc.Find(selector)
}

// httpFetcher is the default Fetcher, reading pages over the shared session.
type httpFetcher struct {
	session *network.Session
}

func (f httpFetcher) Fetch(url string) (*Page, error) {
	body, err := f.session.GetOK(url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	return NewPage(url, body)
}
