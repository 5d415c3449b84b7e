package scraper

import (
	"github.com/nekosama-cli/nekosama/constant"
	"github.com/nekosama-cli/nekosama/grabber"
	"github.com/nekosama-cli/nekosama/network"
)

// Client is a scraping instance: one shared transport session, the page
// fetcher built on it and the provider grabber. Every entity constructed
// through a Client shares these collaborators by reference; nothing here is
// safe for concurrent use.
type Client struct {
	session     *network.Session
	fetcher     Fetcher
	grab        grabber.Grabber
	searchIndex string
}

// Option customizes a Client, mainly so tests can substitute collaborators.
type Option func(*Client)

// WithSession replaces the shared transport session.
func WithSession(s *network.Session) Option {
	return func(c *Client) { c.session = s }
}

// WithFetcher replaces the page fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Client) { c.fetcher = f }
}

// WithGrabber replaces the provider grabber used by episode downloads.
func WithGrabber(g grabber.Grabber) Option {
	return func(c *Client) { c.grab = g }
}

// WithSearchIndex points catalog search at an alternative index URL.
func WithSearchIndex(url string) Option {
	return func(c *Client) { c.searchIndex = url }
}

// New builds a Client over the shared application session.
func New(opts ...Option) *Client {
	c := &Client{searchIndex: constant.SearchIndexURL}
	for _, opt := range opts {
		opt(c)
	}

	if c.session == nil {
		c.session = network.NewSession()
	}
	if c.fetcher == nil {
		c.fetcher = httpFetcher{session: c.session}
	}
	if c.grab == nil {
		c.grab = grabber.New(c.session)
	}
	return c
}

// Session exposes the shared transport session.
func (c *Client) Session() *network.Session {
	return c.session
}
