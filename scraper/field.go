package scraper

import (
	"github.com/nekosama-cli/nekosama/log"
	"github.com/samber/mo"
)

type fieldState uint8

const (
	unresolved fieldState = iota
	resolved
	failed
)

// field is the tri-state slot behind every derived attribute. It makes
// "resolution failed" distinguishable from "resolved but genuinely empty":
// a failed parse never masquerades as an empty value.
type field[T any] struct {
	state fieldState
	value mo.Option[T]
	err   error
}

func (f *field[T]) set(v T) T {
	f.state = resolved
	f.value = mo.Some(v)
	f.err = nil
	return v
}

func (f *field[T]) fail(err error) {
	f.state = failed
	f.value = mo.None[T]()
	f.err = err
}

// PageOption adjusts how a resolver interacts with the entity's page cache.
type PageOption func(*pageOptions)

type pageOptions struct {
	cache bool
	force bool
}

// WithoutCache keeps the page fetched during this resolve out of the entity's snapshot slot.
func WithoutCache() PageOption {
	return func(o *pageOptions) { o.cache = false }
}

// ForceRefresh bypasses any cached snapshot and fetches the page anew.
// The field is re-resolved even if it already holds a value.
func ForceRefresh() PageOption {
	return func(o *pageOptions) { o.force = true }
}

func makePageOptions(opts []PageOption) pageOptions {
	o := pageOptions{cache: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// pager is the single-slot page cache discipline shared by Anime and Episode.
type pager interface {
	page(cache, force bool) (*Page, error)
}

// resolveField drives one derived attribute through the lazy protocol:
// an already-resolved field is returned without I/O unless a refresh is
// forced; otherwise the page is obtained through the entity's cache and the
// field-specific parse rule runs. Failures are logged and recorded on the
// field, then surfaced to the caller.
func resolveField[T any](f *field[T], e pager, o pageOptions, parse func(*Page) (T, error)) (T, error) {
	if f.state == resolved && !o.force {
		return f.value.MustGet(), nil
	}

	var zero T

	p, err := e.page(o.cache, o.force)
	if err != nil {
		f.fail(err)
		log.Errorf("scraper: fetch during resolve: %v", err)
		return zero, err
	}

	v, err := parse(p)
	if err != nil {
		f.fail(err)
		log.Errorf("scraper: resolve on %s: %v", p.URL, err)
		return zero, err
	}

	return f.set(v), nil
}
