package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nekosama-cli/nekosama/network"
	. "github.com/smartystreets/goconvey/convey"
)

const animeURL = "https://neko-sama.fr/anime/info/4973-one-piece_vostfr"

func animeHTML(synopsis string) string {
	return fmt.Sprintf(`<html>
	<div id="head" style="background-image: url(/img/poster.png);"></div>
	<div class="synopsis"><p>%s</p></div>
	<div id="anime-info-list">
		<div class="item">Status
Airing</div>
		<div class="item">Score
8.7 / 10</div>
	</div>
	<div class="tag"><a href="/tag/action">Action</a><a href="/tag/comedy">Comedy</a></div>
	<img class="loading" src="/img/thumb.jpg">
	<div class="js-list-episode-container">
		<div class="holder"><a href="/anime/episode/4973-one-piece-02_vostfr"><img src="/img/ep2.jpg"></a></div>
		<div class="holder"><a href="/anime/episode/4973-one-piece-01_vostfr"><img src="/img/ep1.jpg"></a></div>
		<a href="/anime/episode/4973-one-piece-01_vostfr">duplicate link</a>
	</div>
</html>`, synopsis)
}

func TestAnimeConstruction(t *testing.T) {
	Convey("Anime construction", t, func() {
		c := New(WithFetcher(&fakeFetcher{}))
		a := c.Anime("/anime/info/4973-one-piece_vostfr")

		So(a.URL, ShouldEqual, animeURL)
		So(a.RawName, ShouldEqual, "4973-one-piece_vostfr")
		So(a.Name, ShouldEqual, "One Piece")
		So(a.String(), ShouldEqual, "One Piece")
	})
}

func TestLazyResolution(t *testing.T) {
	Convey("Lazy resolution", t, func() {
		fetcher := &fakeFetcher{pages: map[string]string{animeURL: animeHTML("A pirate story.")}}
		c := New(WithFetcher(fetcher))
		a := c.Anime(animeURL)

		Convey("No I/O happens before the first access", func() {
			So(fetcher.calls, ShouldEqual, 0)
		})

		Convey("Reading a field twice fetches the page at most once", func() {
			first, err := a.Synopsis()
			So(err, ShouldBeNil)
			So(first, ShouldEqual, "A pirate story.")
			So(fetcher.calls, ShouldEqual, 1)

			second, err := a.Synopsis()
			So(err, ShouldBeNil)
			So(second, ShouldEqual, first)
			So(fetcher.calls, ShouldEqual, 1)
		})

		Convey("Distinct fields share the cached snapshot", func() {
			_, _ = a.Synopsis()
			_, err := a.Metadata()
			So(err, ShouldBeNil)
			So(fetcher.calls, ShouldEqual, 1)
		})

		Convey("Forced refresh re-fetches and can observe a changed page", func() {
			first, _ := a.Synopsis()
			So(first, ShouldEqual, "A pirate story.")

			fetcher.pages[animeURL] = animeHTML("Rewritten.")
			refreshed, err := a.Synopsis(ForceRefresh())
			So(err, ShouldBeNil)
			So(refreshed, ShouldEqual, "Rewritten.")
			So(fetcher.calls, ShouldEqual, 2)
		})

		Convey("WithoutCache leaves the snapshot slot empty", func() {
			_, err := a.Synopsis(WithoutCache())
			So(err, ShouldBeNil)
			So(a.pageCache, ShouldBeNil)

			// The next field resolution has to fetch again.
			_, err = a.Metadata()
			So(err, ShouldBeNil)
			So(fetcher.calls, ShouldEqual, 2)
		})

		Convey("A missing block resolves to an error, not an empty value", func() {
			fetcher.pages[animeURL] = "<html><body>nothing here</body></html>"
			_, err := a.Synopsis()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no synopsis block")

			So(a.synopsis.state, ShouldEqual, failed)
			So(a.synopsis.value.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestAnimeParsing(t *testing.T) {
	Convey("Anime parsing", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("image-bytes:" + r.URL.Path))
		}))
		defer srv.Close()

		html := animeHTML("Synopsis.")
		fetcher := &fakeFetcher{pages: map[string]string{animeURL: html}}
		c := New(
			WithFetcher(fetcher),
			WithSession(network.NewSessionWith(srv.Client())),
		)
		a := c.Anime(animeURL)

		Convey("Metadata keeps page order", func() {
			meta, err := a.Metadata()
			So(err, ShouldBeNil)
			So(meta, ShouldResemble, Metadata{
				{Label: "Status", Value: "Airing"},
				{Label: "Score", Value: "8.7 / 10"},
			})
			So(meta.Get("Status"), ShouldEqual, "Airing")
			So(meta.Get("Missing"), ShouldEqual, "")
		})

		Convey("Tags map names to completed URLs", func() {
			tags, err := a.Tags()
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, map[string]string{
				"Action": "https://neko-sama.fr/tag/action",
				"Comedy": "https://neko-sama.fr/tag/comedy",
			})
		})

		Convey("Picture fetches the thumbnail bytes and infers the extension", func() {
			// Point the img src at the test server.
			fetcher.pages[animeURL] = fmt.Sprintf(`<img class="loading" src="%s/img/thumb.jpg">`, srv.URL)

			img, err := a.Picture()
			So(err, ShouldBeNil)
			So(string(img.Raw), ShouldEqual, "image-bytes:/img/thumb.jpg")
			So(img.Ext, ShouldEqual, "jpg")
		})

		Convey("Poster is decoded from the header style attribute", func() {
			fetcher.pages[animeURL] = fmt.Sprintf(`<div id="head" style="background-image: url('%s/img/poster.png');"></div>`, srv.URL)

			img, err := a.Poster()
			So(err, ShouldBeNil)
			So(string(img.Raw), ShouldEqual, "image-bytes:/img/poster.png")
			So(img.Ext, ShouldEqual, "png")
		})

		Convey("Episodes are deduplicated and sorted by URL", func() {
			episodes, err := a.Episodes()
			So(err, ShouldBeNil)
			So(episodes, ShouldHaveLength, 2)
			So(episodes[0].URL, ShouldEqual, "https://neko-sama.fr/anime/episode/4973-one-piece-01_vostfr")
			So(episodes[1].URL, ShouldEqual, "https://neko-sama.fr/anime/episode/4973-one-piece-02_vostfr")

			for _, episode := range episodes {
				So(episode.Anime, ShouldEqual, a)
			}
		})
	})
}

func TestEpisodeIndex(t *testing.T) {
	Convey("Episode index", t, func() {
		c := New(WithFetcher(&fakeFetcher{}))
		a := c.Anime(animeURL)

		Convey("Is deterministic across calls", func() {
			So(a.Episode(7).URL, ShouldEqual, a.Episode(7).URL)
		})

		Convey("Constructs eagerly with no fetch", func() {
			episode := a.Episode(7)
			So(episode.URL, ShouldEqual, "https://neko-sama.fr/anime/episode/4973-one-piece-07_vostfr")
			So(episode.Anime, ShouldEqual, a)
		})
	})
}
