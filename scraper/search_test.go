package scraper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nekosama-cli/nekosama/key"
	"github.com/nekosama-cli/nekosama/network"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

const catalogJSON = `[
	{"id": 4973, "title": "One Piece", "url": "/anime/info/4973-one-piece_vostfr", "url_image": "/img/4973.jpg"},
	{"id": 5122, "title": "One Piece Film: Red", "url": "/anime/info/5122-one-piece-film-red_vostfr", "url_image": "/img/5122.jpg"},
	{"id": 31, "title": "Cowboy Bebop", "url": "/anime/info/31-cowboy-bebop_vostfr", "url_image": "/img/31.jpg"}
]`

func TestSearch(t *testing.T) {
	Convey("Search", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/index.json" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(catalogJSON))
		}))
		defer srv.Close()

		c := New(
			WithSession(network.NewSessionWith(srv.Client())),
			WithSearchIndex(srv.URL+"/index.json"),
		)

		Convey("Ranks matches by edit distance, closest first", func() {
			results, err := c.Search("one piece")
			So(err, ShouldBeNil)

			names := lo.Map(results, func(a *Anime, _ int) string { return a.Name })
			So(names, ShouldResemble, []string{"One Piece", "One Piece Film Red"})
			So(results[0].URL, ShouldEqual, "https://neko-sama.fr/anime/info/4973-one-piece_vostfr")
		})

		Convey("No match yields an empty result, not an error", func() {
			results, err := c.Search("naruto")
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})

		Convey("Result count is bounded by the search limit setting", func() {
			viper.Set(key.SearchLimit, 1)
			defer viper.Set(key.SearchLimit, 0)

			results, err := c.Search("one piece")
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 1)
			So(results[0].Name, ShouldEqual, "One Piece")
		})

		Convey("A broken index is an error", func() {
			bad := New(
				WithSession(network.NewSessionWith(srv.Client())),
				WithSearchIndex(srv.URL+"/missing.json"),
			)
			_, err := bad.Search("one piece")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "fetch search index")
		})
	})
}
