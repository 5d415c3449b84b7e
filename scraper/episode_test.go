package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nekosama-cli/nekosama/download"
	"github.com/nekosama-cli/nekosama/filesystem"
	"github.com/nekosama-cli/nekosama/network"
	. "github.com/smartystreets/goconvey/convey"
)

const episode1URL = "https://neko-sama.fr/anime/episode/4973-one-piece-01_vostfr"

// stubGrabber hands out a canned master manifest for any provider URL and
// records what it was asked for.
type stubGrabber struct {
	manifest  string
	providers []string
}

func (g *stubGrabber) Source(providerURL string) (string, error) {
	g.providers = append(g.providers, providerURL)
	return g.manifest, nil
}

func episodeHTML(provider string) string {
	return fmt.Sprintf(`<html><div id="display-player"><iframe src="%s"></iframe></div></html>`, provider)
}

// segmentServer serves a rendition playlist at /quality/720.m3u8 whose three
// segments reassemble to "ABC". TLS, so the segment lines are https refs.
func segmentServer() *httptest.Server {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/quality/720.m3u8", func(w http.ResponseWriter, r *http.Request) {
		lines := []string{"#EXTM3U"}
		for i := 0; i < 3; i++ {
			lines = append(lines, "#EXTINF:4.0,", fmt.Sprintf("%s/seg/%d", srv.URL, i))
		}
		lines = append(lines, "#EXT-X-ENDLIST")
		_, _ = w.Write([]byte(strings.Join(lines, "\n")))
	})
	mux.HandleFunc("/seg/", func(w http.ResponseWriter, r *http.Request) {
		var i int
		_, _ = fmt.Sscanf(r.URL.Path, "/seg/%d", &i)
		_, _ = w.Write([]byte{byte('A' + i)})
	})
	srv = httptest.NewTLSServer(mux)
	return srv
}

func manifestFor(srv *httptest.Server) string {
	return fmt.Sprintf("#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1,RESOLUTION=1280x720\n%s/quality/720.m3u8\n", srv.URL)
}

func TestEpisodeFromURL(t *testing.T) {
	Convey("Episode from URL", t, func() {
		c := New(WithFetcher(&fakeFetcher{}))
		e := c.Episode("/anime/episode/4973-one-piece-01_vostfr")

		So(e.URL, ShouldEqual, episode1URL)
		So(e.Name, ShouldEqual, "One Piece 01")
		So(e.Anime, ShouldNotBeNil)
		So(e.Anime.URL, ShouldEqual, animeURL)
		So(e.Anime.Name, ShouldEqual, "One Piece")
	})
}

func TestProvider(t *testing.T) {
	Convey("Provider", t, func() {
		fetcher := &fakeFetcher{pages: map[string]string{
			episode1URL: episodeHTML("https://provider.example/embed/xyz"),
		}}
		c := New(WithFetcher(fetcher))
		e := c.Episode(episode1URL)

		Convey("Resolves the player endpoint lazily", func() {
			So(fetcher.calls, ShouldEqual, 0)

			provider, err := e.Provider()
			So(err, ShouldBeNil)
			So(provider, ShouldEqual, "https://provider.example/embed/xyz")

			_, _ = e.Provider()
			So(fetcher.calls, ShouldEqual, 1)
		})

		Convey("A page without a player is an error", func() {
			fetcher.pages[episode1URL] = "<html>player removed</html>"
			_, err := e.Provider()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no player iframe")
		})
	})
}

func TestEpisodePicture(t *testing.T) {
	Convey("Episode picture", t, func() {
		imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("thumb:" + r.URL.Path))
		}))
		defer imgSrv.Close()

		showPage := fmt.Sprintf(`<div class="js-list-episode-container">
			<div class="holder"><a href="/anime/episode/4973-one-piece-01_vostfr"><img src="%s/ep1.jpg"></a></div>
			<div class="holder"><a href="/anime/episode/4973-one-piece-02_vostfr"><img src="%s/ep2.jpg"></a></div>
		</div>`, imgSrv.URL, imgSrv.URL)

		fetcher := &fakeFetcher{pages: map[string]string{animeURL: showPage}}
		c := New(
			WithFetcher(fetcher),
			WithSession(network.NewSessionWith(imgSrv.Client())),
		)
		a := c.Anime(animeURL)

		Convey("Is looked up on the parent show page", func() {
			img, err := a.Episode(1).Picture()
			So(err, ShouldBeNil)
			So(string(img.Raw), ShouldEqual, "thumb:/ep1.jpg")
			So(fetcher.calls, ShouldEqual, 1)

			// The second episode reuses the show's cached snapshot.
			img, err = a.Episode(2).Picture()
			So(err, ShouldBeNil)
			So(string(img.Raw), ShouldEqual, "thumb:/ep2.jpg")
			So(fetcher.calls, ShouldEqual, 1)
		})

		Convey("An episode absent from the listing is an error", func() {
			_, err := a.Episode(99).Picture()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not present in its show listing")
		})
	})
}

func TestEpisodeDownload(t *testing.T) {
	Convey("Episode download", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		srv := segmentServer()
		defer srv.Close()

		grab := &stubGrabber{manifest: manifestFor(srv)}
		fetcher := &fakeFetcher{pages: map[string]string{
			episode1URL: episodeHTML("https://provider.example/embed/ep1"),
		}}
		c := New(
			WithFetcher(fetcher),
			WithSession(network.NewSessionWith(srv.Client())),
			WithGrabber(grab),
		)
		e := c.Episode(episode1URL)

		Convey("Runs the full pipeline into the destination path", func() {
			out, err := e.Download("/tmp/one-piece-01", download.DefaultOptions())
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "/tmp/one-piece-01.mp4")
			So(grab.providers, ShouldResemble, []string{"https://provider.example/embed/ep1"})

			content, err := filesystem.API().ReadFile(out)
			So(err, ShouldBeNil)
			So(string(content), ShouldEqual, "ABC")
		})

		Convey("Provider failure is terminal", func() {
			fetcher.pages[episode1URL] = "<html>gone</html>"
			_, err := e.Download("/tmp/one-piece-01", download.DefaultOptions())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "resolve provider")
			So(grab.providers, ShouldBeEmpty)
		})
	})
}

func TestBatchDownload(t *testing.T) {
	Convey("Batch download", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		srv := segmentServer()
		defer srv.Close()

		episode2URL := "https://neko-sama.fr/anime/episode/4973-one-piece-02_vostfr"
		showPage := `<div class="js-list-episode-container">
			<a href="/anime/episode/4973-one-piece-02_vostfr">02</a>
			<a href="/anime/episode/4973-one-piece-01_vostfr">01</a>
		</div>`

		grab := &stubGrabber{manifest: manifestFor(srv)}
		fetcher := &fakeFetcher{pages: map[string]string{
			animeURL:    showPage,
			episode1URL: episodeHTML("https://provider.example/embed/ep1"),
			episode2URL: episodeHTML("https://provider.example/embed/ep2"),
		}}
		c := New(
			WithFetcher(fetcher),
			WithSession(network.NewSessionWith(srv.Client())),
			WithGrabber(grab),
		)
		a := c.Anime(animeURL)

		Convey("Downloads every episode in listing order", func() {
			paths, err := a.Download("/out", time.Duration(0), download.DefaultOptions())
			So(err, ShouldBeNil)
			So(paths, ShouldResemble, []string{
				"/out/4973-one-piece-01_vostfr.mp4",
				"/out/4973-one-piece-02_vostfr.mp4",
			})
			So(grab.providers, ShouldResemble, []string{
				"https://provider.example/embed/ep1",
				"https://provider.example/embed/ep2",
			})
		})

		Convey("The first failing episode fails the whole batch", func() {
			fetcher.pages[episode2URL] = "<html>gone</html>"
			_, err := a.Download("/out", time.Duration(0), download.DefaultOptions())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "One Piece 02")
		})
	})
}
