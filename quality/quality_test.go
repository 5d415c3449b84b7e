package quality

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSelect(t *testing.T) {
	Convey("Select", t, func() {
		manifest := []Entry{
			{Level: 3, URL: "u2"},
			{Level: 1, URL: "u1"},
			{Level: 5, URL: "u3"},
		}

		Convey("best picks the maximum level", func() {
			url, err := Select(manifest, Best)
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "u3")
		})

		Convey("worst picks the minimum level", func() {
			url, err := Select(manifest, Worst)
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "u1")
		})

		Convey("middle picks the midpoint of the ascending sort", func() {
			url, err := Select(manifest, Middle)
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "u2")
		})

		Convey("middle of an even count picks the lower-middle entry", func() {
			even := append([]Entry{{Level: 7, URL: "u4"}}, manifest...)
			url, err := Select(even, Middle)
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "u2")
		})

		Convey("numeric picks the nearest level", func() {
			url, err := Select(manifest, Level(6))
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "u3")
		})

		Convey("numeric ties break toward the lower level", func() {
			url, err := Select(manifest, Level(4))
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "u2")
		})

		Convey("empty manifest is a hard failure", func() {
			_, err := Select(nil, Best)
			So(err, ShouldEqual, ErrManifestEmpty)

			_, err = Select([]Entry{}, Level(720))
			So(err, ShouldEqual, ErrManifestEmpty)
		})

		Convey("the input manifest is never mutated", func() {
			_, _ = Select(manifest, Best)
			So(manifest[0].Level, ShouldEqual, 3)
			So(manifest[1].Level, ShouldEqual, 1)
			So(manifest[2].Level, ShouldEqual, 5)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("symbolic tokens", func() {
			for _, tok := range []string{TokenBest, TokenWorst, TokenMiddle} {
				spec, err := Parse(tok)
				So(err, ShouldBeNil)
				So(spec.String(), ShouldEqual, tok)
			}
		})

		Convey("literal levels", func() {
			spec, err := Parse("720")
			So(err, ShouldBeNil)
			So(spec.String(), ShouldEqual, "720")
		})

		Convey("garbage is rejected", func() {
			_, err := Parse("ultra")
			So(err, ShouldNotBeNil)
		})
	})
}
