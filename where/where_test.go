package where

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nekosama-cli/nekosama/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWhere(t *testing.T) {
	Convey("Where", t, func() {
		Convey("Config honors the override variable", func() {
			dir := filepath.Join(t.TempDir(), "conf")
			So(os.Setenv(EnvConfigPath, dir), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(Config(), ShouldEqual, dir)

			stat, err := os.Stat(dir)
			So(err, ShouldBeNil)
			So(stat.IsDir(), ShouldBeTrue)
		})

		Convey("History lives under the config directory", func() {
			dir := t.TempDir()
			So(os.Setenv(EnvConfigPath, dir), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(History(), ShouldEqual, filepath.Join(dir, "history.json"))
		})

		Convey("Temp is namespaced by the application identifier", func() {
			So(strings.Contains(Temp(), constant.Nekosama), ShouldBeTrue)
		})
	})
}
