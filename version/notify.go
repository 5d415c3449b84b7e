package version

import (
	"fmt"

	"github.com/nekosama-cli/nekosama/color"
	"github.com/nekosama-cli/nekosama/constant"
	"github.com/nekosama-cli/nekosama/key"
	"github.com/nekosama-cli/nekosama/style"
	"github.com/nekosama-cli/nekosama/util"
	"github.com/spf13/viper"
)

// Notify displays a terminal alert if a more recent stable application version is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable("Checking if new version is available...")
	version, err := Latest()
	erase()
	if err == nil {
		comp, err := Compare(version, constant.Version)
		if err == nil && comp <= 0 {
			return
		}
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/nekosama-cli/nekosama/releases/tag/v"+version),
	)
}
