// Package main is the entry point for the nekosama application.
package main

import (
	"github.com/nekosama-cli/nekosama/cmd"
	"github.com/nekosama-cli/nekosama/config"
	"github.com/nekosama-cli/nekosama/log"
	"github.com/nekosama-cli/nekosama/util"
	"github.com/nekosama-cli/nekosama/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Cleanup of transient artifacts left behind by previous runs.
	go func() {
		_ = util.Delete(where.Temp())
	}()

	cmd.Execute()
}
