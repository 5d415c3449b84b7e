// Package cmd implements the command-line interface for nekosama.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/nekosama-cli/nekosama/color"
	"github.com/nekosama-cli/nekosama/constant"
	"github.com/nekosama-cli/nekosama/key"
	"github.com/nekosama-cli/nekosama/log"
	"github.com/nekosama-cli/nekosama/style"
	"github.com/nekosama-cli/nekosama/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record completed downloads in the local history")
	lo.Must0(viper.BindPFlag(key.DownloadWriteHistory, rootCmd.PersistentFlags().Lookup("write-history")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for the nekosama application.
var rootCmd = &cobra.Command{
	Use:   constant.Nekosama,
	Short: "A command-line interface for anime discovery and episode downloading",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line interface for anime discovery and episode downloading"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorTitle(" Error "), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
