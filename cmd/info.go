// Package cmd implements the command-line interface for nekosama.
package cmd

import (
	"github.com/muesli/reflow/wordwrap"
	"github.com/nekosama-cli/nekosama/color"
	"github.com/nekosama-cli/nekosama/log"
	"github.com/nekosama-cli/nekosama/scraper"
	"github.com/nekosama-cli/nekosama/style"
	"github.com/nekosama-cli/nekosama/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolP("episodes", "e", false, "List every episode of the show")
}

// infoCmd displays the resolved attributes of a catalog show.
var infoCmd = &cobra.Command{
	Use:     "info [url]",
	Short:   "Display synopsis, metadata and tags for a show",
	Args:    cobra.ExactArgs(1),
	Example: "  nekosama info https://neko-sama.fr/anime/info/4973-one-piece_vostfr",
	Run: func(cmd *cobra.Command, args []string) {
		anime := scraper.New().Anime(args[0])

		cmd.Println(style.Title(anime.Name))
		cmd.Println()

		width, _, err := util.TerminalSize()
		if err != nil || width <= 0 {
			width = 80
		}

		// Resolution failures on individual fields degrade the report,
		// they do not abort it.
		if synopsis, err := anime.Synopsis(); err == nil {
			cmd.Println(wordwrap.String(synopsis, width))
			cmd.Println()
		} else {
			log.Warnf("info: synopsis unavailable: %v", err)
		}

		if metadata, err := anime.Metadata(); err == nil {
			for _, item := range metadata {
				cmd.Printf("%s %s\n", style.Bold(item.Label+":"), item.Value)
			}
			cmd.Println()
		} else {
			log.Warnf("info: metadata unavailable: %v", err)
		}

		if tags, err := anime.Tags(); err == nil {
			names := lo.Keys(tags)
			slices.Sort(names)
			for i, name := range names {
				if i > 0 {
					cmd.Print(" ")
				}
				cmd.Print(style.Fg(color.Cyan)(name))
			}
			cmd.Println()
		} else {
			log.Warnf("info: tags unavailable: %v", err)
		}

		if lo.Must(cmd.Flags().GetBool("episodes")) {
			episodes, err := anime.Episodes()
			handleErr(err)

			cmd.Println()
			cmd.Println(style.Bold(util.Quantify(len(episodes), "episode", "episodes")))
			for _, episode := range episodes {
				cmd.Printf("%s %s\n", episode.Name, style.Faint(episode.URL))
			}
		}
	},
}
