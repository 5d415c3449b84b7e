// Package cmd implements the command-line interface for nekosama.
package cmd

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/nekosama-cli/nekosama/color"
	"github.com/nekosama-cli/nekosama/key"
	"github.com/nekosama-cli/nekosama/scraper"
	"github.com/nekosama-cli/nekosama/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("limit", "l", 0, "Limit the number of results, 0 uses the configured default")
	searchCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")

	lo.Must0(viper.BindPFlag(key.SearchLimit, searchCmd.Flags().Lookup("limit")))
}

// searchCmd looks up shows in the catalog index by title.
var searchCmd = &cobra.Command{
	Use:     "search [query]",
	Short:   "Search the catalog for shows matching a title",
	Args:    cobra.MinimumNArgs(1),
	Example: "  nekosama search one piece",
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		results, err := scraper.New().Search(query)
		handleErr(err)

		if len(results) == 0 {
			handleErr(errors.New("no shows found for " + style.Fg(color.Yellow)(query)))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			type entry struct {
				Name string `json:"name"`
				URL  string `json:"url"`
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			handleErr(encoder.Encode(lo.Map(results, func(a *scraper.Anime, _ int) entry {
				return entry{Name: a.Name, URL: a.URL}
			})))
			return
		}

		for _, anime := range results {
			cmd.Printf("%s %s\n", style.Bold(anime.Name), style.Faint(anime.URL))
		}
	},
}
