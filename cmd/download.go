// Package cmd implements the command-line interface for nekosama.
package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/nekosama-cli/nekosama/download"
	"github.com/nekosama-cli/nekosama/history"
	"github.com/nekosama-cli/nekosama/key"
	"github.com/nekosama-cli/nekosama/log"
	"github.com/nekosama-cli/nekosama/quality"
	"github.com/nekosama-cli/nekosama/scraper"
	"github.com/nekosama-cli/nekosama/style"
	"github.com/nekosama-cli/nekosama/tui"
	"github.com/nekosama-cli/nekosama/util"
	"github.com/nekosama-cli/nekosama/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().IntSliceP("episode", "e", []int{}, "Episode indexes to download")
	downloadCmd.Flags().BoolP("all", "a", false, "Download every episode of the show")
	downloadCmd.Flags().StringP("output", "o", "", "Directory episode files are written into")
	downloadCmd.Flags().StringP("quality", "q", "", "Quality to select: best, worst, middle or a literal level such as 720")
	downloadCmd.Flags().BoolP("plain", "p", false, "Disable the interactive progress surface")

	downloadCmd.MarkFlagsMutuallyExclusive("episode", "all")

	lo.Must0(viper.BindPFlag(key.DownloadQuality, downloadCmd.Flags().Lookup("quality")))
	lo.Must0(viper.BindPFlag(key.DownloadPath, downloadCmd.Flags().Lookup("output")))
}

// downloadCmd retrieves episodes of a show into local media files.
var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Download episodes of a show",
	Long: `Download episodes of a show into local media files.
Without --episode or --all, the episode is picked interactively.`,
	Args:    cobra.ExactArgs(1),
	Example: "  nekosama download -e 1,2 https://neko-sama.fr/anime/info/4973-one-piece_vostfr",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			indexes = lo.Must(cmd.Flags().GetIntSlice("episode"))
			all     = lo.Must(cmd.Flags().GetBool("all"))
			plain   = lo.Must(cmd.Flags().GetBool("plain"))
		)

		spec, err := quality.Parse(viper.GetString(key.DownloadQuality))
		handleErr(err)

		dir := viper.GetString(key.DownloadPath)
		if dir == "" {
			dir = where.Downloads()
		}

		opts := download.DefaultOptions()
		opts.Quality = spec
		opts.AppendExt = viper.GetBool(key.DownloadAppendExt)

		anime := scraper.New().Anime(args[0])

		var episodes []*scraper.Episode
		switch {
		case all:
			episodes = lo.Must(anime.Episodes())
		case len(indexes) > 0:
			episodes = lo.Map(indexes, func(index int, _ int) *scraper.Episode {
				return anime.Episode(index)
			})
		default:
			episodes = []*scraper.Episode{askEpisode(anime)}
		}

		pause := time.Duration(viper.GetInt(key.DownloadPause)) * time.Second

		for i, episode := range episodes {
			if i > 0 {
				time.Sleep(pause)
			}

			path := filepath.Join(dir, util.SanitizeFilename(episode.RawName))
			out, err := downloadEpisode(episode, path, opts, plain)
			handleErr(err)

			if viper.GetBool(key.DownloadWriteHistory) {
				if err := history.Save(episode, out, spec.String()); err != nil {
					log.Warnf("download: record history: %v", err)
				}
			}

			cmd.Printf("downloaded %s to %s\n", style.Bold(episode.Name), out)
		}
	},
}

// askEpisode prompts for one episode of the show's listing.
func askEpisode(anime *scraper.Anime) *scraper.Episode {
	episodes, err := anime.Episodes()
	handleErr(err)

	prompt := survey.Select{
		Message: "Which episode?",
		Options: lo.Map(episodes, func(e *scraper.Episode, _ int) string {
			return e.Name
		}),
	}

	var picked int
	handleErr(survey.AskOne(&prompt, &picked))
	return episodes[picked]
}

// downloadEpisode runs one pipeline pass, with or without the progress surface.
func downloadEpisode(episode *scraper.Episode, path string, opts download.Options, plain bool) (string, error) {
	if plain {
		opts.Progress = func(index, total int) {
			log.Debugf("download: segment %d of %d", index+1, total)
		}
		return episode.Download(path, opts)
	}

	tracker := tui.NewTracker()
	opts.Progress = tracker.Progress

	var (
		out    string
		runErr error
	)
	go func() {
		tracker.Label(fmt.Sprintf("Downloading %s", episode.Name))
		out, runErr = episode.Download(path, opts)
		tracker.Done(runErr)
	}()

	if err := tracker.Run(); err != nil {
		return "", err
	}
	return out, runErr
}
