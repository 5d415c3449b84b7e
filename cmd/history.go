// Package cmd implements the command-line interface for nekosama.
package cmd

import (
	"encoding/json"

	"github.com/nekosama-cli/nekosama/history"
	"github.com/nekosama-cli/nekosama/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// historyCmd displays the record of completed downloads.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the record of completed downloads",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := history.Get()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			handleErr(encoder.Encode(lo.Values(records)))
			return
		}

		sorted := lo.Values(records)
		slices.SortFunc(sorted, func(a, b *history.SavedDownload) int {
			return a.DownloadedAt.Compare(b.DownloadedAt)
		})

		for _, record := range sorted {
			cmd.Printf("%s %s\n", style.Bold(record.String()), style.Faint(record.Path))
		}
	},
}
