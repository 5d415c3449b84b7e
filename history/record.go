package history

import (
	"fmt"
	"time"

	"github.com/nekosama-cli/nekosama/scraper"
)

// SavedDownload represents a single completed download preserved in the user's history.
type SavedDownload struct {
	AnimeName    string    `json:"anime_name"`
	AnimeURL     string    `json:"anime_url"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Path         string    `json:"path"`
	Quality      string    `json:"quality"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

func (s *SavedDownload) encode() string {
	return s.URL
}

func (s *SavedDownload) String() string {
	return fmt.Sprintf("%s : %s", s.AnimeName, s.Name)
}

func newSavedDownload(episode *scraper.Episode, path, quality string) *SavedDownload {
	return &SavedDownload{
		AnimeName:    episode.Anime.Name,
		AnimeURL:     episode.Anime.URL,
		Name:         episode.Name,
		URL:          episode.URL,
		Path:         path,
		Quality:      quality,
		DownloadedAt: time.Now(),
	}
}
