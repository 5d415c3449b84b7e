// Package history provides the implementation for tracking completed downloads.
package history

import (
	"github.com/metafates/gache"
	"github.com/nekosama-cli/nekosama/filesystem"
	"github.com/nekosama-cli/nekosama/scraper"
	"github.com/nekosama-cli/nekosama/where"
)

// cacher provides an abstracted, disk-backed registry for download records.
var cacher = gache.New[map[string]*SavedDownload](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of download records from the persistent store.
func Get() (map[string]*SavedDownload, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedDownload), nil
	}
	return cached, nil
}

// Save persists a completed episode download to the history registry.
// Re-downloading an episode overwrites its previous record.
func Save(episode *scraper.Episode, path, quality string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedDownload(episode, path, quality)
	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a download record from the history registry.
func Remove(record *SavedDownload) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}
