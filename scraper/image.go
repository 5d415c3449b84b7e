package scraper

import (
	"fmt"
	"path"
	"strings"

	"github.com/nekosama-cli/nekosama/filesystem"
	"github.com/nekosama-cli/nekosama/log"
)

// Image is an immutable fetched image: raw bytes plus the extension inferred
// from the originating URL. The URL is retained for traceability only.
type Image struct {
	Raw []byte
	Ext string
	URL string
}

// newImage builds an Image, inferring the extension from the source URL when possible.
func newImage(raw []byte, url string) Image {
	ext := strings.TrimPrefix(path.Ext(strings.SplitN(url, "?", 2)[0]), ".")
	if ext == "" {
		ext = "jpg"
	}
	return Image{Raw: raw, Ext: ext, URL: url}
}

func (i Image) String() string {
	return fmt.Sprintf("<Image %s>", i.Ext)
}

// Download writes the image bytes to a location, appending the extension
// unless the caller opts out. Returns the final path.
func (i Image) Download(path string, appendExt bool) (string, error) {
	if appendExt {
		path += "." + i.Ext
	}

	if err := filesystem.API().WriteFile(path, i.Raw, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	log.Infof("downloaded %s to %s", i, path)
	return path, nil
}
