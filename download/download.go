// Package download implements the segmented video retrieval pipeline.
//
// One Run call drives a single episode from provider manifest to a fully
// written file: manifest grab, quality resolution, playlist fetch, strictly
// sequential segment retrieval, byte-exact reassembly and an atomic persist.
// There is no retry, no resume and no parallelism; the first failing segment
// aborts the whole run and leaves nothing on disk.
package download

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nekosama-cli/nekosama/constant"
	"github.com/nekosama-cli/nekosama/filesystem"
	"github.com/nekosama-cli/nekosama/grabber"
	"github.com/nekosama-cli/nekosama/log"
	"github.com/nekosama-cli/nekosama/network"
	"github.com/nekosama-cli/nekosama/quality"
	"github.com/nekosama-cli/nekosama/util"
)

// SegmentError reports a transport segment that came back with a non-success status.
// It carries the failing segment's position, status code and response body.
type SegmentError struct {
	Index      int
	StatusCode int
	Body       string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d: HTTP %d", e.Index, e.StatusCode)
}

// Progress is invoked once per segment with (index of the completed segment,
// total segment count), synchronously with the fetch loop and in playlist order.
type Progress func(index, total int)

// Options tune a single pipeline run.
type Options struct {
	// Quality selects the rendition from the provider manifest.
	Quality quality.Spec
	// AppendExt appends Extension to the destination path.
	AppendExt bool
	// Extension without the leading dot. Empty means "mp4".
	Extension string
	// Progress, when non-nil, observes the segment loop.
	Progress Progress
}

// DefaultOptions returns the options used when the caller passes none.
func DefaultOptions() Options {
	return Options{Quality: quality.Best, AppendExt: true}
}

// Pipeline ties the collaborators of the download state machine together.
// The session is shared by reference with the entities that spawned the run.
type Pipeline struct {
	Session *network.Session
	Grab    grabber.Grabber
}

// New returns a Pipeline using the default HTTP grabber over the given session.
func New(session *network.Session) *Pipeline {
	return &Pipeline{Session: session, Grab: grabber.New(session)}
}

// Run downloads the episode behind providerURL into path and returns the
// final (possibly extension-suffixed) path. Terminal on first failure: a
// failing segment discards all accumulated bytes and no file is committed.
func (p *Pipeline) Run(providerURL, path string, opts Options) (string, error) {
	src, err := p.Grab.Source(providerURL)
	if err != nil {
		return "", err
	}

	manifest := grabber.ParseQualities(src)
	playlistURL, err := quality.Select(manifest, opts.Quality)
	if err != nil {
		return "", err
	}

	log.Infof("download: using %s for quality %s", playlistURL, opts.Quality)

	playlist, err := p.Session.GetOK(playlistURL, constant.SegmentHeaders)
	if err != nil {
		return "", fmt.Errorf("fetch segment playlist: %w", err)
	}

	segments := segmentLines(string(playlist))
	if len(segments) == 0 {
		return "", fmt.Errorf("playlist %s holds no segments", playlistURL)
	}

	log.Infof("download: fetching %s", util.Quantify(len(segments), "segment", "segments"))

	var content []byte
	for i, segment := range segments {
		body, status, err := p.Session.Get(segment, constant.SegmentHeaders)
		if err != nil {
			return "", fmt.Errorf("fetch segment %d: %w", i, err)
		}
		if status < 200 || status > 299 {
			return "", &SegmentError{Index: i, StatusCode: status, Body: string(body)}
		}

		content = append(content, body...)
		if opts.Progress != nil {
			opts.Progress(i, len(segments))
		}
	}

	if opts.AppendExt {
		ext := opts.Extension
		if ext == "" {
			ext = "mp4"
		}
		path += "." + ext
	}

	if err := persist(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// segmentLines collects, in order, every playlist line that is a well-formed
// absolute HTTPS reference. Everything else (comments, blanks, relative
// entries) is ignored.
func segmentLines(playlist string) []string {
	var segments []string
	for _, line := range strings.Split(playlist, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "https://") {
			continue
		}
		if _, err := url.ParseRequestURI(line); err != nil {
			continue
		}
		segments = append(segments, line)
	}
	return segments
}

// persist writes the reassembled bytes through a temporary file and an atomic
// rename, so a crash mid-write never leaves a partial episode at the
// destination path.
func persist(path string, content []byte) error {
	fs := filesystem.API()
	tmp := path + ".tmp"

	if err := fs.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("commit %s: %w", path, err)
	}
	return nil
}
