package source

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// Source yields consecutive video frames. Next returns io.EOF after the
// final frame.
type Source interface {
	Next() (image.Image, error)
}

// List returns the image files in dir in lexical order. Supported
// formats are PNG, JPEG, and GIF; other files are ignored.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Dir replays a directory of image files as a frame stream.
type Dir struct {
	paths       []string
	next        int
	targetWidth int
}

// DirOption configures a Dir source.
type DirOption func(*Dir)

// WithTargetWidth downsizes every frame to the given width, preserving
// aspect ratio. Zero disables resizing.
func WithTargetWidth(width int) DirOption {
	return func(d *Dir) { d.targetWidth = width }
}

// OpenDir scans dir for image files and returns a source replaying them
// in lexical order. An empty directory is an error: a stream with no
// frames is almost always a misconfigured path.
func OpenDir(dir string, opts ...DirOption) (*Dir, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no image files found in %s", dir)
	}

	d := &Dir{paths: paths}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Len returns the total number of frames in the stream.
func (d *Dir) Len() int { return len(d.paths) }

// Next decodes and returns the next frame, or io.EOF once the directory
// is exhausted. A frame that fails to decode is reported with its path;
// the caller may skip it and call Next again.
func (d *Dir) Next() (image.Image, error) {
	if d.next >= len(d.paths) {
		return nil, io.EOF
	}
	path := d.paths[d.next]
	d.next++

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}

	if d.targetWidth > 0 && img.Bounds().Dx() != d.targetWidth {
		img = imaging.Resize(img, d.targetWidth, 0, imaging.Lanczos)
	}
	return img, nil
}
