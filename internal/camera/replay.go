package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile reports whether path has an extension the replay source reads.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Replay serves image files as frames, cycling through them in name
// order. The path may be a directory, a glob or a single file.
type Replay struct {
	path  string
	files []string
	next  int
}

// NewReplay returns a closed replay source for path.
func NewReplay(path string) *Replay {
	return &Replay{path: path}
}

// Open lists the images to serve. The device index is ignored.
func (r *Replay) Open(_ context.Context, _ int) error {
	files, err := ListImages(r.path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no images found at %s", r.path)
	}
	r.files = files
	r.next = 0
	return nil
}

// ReadFrame decodes the next image.
func (r *Replay) ReadFrame(ctx context.Context) (image.Image, error) {
	if len(r.files) == 0 {
		return nil, errors.New("replay source is not open")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := r.files[r.next]
	r.next = (r.next + 1) % len(r.files)

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open frame %s: %w", path, err)
	}
	return img, nil
}

// Close forgets the file list.
func (r *Replay) Close() error {
	r.files = nil
	r.next = 0
	return nil
}

// ListImages expands a directory, glob or file path into sorted image paths.
func ListImages(path string) ([]string, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		var files []string
		for _, e := range entries {
			if !e.IsDir() && IsImageFile(e.Name()) {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
		sort.Strings(files)
		return files, nil
	case err == nil:
		return []string{path}, nil
	}

	matches, globErr := filepath.Glob(path)
	if globErr != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", path, globErr)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	var files []string
	for _, m := range matches {
		if IsImageFile(m) {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}
