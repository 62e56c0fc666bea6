package capture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ImageSequenceSource replays the png and jpeg files of a directory, one
// file per grab, in name order.
type ImageSequenceSource struct {
	dir string

	mu     sync.Mutex
	frames []*image.RGBA
	next   int
}

// NewImageSequenceSource returns a source reading frames from dir. A single
// image file is accepted as a one-frame sequence.
func NewImageSequenceSource(dir string) *ImageSequenceSource {
	return &ImageSequenceSource{dir: dir}
}

func (s *ImageSequenceSource) Device() Device {
	return Device{ID: "images", Label: "Images: " + filepath.Base(s.dir)}
}

// Open lists and decodes every frame up front, in parallel.
func (s *ImageSequenceSource) Open() error {
	if s.dir == "" {
		return fmt.Errorf("%w: no image directory configured", ErrNoSource)
	}
	paths, err := listImages(s.dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: no images in %s", ErrNoSource, s.dir)
	}
	frames := make([]*image.RGBA, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			img, err := decodeRGBA(p)
			if err != nil {
				return fmt.Errorf("decode %s: %w", p, err)
			}
			frames[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.mu.Lock()
	s.frames, s.next = frames, 0
	s.mu.Unlock()
	return nil
}

func (s *ImageSequenceSource) Grab() (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil, ErrNotReady
	}
	img := s.frames[s.next]
	s.next = (s.next + 1) % len(s.frames)
	return img, nil
}

func (s *ImageSequenceSource) Close() error {
	s.mu.Lock()
	s.frames, s.next = nil, 0
	s.mu.Unlock()
	return nil
}

func listImages(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			paths = append(paths, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func decodeRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}
