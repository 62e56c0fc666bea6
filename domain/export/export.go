package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/soocke/layout-lens-go/config"
	"github.com/soocke/layout-lens-go/domain/frame"
)

// ErrPresentUnavailable is returned by a Presenter that cannot show the
// snapshot in view. The exporter then writes the file instead.
var ErrPresentUnavailable = errors.New("export: in-view presentation unavailable")

// ErrNoImage is returned when Export is called without a raster.
var ErrNoImage = errors.New("export: no image")

// Presenter shows an encoded PNG snapshot to the user.
type Presenter interface {
	Present(png []byte) error
}

// Result describes where an export ended up.
type Result struct {
	Presented bool
	Path      string
	Size      int
}

// Exporter encodes composed snapshots and hands them to a Presenter, falling
// back to a PNG file when presentation fails.
type Exporter struct {
	cfg       *config.Config
	presenter Presenter
	logger    *slog.Logger
}

// NewExporter returns an exporter. If cfg is nil the default configuration
// is used. presenter may be nil.
func NewExporter(cfg *config.Config, presenter Presenter, logger *slog.Logger) *Exporter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Exporter{cfg: cfg, presenter: presenter, logger: logger}
}

// SetPresenter replaces the presenter.
func (e *Exporter) SetPresenter(p Presenter) {
	if e == nil {
		return
	}
	e.presenter = p
}

// Export encodes img, optionally cropped to f, and presents it. When the
// presenter is missing or fails the PNG is written to the export directory.
func (e *Exporter) Export(img image.Image, f frame.Frame) (Result, error) {
	if e == nil {
		return Result{}, errors.New("export: nil exporter")
	}
	if img == nil || img.Bounds().Empty() {
		return Result{}, ErrNoImage
	}
	if e.cfg.ExportCropToFrame {
		img = CropToFrame(img, f)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return Result{}, fmt.Errorf("encode png: %w", err)
	}
	data := buf.Bytes()
	if e.cfg.PresentExport && e.presenter != nil {
		err := e.presenter.Present(data)
		if err == nil {
			if e.logger != nil {
				e.logger.Info("snapshot exported", "presented", true, "size", humanize.Bytes(uint64(len(data))))
			}
			return Result{Presented: true, Size: len(data)}, nil
		}
		if e.logger != nil {
			e.logger.Error("present snapshot failed, writing file", "error", err)
		}
	}
	path, err := e.writeFile(data)
	if err != nil {
		return Result{}, err
	}
	if e.logger != nil {
		e.logger.Info("snapshot exported", "presented", false, "path", path, "size", humanize.Bytes(uint64(len(data))))
	}
	return Result{Path: path, Size: len(data)}, nil
}

// CropToFrame crops img to the frame rectangle, rounded outwards to whole
// pixels. Frames that do not overlap img leave it unchanged.
func CropToFrame(img image.Image, f frame.Frame) image.Image {
	if f.Empty() {
		return img
	}
	r := image.Rect(int(f.X), int(f.Y), int(f.Right()+0.999999), int(f.Bottom()+0.999999))
	r = r.Add(img.Bounds().Min).Intersect(img.Bounds())
	if r.Empty() {
		return img
	}
	return imaging.Crop(img, r)
}

// Save writes an already encoded snapshot to the export directory and
// returns its path. The export window uses it to keep a presented image.
func (e *Exporter) Save(data []byte) (string, error) {
	if e == nil {
		return "", errors.New("export: nil exporter")
	}
	if len(data) == 0 {
		return "", ErrNoImage
	}
	path, err := e.writeFile(data)
	if err != nil {
		return "", err
	}
	if e.logger != nil {
		e.logger.Info("snapshot saved", "path", path, "size", humanize.Bytes(uint64(len(data))))
	}
	return path, nil
}

func (e *Exporter) writeFile(data []byte) (string, error) {
	dir := e.cfg.ExportDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, e.cfg.ExportName)
	if _, err := os.Stat(path); err == nil {
		ext := filepath.Ext(e.cfg.ExportName)
		base := strings.TrimSuffix(e.cfg.ExportName, ext)
		path = filepath.Join(dir, fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
