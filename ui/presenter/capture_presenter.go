package presenter

import (
	"errors"
	"image"
	"log/slog"

	"github.com/soocke/layout-lens-go/domain/capture"
	"github.com/soocke/layout-lens-go/domain/editor"
	"github.com/soocke/layout-lens-go/domain/export"
	"github.com/soocke/layout-lens-go/domain/frame"
	"github.com/soocke/layout-lens-go/ui/model"
)

// SourceSwitcher narrows what the presenter needs from the capture layer.
type SourceSwitcher interface {
	AcquirePreferred() error
	Switch() error
	Current() (capture.Device, bool)
}

// ExportComposer renders the export image.
type ExportComposer interface {
	Capture(raster image.Image, s editor.Snapshot) (*image.RGBA, error)
}

// SnapshotExporter persists or presents an export image.
type SnapshotExporter interface {
	Export(img image.Image, f frame.Frame) (export.Result, error)
}

// CapturePresenter owns source acquisition, device switching and snapshot
// export.
type CapturePresenter struct {
	model    *model.SourceModel
	switcher SourceSwitcher
	raster   capture.RasterSource
	scene    SceneSource
	composer ExportComposer
	exporter SnapshotExporter
	notice   Notifier
	logger   *slog.Logger
}

// CaptureDeps groups the collaborators of a CapturePresenter.
type CaptureDeps struct {
	Model    *model.SourceModel
	Switcher SourceSwitcher
	Raster   capture.RasterSource
	Scene    SceneSource
	Composer ExportComposer
	Exporter SnapshotExporter
	Notice   Notifier
	Logger   *slog.Logger
}

func NewCapturePresenter(d CaptureDeps) *CapturePresenter {
	return &CapturePresenter{
		model:    d.Model,
		switcher: d.Switcher,
		raster:   d.Raster,
		scene:    d.Scene,
		composer: d.Composer,
		exporter: d.Exporter,
		notice:   d.Notice,
		logger:   d.Logger,
	}
}

// Acquire opens the preferred capture device. Failure is reported to the
// user; the editor keeps working without a raster.
func (c *CapturePresenter) Acquire() error {
	if c == nil || c.switcher == nil {
		return nil
	}
	err := c.switcher.AcquirePreferred()
	c.syncDevice(err)
	return err
}

// Switch cycles to the next capture device.
func (c *CapturePresenter) Switch() error {
	if c == nil || c.switcher == nil {
		return nil
	}
	err := c.switcher.Switch()
	c.syncDevice(err)
	return err
}

func (c *CapturePresenter) syncDevice(err error) {
	if err != nil {
		if c.logger != nil {
			c.logger.Error("acquire capture device", "error", err)
		}
		if c.model != nil {
			c.model.SetFailed()
		}
		if c.notice != nil {
			c.notice.Show("Camera error")
		}
		return
	}
	if c.model == nil {
		return
	}
	if dev, ok := c.switcher.Current(); ok {
		c.model.SetDevice(dev.Label)
	}
}

// Export composes the current raster with the annotations and hands it to
// the exporter.
func (c *CapturePresenter) Export() (export.Result, error) {
	if c == nil || c.scene == nil || c.composer == nil || c.exporter == nil {
		return export.Result{}, nil
	}
	s := c.scene.Snapshot()
	var raster image.Image
	if c.raster != nil {
		if img, ok := c.raster.CurrentRaster(); ok {
			raster = img
		}
	}
	img, err := c.composer.Capture(raster, s)
	if err == nil {
		var res export.Result
		res, err = c.exporter.Export(img, s.Frame)
		if err == nil {
			if !res.Presented && c.notice != nil {
				c.notice.Show("Saved to " + res.Path)
			}
			return res, nil
		}
	}
	if c.logger != nil {
		c.logger.Error("export snapshot", "error", err)
	}
	if c.notice != nil {
		if errors.Is(err, export.ErrNoImage) {
			c.notice.Show("Nothing to export")
		} else {
			c.notice.Show("Export failed")
		}
	}
	return export.Result{}, err
}
