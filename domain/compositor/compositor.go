package compositor

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"

	"github.com/soocke/layout-lens-go/domain/annotation"
	"github.com/soocke/layout-lens-go/domain/editor"
	"github.com/soocke/layout-lens-go/domain/frame"
)

// ErrEmptyCanvas is returned when a snapshot has no viewport size yet.
var ErrEmptyCanvas = errors.New("compositor: empty canvas")

// DefaultCacheSize is used when NewCompositor receives a non-positive size.
const DefaultCacheSize = 8

type cacheKey struct {
	w, h      int
	frame     frame.Frame
	selection int
	revision  uint64
}

// Compositor draws the overlay for a snapshot and flattens it over a raster
// for preview and export. Rendered overlays are cached by store revision,
// frame and selection, so an unchanged scene costs one map lookup per tick.
type Compositor struct {
	logger *slog.Logger
	cache  *lru.Cache[cacheKey, *image.RGBA]
}

// NewCompositor returns a compositor keeping up to cacheSize overlays.
func NewCompositor(logger *slog.Logger, cacheSize int) (*Compositor, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, *image.RGBA](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("overlay cache: %w", err)
	}
	return &Compositor{logger: logger, cache: cache}, nil
}

// Render returns the transparent overlay for s. The returned image may be
// shared with later calls and must not be modified.
func (c *Compositor) Render(s editor.Snapshot) (*image.RGBA, error) {
	if s.ViewW <= 0 || s.ViewH <= 0 {
		return nil, ErrEmptyCanvas
	}
	key := cacheKey{w: s.ViewW, h: s.ViewH, frame: s.Frame, selection: s.Selection, revision: s.Revision}
	if c != nil && c.cache != nil {
		if img, ok := c.cache.Get(key); ok {
			return img, nil
		}
	}
	dc := gg.NewContext(s.ViewW, s.ViewH)
	defer dc.Close()
	if err := drawOverlay(dc, s, false); err != nil {
		return nil, err
	}
	img, err := toRGBA(dc)
	if err != nil {
		return nil, err
	}
	if c != nil && c.cache != nil {
		c.cache.Add(key, img)
	}
	if c != nil && c.logger != nil {
		c.logger.Debug("overlay rendered", "revision", s.Revision, "selection", s.Selection, "lines", len(s.Lines), "dots", len(s.Dots))
	}
	return img, nil
}

// Preview stretches raster over the canvas and draws the cached overlay on
// top. A nil raster leaves the image layer transparent.
func (c *Compositor) Preview(raster image.Image, s editor.Snapshot) (*image.RGBA, error) {
	overlay, err := c.Render(s)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(s.ViewW, s.ViewH)
	defer dc.Close()
	drawRaster(dc, raster, s.ViewW, s.ViewH)
	dc.DrawImage(gg.ImageBufFromImage(overlay), 0, 0)
	return toRGBA(dc)
}

// Capture flattens raster and the export overlay into a canvas-sized image.
// Every line is drawn in the plain accent style; the selection is ignored.
func (c *Compositor) Capture(raster image.Image, s editor.Snapshot) (*image.RGBA, error) {
	if s.ViewW <= 0 || s.ViewH <= 0 {
		return nil, ErrEmptyCanvas
	}
	dc := gg.NewContext(s.ViewW, s.ViewH)
	defer dc.Close()
	drawRaster(dc, raster, s.ViewW, s.ViewH)
	if err := drawOverlay(dc, s, true); err != nil {
		return nil, err
	}
	img, err := toRGBA(dc)
	if err != nil {
		return nil, err
	}
	if c != nil && c.logger != nil {
		c.logger.Debug("export composed", "width", s.ViewW, "height", s.ViewH, "image_layer", raster != nil)
	}
	return img, nil
}

// Purge drops every cached overlay.
func (c *Compositor) Purge() {
	if c == nil || c.cache == nil {
		return
	}
	c.cache.Purge()
}

func drawRaster(dc *gg.Context, raster image.Image, w, h int) {
	if raster == nil || raster.Bounds().Empty() {
		return
	}
	dc.DrawImageEx(gg.ImageBufFromImage(raster), gg.DrawImageOptions{
		DstWidth:      float64(w),
		DstHeight:     float64(h),
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

func drawOverlay(dc *gg.Context, s editor.Snapshot, export bool) error {
	var errs []error
	errs = append(errs, drawMask(dc, s.Frame, float64(s.ViewW), float64(s.ViewH)))
	errs = append(errs, drawBorder(dc, s.Frame))
	for _, d := range s.Dots {
		errs = append(errs, drawDot(dc, d))
	}
	for i, l := range s.Lines {
		a, b := annotation.Segment(l, s.Frame)
		switch {
		case export:
			errs = append(errs, strokeSegment(dc, a, b, LineColor, ExportLineWidth))
		case i == s.Selection:
			errs = append(errs, drawGlow(dc, a, b))
			errs = append(errs, strokeSegment(dc, a, b, SelectedColor, SelectedLineWidth))
		default:
			errs = append(errs, strokeSegment(dc, a, b, LineColor, LineWidth))
		}
	}
	return errors.Join(errs...)
}

// drawMask darkens the four bands around the frame.
func drawMask(dc *gg.Context, f frame.Frame, w, h float64) error {
	dc.SetRGBA(0, 0, 0, MaskAlpha)
	bands := [][4]float64{
		{0, 0, w, f.Y},
		{0, f.Bottom(), w, h - f.Bottom()},
		{0, f.Y, f.X, f.H},
		{f.Right(), f.Y, w - f.Right(), f.H},
	}
	drawn := false
	for _, r := range bands {
		if r[2] <= 0 || r[3] <= 0 {
			continue
		}
		dc.DrawRectangle(r[0], r[1], r[2], r[3])
		drawn = true
	}
	if !drawn {
		return nil
	}
	return dc.Fill()
}

// drawBorder strokes the frame outline inside its edges.
func drawBorder(dc *gg.Context, f frame.Frame) error {
	if f.W <= BorderWidth || f.H <= BorderWidth {
		return nil
	}
	inset := BorderWidth / 2
	dc.SetRGBA(1, 1, 1, BorderAlpha)
	dc.SetLineWidth(BorderWidth)
	dc.DrawRectangle(f.X+inset, f.Y+inset, f.W-BorderWidth, f.H-BorderWidth)
	return dc.Stroke()
}

func drawDot(dc *gg.Context, d annotation.Dot) error {
	dc.SetHexColor(DotColor)
	dc.DrawCircle(d.X, d.Y, DotRadius)
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(DotOutlineWidth)
	dc.DrawCircle(d.X, d.Y, DotRadius)
	return dc.Stroke()
}

func strokeSegment(dc *gg.Context, a, b frame.Point, color string, width float64) error {
	dc.SetHexColor(color)
	dc.SetLineWidth(width)
	dc.DrawLine(a.X, a.Y, b.X, b.Y)
	return dc.Stroke()
}

// drawGlow strokes the segment into a scratch layer around its bounding box,
// blurs it and draws the halo back under the crisp stroke.
func drawGlow(dc *gg.Context, a, b frame.Point) error {
	pad := math.Ceil(3*GlowSigma + SelectedLineWidth)
	minX, minY := math.Floor(math.Min(a.X, b.X)-pad), math.Floor(math.Min(a.Y, b.Y)-pad)
	maxX, maxY := math.Ceil(math.Max(a.X, b.X)+pad), math.Ceil(math.Max(a.Y, b.Y)+pad)
	w, h := int(maxX-minX), int(maxY-minY)
	if w <= 0 || h <= 0 {
		return nil
	}
	layer := gg.NewContext(w, h)
	defer layer.Close()
	layer.SetHexColor(SelectedColor)
	layer.SetLineWidth(SelectedLineWidth * 2)
	layer.DrawLine(a.X-minX, a.Y-minY, b.X-minX, b.Y-minY)
	if err := layer.Stroke(); err != nil {
		return fmt.Errorf("glow stroke: %w", err)
	}
	if err := layer.FlushGPU(); err != nil {
		return fmt.Errorf("glow flush: %w", err)
	}
	halo := imaging.Blur(layer.Image(), GlowSigma)
	dc.DrawImage(gg.ImageBufFromImage(halo), minX, minY)
	return nil
}

func toRGBA(dc *gg.Context) (*image.RGBA, error) {
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	if img, ok := dc.Image().(*image.RGBA); ok {
		return img, nil
	}
	src := dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out, nil
}
