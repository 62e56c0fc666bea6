package compositor

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/soocke/layout-lens-go/domain/annotation"
	"github.com/soocke/layout-lens-go/domain/editor"
	"github.com/soocke/layout-lens-go/domain/frame"
)

var testFrame = frame.Frame{X: 100, Y: 100, W: 400, H: 400, Ratio: 1}

func newSnapshot(lines []annotation.Line, dots []annotation.Dot, sel int) editor.Snapshot {
	return editor.Snapshot{ViewW: 600, ViewH: 600, Frame: testFrame, Lines: lines, Dots: dots, Selection: sel, Revision: 1}
}

func newTestCompositor(t *testing.T) *Compositor {
	t.Helper()
	c, err := NewCompositor(nil, 4)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	return c
}

func TestRender_EmptyCanvas(t *testing.T) {
	c := newTestCompositor(t)
	if _, err := c.Render(editor.Snapshot{}); !errors.Is(err, ErrEmptyCanvas) {
		t.Fatalf("expected ErrEmptyCanvas, got %v", err)
	}
	if _, err := c.Capture(nil, editor.Snapshot{}); !errors.Is(err, ErrEmptyCanvas) {
		t.Fatalf("expected ErrEmptyCanvas from Capture, got %v", err)
	}
}

func TestRender_MaskAndBorder(t *testing.T) {
	c := newTestCompositor(t)
	img, err := c.Render(newSnapshot(nil, nil, editor.NoSelection))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != 600 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	for _, p := range []image.Point{{10, 10}, {590, 590}, {50, 300}, {550, 300}, {300, 50}, {300, 550}} {
		if a := img.RGBAAt(p.X, p.Y).A; a == 0 {
			t.Fatalf("mask missing at %v", p)
		}
	}
	if a := img.RGBAAt(300, 300).A; a != 0 {
		t.Fatalf("frame interior must stay transparent, alpha=%d", a)
	}
	if px := img.RGBAAt(101, 300); px.A < 200 || px.R < 200 {
		t.Fatalf("expected border at left edge, got %+v", px)
	}
}

func TestRender_Dot(t *testing.T) {
	c := newTestCompositor(t)
	img, err := c.Render(newSnapshot(nil, []annotation.Dot{{X: 250, Y: 250}}, editor.NoSelection))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	px := img.RGBAAt(250, 250)
	if px.A < 200 || px.B <= px.R {
		t.Fatalf("expected blue dot fill, got %+v", px)
	}
	if a := img.RGBAAt(250, 280).A; a != 0 {
		t.Fatalf("dot bleeds too far: alpha=%d", a)
	}
}

func TestRender_SelectedLineGlows(t *testing.T) {
	c := newTestCompositor(t)
	lines := []annotation.Line{annotation.Vertical{X: 300}}

	plain, err := c.Render(newSnapshot(lines, nil, editor.NoSelection))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if px := plain.RGBAAt(300, 300); px.A < 200 || px.G < 200 || px.B > 50 {
		t.Fatalf("expected accent line, got %+v", px)
	}
	if a := plain.RGBAAt(310, 300).A; a != 0 {
		t.Fatalf("unselected line must not glow, alpha=%d", a)
	}

	selected, err := c.Render(newSnapshot(lines, nil, 0))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if px := selected.RGBAAt(300, 300); px.B < 200 || px.G < 200 {
		t.Fatalf("expected selected color, got %+v", px)
	}
	if a := selected.RGBAAt(310, 300).A; a == 0 {
		t.Fatalf("selected line must glow")
	}
}

func TestRender_CacheByRevision(t *testing.T) {
	c := newTestCompositor(t)
	s := newSnapshot([]annotation.Line{annotation.Horizontal{Y: 200}}, nil, editor.NoSelection)
	a, err := c.Render(s)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, _ := c.Render(s)
	if a != b {
		t.Fatalf("expected cached overlay for unchanged snapshot")
	}
	s.Revision++
	d, _ := c.Render(s)
	if d == a {
		t.Fatalf("revision change must invalidate the cache")
	}
	c.Purge()
	e, _ := c.Render(s)
	if e == d {
		t.Fatalf("purge must drop cached overlays")
	}
}

func solid(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = col.R, col.G, col.B, col.A
	}
	return img
}

func TestCapture_StretchesRaster(t *testing.T) {
	c := newTestCompositor(t)
	raster := solid(60, 40, color.RGBA{R: 255, A: 255})
	img, err := c.Capture(raster, newSnapshot(nil, nil, editor.NoSelection))
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != 600 {
		t.Fatalf("export must match canvas size, got %v", img.Bounds())
	}
	if px := img.RGBAAt(300, 300); px.R < 250 || px.A != 255 {
		t.Fatalf("expected raster inside frame, got %+v", px)
	}
	if px := img.RGBAAt(590, 590); px.R > 200 || px.R < 50 {
		t.Fatalf("expected masked raster in the corner, got %+v", px)
	}
}

func TestCapture_NoRasterKeepsGeometry(t *testing.T) {
	c := newTestCompositor(t)
	s := newSnapshot([]annotation.Line{annotation.Vertical{X: 300}}, nil, 0)
	img, err := c.Capture(nil, s)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if a := img.RGBAAt(10, 10).A; a == 0 {
		t.Fatalf("mask missing without raster")
	}
	if px := img.RGBAAt(300, 300); px.G < 200 || px.B > 50 {
		t.Fatalf("export lines use the accent color, got %+v", px)
	}
	if a := img.RGBAAt(310, 300).A; a != 0 {
		t.Fatalf("export must not draw the selection glow, alpha=%d", a)
	}
}

func TestPreview_DrawsOverlayOverRaster(t *testing.T) {
	c := newTestCompositor(t)
	raster := solid(10, 10, color.RGBA{B: 255, A: 255})
	img, err := c.Preview(raster, newSnapshot([]annotation.Line{annotation.Horizontal{Y: 300}}, nil, editor.NoSelection))
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if px := img.RGBAAt(200, 200); px.B < 250 {
		t.Fatalf("expected raster, got %+v", px)
	}
	if px := img.RGBAAt(200, 300); px.G < 200 {
		t.Fatalf("expected line over raster, got %+v", px)
	}
}
