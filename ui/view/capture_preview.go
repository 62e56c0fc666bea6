package view

import (
	"image"

	"github.com/soocke/layout-lens-go/ui/images"
	"github.com/soocke/layout-lens-go/ui/model"
	"github.com/soocke/layout-lens-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PreviewHandlers receives pointer and size events from the preview canvas,
// in canvas pixel coordinates.
type PreviewHandlers struct {
	Press   func(x, y int)
	Motion  func(x, y int)
	Release func()
	Resize  func(w, h int)
}

// PreviewCanvas shows the composed viewfinder and reports pointer input.
type PreviewCanvas interface {
	UpdatePreview(img image.Image)
	Reset()
}

type previewCanvas struct {
	container *FrameWidget
	label     *LabelWidget
	photo     *Img // last Tk photo; deleted before replacement
	w, h      int
}

// NewPreviewCanvas creates the canvas in row of the root grid, spanning
// columns. The row and column are given weight so the canvas follows the
// window size.
func NewPreviewCanvas(row, columns int, h PreviewHandlers) PreviewCanvas {
	container := Frame(Borderwidth(0), Background(theme.CurrentScheme().Canvas))
	Grid(container, Row(row), Column(0), Columnspan(columns), Sticky("nsew"))
	GridRowConfigure(App, row, Weight(1))
	for c := 0; c < columns; c++ {
		GridColumnConfigure(App, c, Weight(1))
	}

	placeholder := image.NewRGBA(image.Rect(0, 0, 1, 1))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(0), Anchor("nw"), Background(theme.CurrentScheme().Canvas))
	Pack(label, In(container), Fill("both"), Expand(true))

	v := &previewCanvas{container: container, label: label, photo: photo}
	if h.Press != nil {
		Bind(label, "<ButtonPress-1>", Command(func(e *Event) { h.Press(e.X, e.Y) }))
	}
	if h.Motion != nil {
		Bind(label, "<B1-Motion>", Command(func(e *Event) { h.Motion(e.X, e.Y) }))
	}
	if h.Release != nil {
		Bind(label, "<ButtonRelease-1>", Command(func(e *Event) { h.Release() }))
	}
	Bind(container, "<Configure>", Command(func(e *Event) {
		w, hgt, ok := model.ParseSize(e.Width, e.Height)
		if !ok || (w == v.w && hgt == v.h) {
			return
		}
		v.w, v.h = w, hgt
		if h.Resize != nil {
			h.Resize(w, hgt)
		}
	}))
	return v
}

// UpdatePreview replaces the shown image. The composed image already has the
// canvas size so no scaling happens here.
func (v *previewCanvas) UpdatePreview(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if len(pngBytes) == 0 {
		return
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.photo))
}

func (v *previewCanvas) Reset() {
	if v == nil || v.label == nil {
		return
	}
	w, h := v.w, v.h
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	placeholder := image.NewRGBA(image.Rect(0, 0, w, h))
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(images.EncodePNG(placeholder)))
	v.label.Configure(Image(v.photo))
}
