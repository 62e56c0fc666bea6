package view

import (
	"fmt"
	"log/slog"

	"github.com/soocke/layout-lens-go/domain/export"
	"github.com/soocke/layout-lens-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

const (
	maxExportViewW = 1200
	maxExportViewH = 800
)

// ExportWindow shows an exported snapshot in its own window with actions to
// keep it on disk or dismiss it. It implements export.Presenter.
type ExportWindow struct {
	logger *slog.Logger
	onSave func(png []byte) (string, error)

	win   *ToplevelWidget
	label *LabelWidget
	info  *LabelWidget
	photo *Img
	data  []byte
}

var _ export.Presenter = (*ExportWindow)(nil)

// NewExportWindow creates the presenter. onSave persists the shown snapshot;
// when nil the Save button is omitted.
func NewExportWindow(onSave func(png []byte) (string, error), logger *slog.Logger) *ExportWindow {
	return &ExportWindow{onSave: onSave, logger: logger}
}

// Present opens (or reuses) the window and shows png, scaled down to fit the
// window bounds. The unscaled bytes are kept for Save. Any Tk failure is
// reported as export.ErrPresentUnavailable so the caller writes a file.
func (v *ExportWindow) Present(png []byte) (err error) {
	if v == nil || len(png) == 0 {
		return export.ErrPresentUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			if v.logger != nil {
				v.logger.Error("export window", "error", r)
			}
			v.destroy()
			err = fmt.Errorf("%w: %v", export.ErrPresentUnavailable, r)
		}
	}()
	shown := png
	img, derr := images.DecodePNG(png)
	if derr != nil {
		return fmt.Errorf("%w: %v", export.ErrPresentUnavailable, derr)
	}
	if b := img.Bounds(); b.Dx() > maxExportViewW || b.Dy() > maxExportViewH {
		shown = images.EncodePNG(images.ScaleToFit(img, maxExportViewW, maxExportViewH))
	}
	if v.win == nil {
		v.build()
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(shown))
	v.label.Configure(Image(v.photo))
	v.info.Configure(Txt(""))
	v.data = png
	return nil
}

func (v *ExportWindow) build() {
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Snapshot")
	v.win = win
	WmAttributes(win.Window, "-topmost", 1)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))

	v.label = win.Label(Borderwidth(1), Relief("sunken"))
	Grid(v.label, Row(0), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))

	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Sticky("we"))
	col := 0
	if v.onSave != nil {
		save := win.Button(Txt("Save [Enter]"), Command(v.save))
		Grid(save, In(controls), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
		Bind(win, "<Return>", Command(v.save))
	}
	closeBtn := win.Button(Txt("Close [Esc]"), Command(v.destroy))
	Grid(closeBtn, In(controls), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.info = win.Label(Txt(""), Anchor("w"))
	Grid(v.info, In(controls), Row(0), Column(col+1), Sticky("we"), Padx("0.4m"))
	Bind(win, "<Escape>", Command(v.destroy))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.destroy)
}

func (v *ExportWindow) save() {
	if v.onSave == nil || len(v.data) == 0 {
		return
	}
	path, err := v.onSave(v.data)
	if err != nil {
		if v.logger != nil {
			v.logger.Error("save snapshot", "error", err)
		}
		v.info.Configure(Txt("Save failed"))
		return
	}
	v.info.Configure(Txt("Saved to " + path))
}

func (v *ExportWindow) destroy() {
	if v.win != nil {
		func() { defer func() { _ = recover() }(); Destroy(v.win) }()
		v.win = nil
	}
	if v.photo != nil {
		func() { defer func() { _ = recover() }(); v.photo.Delete() }()
		v.photo = nil
	}
	v.data = nil
}
