package presenter

import (
	"github.com/soocke/layout-lens-go/domain/frame"
	"github.com/soocke/layout-lens-go/ui/model"
)

// PointerEditor is the editor surface driven by pointer and resize events.
type PointerEditor interface {
	PointerDown(p frame.Point)
	PointerMove(p frame.Point) bool
	PointerUp()
	Resize(w, h int)
	DeleteSelected() bool
	DeleteVisible() bool
}

// DeleteView shows or hides the delete action.
type DeleteView interface {
	SetDeleteVisible(bool)
}

// PointerPresenter forwards canvas events to the editor and keeps the delete
// action in sync with the selection.
type PointerPresenter struct {
	editor   PointerEditor
	viewport *model.ViewportModel
	view     DeleteView
}

func NewPointerPresenter(editor PointerEditor, viewport *model.ViewportModel, view DeleteView) *PointerPresenter {
	return &PointerPresenter{editor: editor, viewport: viewport, view: view}
}

// Press handles a primary button press at canvas pixel (x, y).
func (p *PointerPresenter) Press(x, y int) {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.PointerDown(frame.Pt(float64(x), float64(y)))
	p.syncDelete()
}

// Motion handles pointer motion with the primary button held.
func (p *PointerPresenter) Motion(x, y int) {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.PointerMove(frame.Pt(float64(x), float64(y)))
}

// Release ends a drag.
func (p *PointerPresenter) Release() {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.PointerUp()
}

// Resize records a new canvas size and refits the frame when it changed.
func (p *PointerPresenter) Resize(w, h int) {
	if p == nil || p.editor == nil {
		return
	}
	if p.viewport != nil && !p.viewport.Set(w, h) {
		return
	}
	p.editor.Resize(w, h)
}

// Delete removes the selected line.
func (p *PointerPresenter) Delete() {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.DeleteSelected()
	p.syncDelete()
}

func (p *PointerPresenter) syncDelete() {
	if p.view != nil {
		p.view.SetDeleteVisible(p.editor.DeleteVisible())
	}
}
