package presenter

import (
	"log/slog"

	"github.com/soocke/layout-lens-go/domain/editor"
	"github.com/soocke/layout-lens-go/domain/frame"
)

// ToolbarEditor is the editor surface driven by the toolbar.
type ToolbarEditor interface {
	SetMode(m editor.Mode)
	Mode() editor.Mode
	SetRatio(r float64)
	RatioLabel() string
}

// ToolbarView reflects the active mode and ratio.
type ToolbarView interface {
	SetActiveMode(name string)
	SetRatioLabel(text string)
}

// ToolbarPresenter applies mode and ratio selections.
type ToolbarPresenter struct {
	editor ToolbarEditor
	view   ToolbarView
	notice Notifier
	logger *slog.Logger
}

func NewToolbarPresenter(editor ToolbarEditor, view ToolbarView, notice Notifier, logger *slog.Logger) *ToolbarPresenter {
	return &ToolbarPresenter{editor: editor, view: view, notice: notice, logger: logger}
}

// SelectMode switches the creation mode.
func (p *ToolbarPresenter) SelectMode(m editor.Mode) {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.SetMode(m)
	p.Sync()
}

// SelectRatio applies a preset ratio.
func (p *ToolbarPresenter) SelectRatio(r float64) {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.SetRatio(r)
	p.Sync()
}

// SelectRatioText evaluates a typed ratio such as "4/3" and applies it.
// Invalid input leaves the ratio unchanged and raises a notice.
func (p *ToolbarPresenter) SelectRatioText(s string) bool {
	if p == nil || p.editor == nil {
		return false
	}
	r, err := frame.ParseRatio(s)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("ratio input", "error", err)
		}
		if p.notice != nil {
			p.notice.Show("Invalid ratio: " + s)
		}
		return false
	}
	p.SelectRatio(r)
	return true
}

// Sync pushes the editor state to the view.
func (p *ToolbarPresenter) Sync() {
	if p == nil || p.editor == nil || p.view == nil {
		return
	}
	p.view.SetActiveMode(p.editor.Mode().String())
	p.view.SetRatioLabel("Ratio: " + p.editor.RatioLabel())
}
