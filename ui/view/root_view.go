package view

import (
	"image"
	"log/slog"
	"strings"

	"github.com/soocke/layout-lens-go/assets"
	"github.com/soocke/layout-lens-go/config"
	"github.com/soocke/layout-lens-go/domain/editor"
	"github.com/soocke/layout-lens-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const rootColumns = 3

// Handlers are the user actions wired by the application container.
type Handlers struct {
	SelectMode  func(m editor.Mode)
	SelectRatio func(r float64)
	Delete      func()
	Capture     func()
	Switch      func()
	Settings    func()
	ToggleTheme func()
	Exit        func()
	Preview     PreviewHandlers
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Preview PreviewCanvas
	Status  StatusBar

	// Widgets
	RatioLabel  *TLabelWidget
	DeleteBtn   *TButtonWidget
	modeButtons map[string]*TButtonWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	UpdatePreview(img image.Image)
	SetActiveMode(name string)
	SetRatioLabel(text string)
	SetDeleteVisible(visible bool)
	SetNotice(text string)
	SetStatus(text string)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger, modeButtons: make(map[string]*TButtonWidget)}
}

// Build constructs the layout: mode and ratio toolbar, action row, the
// preview canvas and the status bar. Handlers are invoked on user actions.
func (rv *RootView) Build(presets []assets.RatioPreset, h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: creation modes, ratio presets and the current ratio.
	toolbar := Frame()
	Grid(toolbar, Row(0), Column(0), Columnspan(rootColumns), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	for _, m := range editor.Modes {
		m := m
		btn := TButton(Txt(modeTitle(m)), Command(func() {
			if h.SelectMode != nil {
				h.SelectMode(m)
			}
		}))
		Grid(btn, In(toolbar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		rv.modeButtons[m.String()] = btn
		col++
	}
	sep := TSeparator(Orient("vertical"))
	Grid(sep, In(toolbar), Row(0), Column(col), Sticky("ns"), Padx("1m"))
	col++
	for _, p := range presets {
		p := p
		btn := TButton(Txt(p.Label), Command(func() {
			if h.SelectRatio != nil {
				h.SelectRatio(p.Ratio)
			}
		}))
		Grid(btn, In(toolbar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
	}
	rv.RatioLabel = TLabel(Txt("Ratio: "), Style(theme.StyleAccentLabel))
	Grid(rv.RatioLabel, In(toolbar), Row(0), Column(col), Sticky("e"), Padx("0.6m"))

	// Row 1: actions.
	actions := Frame()
	Grid(actions, Row(1), Column(0), Columnspan(rootColumns), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.DeleteBtn = TButton(Txt("Delete Line [Del]"), Style(theme.StyleDangerButton), Command(orNoop(h.Delete)))
	Grid(rv.DeleteBtn, In(actions), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.SetDeleteVisible(false)
	captureBtn := TButton(Txt("Capture"), Style(theme.StylePrimaryButton), Command(orNoop(h.Capture)))
	Grid(captureBtn, In(actions), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	switchBtn := TButton(Txt("Switch Camera"), Command(orNoop(h.Switch)))
	Grid(switchBtn, In(actions), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	settingsBtn := TButton(Txt("Settings"), Command(orNoop(h.Settings)))
	Grid(settingsBtn, In(actions), Row(0), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	themeBtn := TButton(Txt("Dark/Light"), Command(orNoop(h.ToggleTheme)))
	Grid(themeBtn, In(actions), Row(0), Column(4), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Command(orNoop(h.Exit)))
	Grid(exitBtn, In(actions), Row(0), Column(5), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	if h.Delete != nil {
		Bind(App, "<KeyPress-Delete>", Command(h.Delete))
		Bind(App, "<KeyPress-BackSpace>", Command(h.Delete))
	}

	// Row 2: preview canvas, Row 3: status.
	rv.Preview = NewPreviewCanvas(2, rootColumns, h.Preview)
	rv.Status = NewStatusBar(3, rootColumns)
}

func orNoop(f func()) func() {
	if f == nil {
		return func() {}
	}
	return f
}

func modeTitle(m editor.Mode) string {
	s := m.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// UpdatePreview proxies to the preview canvas.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

// SetActiveMode highlights the button of the active mode.
func (rv *RootView) SetActiveMode(name string) {
	if rv == nil {
		return
	}
	for mode, btn := range rv.modeButtons {
		if btn == nil {
			continue
		}
		if mode == name {
			btn.Configure(Style(theme.StylePrimaryButton))
		} else {
			btn.Configure(Style("TButton"))
		}
	}
}

// SetRatioLabel updates the ratio label text.
func (rv *RootView) SetRatioLabel(text string) {
	if rv != nil && rv.RatioLabel != nil {
		rv.RatioLabel.Configure(Txt(text))
	}
}

// SetDeleteVisible enables the delete action only while a line is selected.
func (rv *RootView) SetDeleteVisible(visible bool) {
	if rv == nil || rv.DeleteBtn == nil {
		return
	}
	state := "disabled"
	if visible {
		state = "normal"
	}
	rv.DeleteBtn.Configure(State(state))
}

// SetNotice proxies to the status bar.
func (rv *RootView) SetNotice(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetNotice(text)
	}
}

// SetStatus proxies to the status bar.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(text)
	}
}
