package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/layout-lens-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsPanel is the settings window: a custom ratio entry plus capture
// and export options written back into *config.Config on apply.
type SettingsPanel interface {
	OpenOrFocus()
	ApplyChanges()
}

type settingsPanel struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	onRatio func(text string) bool

	win     *ToplevelWidget
	widgets map[string]*TextWidget // keyed by config field id
}

// NewSettingsPanel creates the panel bound to cfg. onRatio applies a typed
// ratio to the editor and reports whether it was valid.
func NewSettingsPanel(cfg *config.Config, cfgPath string, onRatio func(string) bool, logger *slog.Logger) SettingsPanel {
	return &settingsPanel{cfg: cfg, cfgPath: cfgPath, onRatio: onRatio, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *settingsPanel) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Settings")
	v.win = win
	GridColumnConfigure(win.Window, 1, Weight(1))

	c := v.cfg
	row := 0
	makeRow := func(id, label, value string) {
		lbl := win.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(32))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("ratio", "Ratio (e.g. 4/3, 1.5, golden)", c.DefaultRatio)
	makeRow("preferredSource", "Preferred Source (screen, pattern, images)", c.PreferredSource)
	makeRow("imageDir", "Image Directory", c.ImageDir)
	makeRow("captureIntervalMS", "Capture Interval ms", strconv.Itoa(c.CaptureIntervalMS))
	makeRow("exportDir", "Export Directory", c.ExportDir)
	makeRow("exportName", "Export Name", c.ExportName)
	makeRow("exportCrop", "Crop Export To Frame (true/false)", strconv.FormatBool(c.ExportCropToFrame))
	makeRow("presentExport", "Show Export Window (true/false)", strconv.FormatBool(c.PresentExport))

	apply := win.Button(Txt("Apply Changes"), Command(v.ApplyChanges))
	Grid(apply, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Bind(win, "<Escape>", Command(v.destroy))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.destroy)
}

func (v *settingsPanel) destroy() {
	if v.win != nil {
		func() { defer func() { _ = recover() }(); Destroy(v.win) }()
		v.win = nil
	}
	v.widgets = make(map[string]*TextWidget)
}

func (v *settingsPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

// ApplyChanges parses the form into the config, applies the ratio to the
// editor and persists the result. Unparseable fields keep their old value.
func (v *settingsPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignString := func(id string, dst *string) {
		if s, ok := v.text(id); ok {
			*dst = s
		}
	}
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, err := strconv.Atoi(s); err == nil {
				*dst = i
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := v.text(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	if s, ok := v.text("ratio"); ok && s != "" && s != cfg.DefaultRatio {
		if v.onRatio == nil || v.onRatio(s) {
			cfg.DefaultRatio = s
		}
	}
	assignString("preferredSource", &cfg.PreferredSource)
	assignString("imageDir", &cfg.ImageDir)
	assignInt("captureIntervalMS", &cfg.CaptureIntervalMS)
	assignString("exportDir", &cfg.ExportDir)
	assignString("exportName", &cfg.ExportName)
	assignBool("exportCrop", &cfg.ExportCropToFrame)
	assignBool("presentExport", &cfg.PresentExport)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if v.cfgPath == "" {
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
