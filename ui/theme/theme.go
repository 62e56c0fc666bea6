package theme

// Viewfinder styling: the palettes for light and dark chrome around the
// preview canvas and the ttk styles the views reference by name.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Scheme holds the resolved colors of one mode. Guide is the accent used
// for active controls; it matches the color lines are drawn in.
type Scheme struct {
	Window   string
	Canvas   string
	Guide    string
	GuideFg  string
	Danger   string
	DangerFg string
	Notice   string
	NoticeFg string
	Text     string
}

var (
	light = Scheme{
		Window:   "#eceff1",
		Canvas:   "#000000",
		Guide:    "#1b8f3a",
		GuideFg:  "#ffffff",
		Danger:   "#c62828",
		DangerFg: "#ffffff",
		Notice:   "#fff3cd",
		NoticeFg: "#5c4400",
		Text:     "#1c2329",
	}
	dark = Scheme{
		Window:   "#1c1f22",
		Canvas:   "#000000",
		Guide:    "#00c853",
		GuideFg:  "#0b0d0e",
		Danger:   "#ef5350",
		DangerFg: "#0b0d0e",
		Notice:   "#4a3b00",
		NoticeFg: "#ffe082",
		Text:     "#e6e9eb",
	}
)

// Style names used with Style(...).
const (
	StylePrimaryButton = "guide.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleAccentLabel   = "ratio.TLabel"
	StyleNoticeLabel   = "notice.TLabel"
)

var darkMode bool

// CurrentScheme returns the colors of the active mode.
func CurrentScheme() Scheme {
	if darkMode {
		return dark
	}
	return light
}

// InitStyles applies the styles for the active mode.
func InitStyles() { apply(CurrentScheme()) }

// ToggleDark flips between light and dark chrome and returns the new mode.
func ToggleDark() bool {
	darkMode = !darkMode
	apply(CurrentScheme())
	return darkMode
}

func apply(p Scheme) {
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.Window))

	StyleConfigure(StylePrimaryButton, Background(p.Guide), Foreground(p.GuideFg), Padding("4p 3p"))
	StyleConfigure(StyleDangerButton, Background(p.Danger), Foreground(p.DangerFg), Padding("4p 3p"))
	StyleConfigure(StyleAccentLabel, Foreground(p.Guide), Background(p.Window), Padding("2p 1p"))
	StyleConfigure(StyleNoticeLabel, Foreground(p.NoticeFg), Background(p.Notice), Padding("4p 2p"), Relief("flat"))
}
