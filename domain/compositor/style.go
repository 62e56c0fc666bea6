package compositor

// Overlay palette and metrics, in viewport pixels.
const (
	MaskAlpha = 0.45

	BorderWidth = 3.0
	BorderAlpha = 0.95

	DotRadius       = 8.0
	DotOutlineWidth = 2.0
	DotColor        = "#4da3ff"

	LineColor         = "#00ff00"
	LineWidth         = 3.0
	SelectedColor     = "#00ffff"
	SelectedLineWidth = 4.0
	ExportLineWidth   = 4.0

	// GlowSigma is the gaussian sigma of the halo behind the selected line.
	GlowSigma = 7.0
)
