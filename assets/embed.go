package assets

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/soocke/layout-lens-go/domain/frame"
)

// RatiosYAML contains the raw toolbar ratio presets.
//
//go:embed ratios.yaml
var RatiosYAML []byte

// RatioPreset is one toolbar ratio button.
type RatioPreset struct {
	Label string
	Ratio float64
}

type presetFile struct {
	Presets []struct {
		Label string `yaml:"label"`
		Ratio string `yaml:"ratio"`
	} `yaml:"presets"`
}

// RatioPresets decodes the embedded presets.
func RatioPresets() ([]RatioPreset, error) {
	return ParseRatioPresets(RatiosYAML)
}

// ParseRatioPresets decodes a presets document. Every ratio is evaluated with
// frame.ParseRatio.
func ParseRatioPresets(data []byte) ([]RatioPreset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("ratio presets are empty")
	}
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode ratio presets: %w", err)
	}
	out := make([]RatioPreset, 0, len(f.Presets))
	for _, p := range f.Presets {
		r, err := frame.ParseRatio(p.Ratio)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Label, err)
		}
		label := p.Label
		if label == "" {
			label = frame.RatioLabel(r)
		}
		out = append(out, RatioPreset{Label: label, Ratio: r})
	}
	return out, nil
}
