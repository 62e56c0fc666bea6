package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/soocke/layout-lens-go/domain/frame"
)

// Config holds runtime configuration for the editor, capture and export.
// Fields may be loaded from a JSON or YAML file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug" yaml:"debug"`

	// Editor
	DefaultRatio string `json:"default_ratio" yaml:"default_ratio"`
	DefaultMode  string `json:"default_mode" yaml:"default_mode"`

	// Window and render loop
	TickMS       int `json:"tick_ms" yaml:"tick_ms"`
	WindowWidth  int `json:"window_width" yaml:"window_width"`
	WindowHeight int `json:"window_height" yaml:"window_height"`

	// Capture
	PreferredSource   string `json:"preferred_source" yaml:"preferred_source"`
	ImageDir          string `json:"image_dir" yaml:"image_dir"`
	CaptureIntervalMS int    `json:"capture_interval_ms" yaml:"capture_interval_ms"`

	// Export
	ExportDir         string `json:"export_dir" yaml:"export_dir"`
	ExportName        string `json:"export_name" yaml:"export_name"`
	ExportCropToFrame bool   `json:"export_crop_to_frame" yaml:"export_crop_to_frame"`
	PresentExport     bool   `json:"present_export" yaml:"present_export"`

	OverlayCacheSize int `json:"overlay_cache_size" yaml:"overlay_cache_size"`
}

var validModes = map[string]bool{"dot": true, "vertical": true, "horizontal": true, "slant": true, "select": true}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		DefaultRatio:      "1",
		DefaultMode:       "dot",
		TickMS:            33,
		WindowWidth:       1000,
		WindowHeight:      800,
		PreferredSource:   "screen",
		ImageDir:          "",
		CaptureIntervalMS: 100,
		ExportDir:         defaultExportDir(),
		ExportName:        "viewfinder.png",
		ExportCropToFrame: false,
		PresentExport:     true,
		OverlayCacheSize:  8,
	}
}

func defaultExportDir() string {
	if xdg.UserDirs.Pictures != "" {
		return xdg.UserDirs.Pictures
	}
	return os.TempDir()
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("layout-lens", "config.json"))
}

// Ratio evaluates DefaultRatio.
func (c *Config) Ratio() float64 {
	r, err := frame.ParseRatio(c.DefaultRatio)
	if err != nil {
		return 1
	}
	return r
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if _, err := frame.ParseRatio(c.DefaultRatio); err != nil {
		c.DefaultRatio = "1"
	}
	c.DefaultMode = strings.ToLower(strings.TrimSpace(c.DefaultMode))
	if !validModes[c.DefaultMode] {
		c.DefaultMode = "dot"
	}
	if c.TickMS <= 0 {
		c.TickMS = 33
	}
	if c.TickMS < 10 {
		c.TickMS = 10
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = 1000
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = 800
	}
	if c.CaptureIntervalMS <= 0 {
		c.CaptureIntervalMS = 100
	}
	if c.ExportDir == "" {
		c.ExportDir = defaultExportDir()
	}
	c.ExportName = filepath.Base(strings.TrimSpace(c.ExportName))
	if c.ExportName == "" || c.ExportName == "." || c.ExportName == string(filepath.Separator) {
		c.ExportName = "viewfinder.png"
	}
	if !strings.EqualFold(filepath.Ext(c.ExportName), ".png") {
		c.ExportName += ".png"
	}
	if c.OverlayCacheSize <= 0 {
		c.OverlayCacheSize = 8
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load attempts to read configuration from the given JSON or YAML file path,
// chosen by extension. If the file does not exist it returns DefaultConfig().
// On decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path, in YAML when the
// extension asks for it and JSON otherwise.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
