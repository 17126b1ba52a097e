package viewport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("viewport: invalid config")

// NavigationConfig controls the built-in CameraNavigator.
type NavigationConfig struct {
	WheelZoomMultiplier float64 `yaml:"wheel_zoom_multiplier" toml:"wheel_zoom_multiplier"`
	PanRequiresClick    bool    `yaml:"pan_requires_click" toml:"pan_requires_click"`
	EdgeScroll          bool    `yaml:"edge_scroll" toml:"edge_scroll"`
	ArrowKeysPan        bool    `yaml:"arrow_keys_pan" toml:"arrow_keys_pan"`
	ZoomTweenSeconds    float64 `yaml:"zoom_tween_seconds" toml:"zoom_tween_seconds"`
}

// Config describes a viewport. The zero value is not valid; start from
// DefaultConfig or LoadConfig.
type Config struct {
	Width         int              `yaml:"width" toml:"width"`
	Height        int              `yaml:"height" toml:"height"`
	View          string           `yaml:"view" toml:"view"`
	MinZoom       float64          `yaml:"min_zoom" toml:"min_zoom"`
	MaxZoom       float64          `yaml:"max_zoom" toml:"max_zoom"`
	DoubleClickMS int              `yaml:"double_click_ms" toml:"double_click_ms"`
	ScreenshotDir string           `yaml:"screenshot_dir" toml:"screenshot_dir"`
	Debug         bool             `yaml:"debug" toml:"debug"`
	LogLevel      string           `yaml:"log_level" toml:"log_level"`
	Navigation    NavigationConfig `yaml:"navigation" toml:"navigation"`
}

// DefaultConfig returns a top view of 800x600 with the standard navigation
// settings.
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        600,
		View:          ViewTop.String(),
		MinZoom:       defaultMinZoom,
		MaxZoom:       defaultMaxZoom,
		DoubleClickMS: int(defaultDoubleClickInterval / time.Millisecond),
		ScreenshotDir: "screenshots",
		LogLevel:      "info",
		Navigation: NavigationConfig{
			WheelZoomMultiplier: 1.4,
			PanRequiresClick:    true,
		},
	}
}

// LoadConfig reads a config file, choosing the decoder by extension
// (.yaml, .yml, or .toml). Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the given format ("yaml", "yml", or "toml")
// over DefaultConfig and validates the result. Unknown keys are errors.
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch format {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	case "toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for values the viewport cannot use.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if _, err := ParseView(c.View); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom {
		return fmt.Errorf("%w: zoom range [%g, %g]", ErrInvalidConfig, c.MinZoom, c.MaxZoom)
	}
	if c.DoubleClickMS < 0 {
		return fmt.Errorf("%w: negative double_click_ms %d", ErrInvalidConfig, c.DoubleClickMS)
	}
	if c.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
		}
	}
	if c.Navigation.WheelZoomMultiplier <= 1 {
		return fmt.Errorf("%w: wheel_zoom_multiplier must be greater than 1, got %g",
			ErrInvalidConfig, c.Navigation.WheelZoomMultiplier)
	}
	if c.Navigation.ZoomTweenSeconds < 0 {
		return fmt.Errorf("%w: negative zoom_tween_seconds %g", ErrInvalidConfig, c.Navigation.ZoomTweenSeconds)
	}
	return nil
}

// DoubleClick returns the double-click interval.
func (c Config) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}
