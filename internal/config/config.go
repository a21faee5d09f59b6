package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the demo's startup settings.
type Config struct {
	Title    string       `yaml:"title"`
	Screen   ScreenConfig `yaml:"screen"`
	FPSLimit int          `yaml:"fps_limit"`
	// StateDir overrides the protected storage directory used for the state file.
	StateDir string      `yaml:"state_dir,omitempty"`
	LogLevel string      `yaml:"log_level"`
	LogoPath string      `yaml:"logo_path,omitempty"`
	Audio    AudioConfig `yaml:"audio"`
}

// ScreenConfig describes the logical screen and how it is scaled onto the window.
type ScreenConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	PixelWidth  int  `yaml:"pixel_width"`
	PixelHeight int  `yaml:"pixel_height"`
	Fullscreen  bool `yaml:"fullscreen"`
	VSync       bool `yaml:"vsync"`
}

// AudioConfig configures the audio add-on. An empty Sample plays nothing.
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Sample     string  `yaml:"sample,omitempty"`
	Volume     float64 `yaml:"volume"`
	Loop       bool    `yaml:"loop"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Title: "Hardware3D Assetless Demo",
		Screen: ScreenConfig{
			Width:       1280,
			Height:      720,
			PixelWidth:  2,
			PixelHeight: 2,
			Fullscreen:  false,
			VSync:       true,
		},
		FPSLimit: 120,
		LogLevel: "info",
		Audio: AudioConfig{
			SampleRate: 44100,
			Volume:     1,
			Loop:       true,
		},
	}
}

// Load reads a YAML config from path on top of Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps out-of-range values to something the hosts can run with.
func (c *Config) Normalize() {
	d := Default()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		c.Screen.Width, c.Screen.Height = d.Screen.Width, d.Screen.Height
	}
	c.Screen.PixelWidth = clamp(c.Screen.PixelWidth, 1, 8)
	c.Screen.PixelHeight = clamp(c.Screen.PixelHeight, 1, 8)
	if c.FPSLimit < 0 {
		c.FPSLimit = 0
	}
	if c.FPSLimit > 1000 {
		c.FPSLimit = 1000
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = d.Audio.SampleRate
	}
	if c.Audio.Volume < 0 {
		c.Audio.Volume = 0
	}
	if c.Audio.Volume > 1 {
		c.Audio.Volume = 1
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		c.LogLevel = d.LogLevel
	}
}

// LayerSize is the size of the pixel layer: the screen divided by the pixel size.
func (c Config) LayerSize() (int, int) {
	return c.Screen.Width / c.Screen.PixelWidth, c.Screen.Height / c.Screen.PixelHeight
}

// ParseLevel maps debug|info|warn|error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
