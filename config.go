package starship

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full demo configuration. It is loaded from YAML or TOML by
// LoadConfig; fields absent from the file keep their DefaultConfig values.
type Config struct {
	Window WindowConfig `yaml:"window" toml:"window"`
	Scene  SceneConfig  `yaml:"scene" toml:"scene"`
	Tuning Tuning       `yaml:"tuning" toml:"tuning"`
	Audio  AudioConfig  `yaml:"audio" toml:"audio"`
	Debug  DebugConfig  `yaml:"debug" toml:"debug"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// WindowConfig controls the canvas and the window around it.
type WindowConfig struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Scale  int    `yaml:"scale" toml:"scale"`
	Title  string `yaml:"title" toml:"title"`
	TPS    int    `yaml:"tps" toml:"tps"`
	Text   bool   `yaml:"text" toml:"text"` // load a font and draw the HUD text
}

// SceneConfig controls scene contents and scripted runs.
type SceneConfig struct {
	Stars         int    `yaml:"stars" toml:"stars"`
	Seed          int64  `yaml:"seed" toml:"seed"`
	Script        string `yaml:"script" toml:"script"` // test script; the game exits when it finishes
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// AudioConfig controls the engine sounds.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"` // 0 to 1
}

// DebugConfig toggles debug overlays and logging.
type DebugConfig struct {
	Enabled    bool `yaml:"enabled" toml:"enabled"`
	ShowBounds bool `yaml:"show_bounds" toml:"show_bounds"`
	ShowFPS    bool `yaml:"show_fps" toml:"show_fps"`
	LogFrames  bool `yaml:"log_frames" toml:"log_frames"`
}

// LogConfig configures NewLogger.
type LogConfig struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
}

// DefaultConfig returns an 800x600 window at 60 ticks per second with 16
// stars, HUD text and quiet audio.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Scale:  1,
			Title:  "Starship",
			TPS:    60,
			Text:   true,
		},
		Scene: SceneConfig{
			Stars: 16,
			Seed:  1,
		},
		Tuning: DefaultTuning(),
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads path over DefaultConfig. The format is picked from the
// extension: .yaml and .yml are YAML, .toml is TOML.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
	default:
		return cfg, errors.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	return cfg, cfg.Validate()
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	w, t := c.Window, c.Tuning
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return errors.Errorf("config: window size %dx%d must be positive", w.Width, w.Height)
	case w.Scale <= 0:
		return errors.Errorf("config: window scale %d must be positive", w.Scale)
	case w.TPS <= 0:
		return errors.Errorf("config: tps %d must be positive", w.TPS)
	case c.Scene.Stars < 0:
		return errors.Errorf("config: star count %d is negative", c.Scene.Stars)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return errors.Errorf("config: audio volume %g outside [0, 1]", c.Audio.Volume)
	case t.TickInterval <= 0 || t.TailInterval <= 0:
		return errors.New("config: tuning intervals must be positive")
	case t.PowerUpTimeout <= 0:
		return errors.New("config: power-up timeout must be positive")
	case abs(t.PowerUpScale) < minScale:
		return errors.Wrapf(ErrDegenerateScale, "config: power-up scale %g", t.PowerUpScale)
	case t.DecelFactor <= 0 || t.DecelFactor >= 1:
		return errors.Errorf("config: decel factor %g outside (0, 1)", t.DecelFactor)
	case t.MomentumSeed <= 0 || t.Transition <= 0 || t.AccelStep <= 0:
		return errors.New("config: momentum seed, transition and accel step must be positive")
	case t.TailLimit <= 0 || t.TailStep <= 0:
		return errors.New("config: tail limit and step must be positive")
	case t.BodyMinHeight <= 0 || t.BodyMaxHeight < t.BodyMinHeight:
		return errors.Errorf("config: body height limits [%g, %g] invalid", t.BodyMinHeight, t.BodyMaxHeight)
	}
	return nil
}
