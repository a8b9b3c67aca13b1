// Package app wires a loaded cartridge, the system bus, and a graphics
// backend into a runnable emulator, and loads the JSON configuration
// that picks the backend and window geometry.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the settings this core's components need at startup.
// Audio and savestate settings are intentionally absent: this core has
// no audio synthesis and no savestate machinery to configure.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Input  InputConfig  `json:"input"`
	Debug  DebugConfig  `json:"debug"`
	Paths  PathsConfig  `json:"paths"`

	configPath string
	loaded     bool
}

// WindowConfig describes the on-screen window, sized as a multiple of
// the native 256x240 NES frame.
type WindowConfig struct {
	Fullscreen bool `json:"fullscreen"`
	Scale      int  `json:"scale"`
}

// VideoConfig describes rendering backend choice and post-processing.
type VideoConfig struct {
	VSync      bool    `json:"vsync"`
	Filter     string  `json:"filter"`  // "nearest", "linear"
	Backend    string  `json:"backend"` // "ebitengine", "headless", "terminal"
	Brightness float32 `json:"brightness"`
	Contrast   float32 `json:"contrast"`
	Saturation float32 `json:"saturation"`

	// EmphasizeRed/Green/Blue mirror the NES PPUMASK color-emphasis bits
	// (see graphics.VideoProcessor.SetEmphasis); a ROM-specific config can
	// set these to reproduce a game's intended tint without this core
	// decoding $2001 itself.
	EmphasizeRed   bool `json:"emphasize_red"`
	EmphasizeGreen bool `json:"emphasize_green"`
	EmphasizeBlue  bool `json:"emphasize_blue"`
}

// InputConfig describes the player-1 keyboard mapping.
type InputConfig struct {
	Player1Keys KeyMapping `json:"player1_keys"`
}

// KeyMapping names a keyboard key for each NES controller button. It is
// loaded and saved with the config file but not applied: the Ebitengine
// backend's key bindings are fixed in its buttonMappings table.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// DebugConfig controls optional diagnostic output.
type DebugConfig struct {
	ShowFPS       bool   `json:"show_fps"`
	EnableLogging bool   `json:"enable_logging"`
	LogLevel      string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
}

// PathsConfig names directories the application reads or writes.
type PathsConfig struct {
	ROMs   string `json:"roms"`
	Config string `json:"config"`
	Logs   string `json:"logs"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{Fullscreen: false, Scale: 2},
		Video: VideoConfig{
			VSync:      true,
			Filter:     "nearest",
			Backend:    "ebitengine",
			Brightness: 1.0,
			Contrast:   1.0,
			Saturation: 1.0,
		},
		Input: InputConfig{
			Player1Keys: KeyMapping{
				Up: "W", Down: "S", Left: "A", Right: "D",
				A: "J", B: "K", Start: "Return", Select: "Space",
			},
		},
		Debug: DebugConfig{LogLevel: "INFO"},
		Paths: PathsConfig{ROMs: "./roms", Config: "./config", Logs: "./logs"},
	}
}

// LoadFromFile loads configuration from a JSON file, writing out the
// defaults if no file exists yet.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	c.validate()
	if err := c.createDirectories(); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile writes the configuration to path as indented JSON.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	c.configPath = path
	return nil
}

// validate resets out-of-range values (Scale to 1, the video levels to
// their 1.0 defaults) rather than failing startup over a malformed config
// file.
func (c *Config) validate() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Video.Brightness < 0.1 || c.Video.Brightness > 3.0 {
		c.Video.Brightness = 1.0
	}
	if c.Video.Contrast < 0.1 || c.Video.Contrast > 3.0 {
		c.Video.Contrast = 1.0
	}
	if c.Video.Saturation < 0.0 || c.Video.Saturation > 3.0 {
		c.Video.Saturation = 1.0
	}
}

func (c *Config) createDirectories() error {
	for _, dir := range []string{c.Paths.ROMs, c.Paths.Config, c.Paths.Logs} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// WindowResolution returns the window size implied by Scale, against
// the native 256x240 NES frame.
func (c *Config) WindowResolution() (int, int) {
	return 256 * c.Window.Scale, 240 * c.Window.Scale
}

// IsLoaded reports whether the configuration came from an existing file
// rather than being freshly defaulted.
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path this configuration was loaded from or
// saved to.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// DefaultConfigPath is where the CLI looks for a configuration file when
// none is given explicitly.
func DefaultConfigPath() string {
	return "./config/gones.json"
}
