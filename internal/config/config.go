// Package config loads and validates the deskwm configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Padding represents screen edge padding in pixels.
type Padding struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// WindowSize is a width/height pair in pixels.
type WindowSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Offset is an x/y pair in pixels.
type Offset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Snapping configures edge snapping during drags.
type Snapping struct {
	// Threshold is how close (px) a window edge must be to a screen edge
	// before it snaps. 0 disables snapping.
	Threshold int `yaml:"threshold"`
	// Distance is the gap (px) left between the window and the screen edge
	// after snapping.
	Distance int `yaml:"distance"`
}

// Placement configures where new windows land.
type Placement struct {
	CascadeBase Offset `yaml:"cascade_base"`
	CascadeStep Offset `yaml:"cascade_step"`
}

// Limits caps resource usage.
type Limits struct {
	MaxWorkspaces int `yaml:"max_workspaces,omitempty"` // 0 = unlimited
	// MaxWindows caps windows per workspace. 0 = unlimited. Windows absorbed
	// from a deleted workspace are exempt so deletion never loses windows.
	MaxWindows int `yaml:"max_windows,omitempty"`
}

// Config is the effective daemon configuration.
type Config struct {
	// DefaultWindowSize is used when a create request carries no size.
	DefaultWindowSize WindowSize `yaml:"default_window_size"`
	// MinWindowSize is the floor applied to every window.
	MinWindowSize WindowSize `yaml:"min_window_size"`

	Snapping      Snapping `yaml:"snapping"`
	Placement     Placement `yaml:"placement"`
	ScreenPadding Padding   `yaml:"screen_padding"`
	Limits        Limits    `yaml:"limits,omitempty"`

	// DefaultWorkspace names the workspace that always exists and absorbs
	// windows from deleted workspaces.
	DefaultWorkspace string `yaml:"default_workspace"`

	// FallbackViewport is used when no display backend is available.
	FallbackViewport WindowSize `yaml:"fallback_viewport"`

	// StateFile persists window/workspace state across restarts. Empty
	// disables persistence.
	StateFile string `yaml:"state_file,omitempty"`

	// LogLevel: debug, info, warning, error.
	LogLevel string `yaml:"log_level"`
}

// ValidationError reports an invalid config value with its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		DefaultWindowSize: WindowSize{Width: 640, Height: 480},
		MinWindowSize:     WindowSize{Width: 100, Height: 80},
		Snapping:          Snapping{Threshold: 20, Distance: 20},
		Placement: Placement{
			CascadeBase: Offset{X: 40, Y: 40},
			CascadeStep: Offset{X: 30, Y: 30},
		},
		DefaultWorkspace: "main",
		FallbackViewport: WindowSize{Width: 1920, Height: 1080},
		LogLevel:         "info",
	}
}

// DefaultConfigPath returns ~/.config/deskwm/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskwm", "config.yaml"), nil
}

// DefaultStatePath returns ~/.local/share/deskwm/state.yaml.
func DefaultStatePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "deskwm", "state.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults, not an error.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates a config file. Fields absent from the
// file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks invariants the daemon depends on.
func (c *Config) Validate() error {
	if c.DefaultWindowSize.Width <= 0 || c.DefaultWindowSize.Height <= 0 {
		return &ValidationError{Path: "default_window_size", Err: fmt.Errorf("width and height must be > 0")}
	}
	if c.MinWindowSize.Width <= 0 || c.MinWindowSize.Height <= 0 {
		return &ValidationError{Path: "min_window_size", Err: fmt.Errorf("width and height must be > 0")}
	}
	if c.DefaultWindowSize.Width < c.MinWindowSize.Width || c.DefaultWindowSize.Height < c.MinWindowSize.Height {
		return &ValidationError{Path: "default_window_size", Err: fmt.Errorf("must be at least min_window_size %dx%d", c.MinWindowSize.Width, c.MinWindowSize.Height)}
	}
	if c.Snapping.Threshold < 0 {
		return &ValidationError{Path: "snapping.threshold", Err: fmt.Errorf("must be >= 0")}
	}
	if c.Snapping.Distance < 0 {
		return &ValidationError{Path: "snapping.distance", Err: fmt.Errorf("must be >= 0")}
	}
	if c.Placement.CascadeStep.X < 0 || c.Placement.CascadeStep.Y < 0 {
		return &ValidationError{Path: "placement.cascade_step", Err: fmt.Errorf("must be >= 0")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("values must be >= 0")}
	}
	if c.Limits.MaxWorkspaces < 0 {
		return &ValidationError{Path: "limits.max_workspaces", Err: fmt.Errorf("must be >= 0")}
	}
	if c.Limits.MaxWindows < 0 {
		return &ValidationError{Path: "limits.max_windows", Err: fmt.Errorf("must be >= 0")}
	}
	if c.DefaultWorkspace == "" {
		return &ValidationError{Path: "default_workspace", Err: fmt.Errorf("must not be empty")}
	}
	if c.FallbackViewport.Width <= 0 || c.FallbackViewport.Height <= 0 {
		return &ValidationError{Path: "fallback_viewport", Err: fmt.Errorf("width and height must be > 0")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}
